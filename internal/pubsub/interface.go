package pubsub

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_broker.go github.com/organizerhq/backoffice/internal/pubsub Broker

// Broker is the narrow surface the chat layer needs from a pub/sub
// provider. Delivery, ordering and fan-out guarantees belong to the
// provider; callers treat publishes as fire-and-forget. The subscriber
// identity is fixed when the broker is constructed.
type Broker interface {
	// Subscribe starts delivering the channels' messages to listeners,
	// optionally announcing presence
	Subscribe(ctx context.Context, input *SubscribeInput) error

	// Unsubscribe stops delivery for the given channels
	Unsubscribe(ctx context.Context, input *UnsubscribeInput) error

	// UnsubscribeAll stops delivery for every subscribed channel
	UnsubscribeAll(ctx context.Context) error

	// Publish sends one message envelope to a channel
	Publish(ctx context.Context, input *PublishInput) error

	// History returns the most recent envelopes of a channel, oldest first
	History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error)

	// AddListener registers for inbound events
	AddListener(listener *Listener)

	// RemoveListener drops a previously registered listener
	RemoveListener(listener *Listener)

	// Close releases all subscriptions
	Close() error
}
