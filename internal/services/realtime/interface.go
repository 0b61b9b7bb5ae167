package realtime

import (
	"context"

	"github.com/organizerhq/backoffice/internal/pubsub"
)

// Service binds the organizer to at most one group conversation at a
// time and publishes chat envelopes on its behalf. Inbound traffic is
// delivered through broker listeners registered via AddListener.
type Service interface {
	// SetCurrentChannel rebinds the conversation: the previous channel
	// is left before the next one is joined. An empty channel unbinds
	// without joining anything.
	SetCurrentChannel(ctx context.Context, input *SetCurrentChannelInput) error

	// CurrentChannel returns the bound channel, empty when unbound
	CurrentChannel() string

	// ClientID returns this subscriber's identity on the wire
	ClientID() string

	// SendMessage publishes one envelope to the bound channel
	SendMessage(ctx context.Context, input *SendMessageInput) error

	// FetchHistory returns the bound channel's recent envelopes,
	// oldest first
	FetchHistory(ctx context.Context, input *FetchHistoryInput) (*FetchHistoryOutput, error)

	// AddListener registers for inbound chat and presence events
	AddListener(listener *pubsub.Listener)

	// RemoveListener drops a previously registered listener
	RemoveListener(listener *pubsub.Listener)

	// Teardown leaves every channel and closes the broker
	Teardown(ctx context.Context) error
}
