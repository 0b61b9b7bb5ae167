package pubsub

import "github.com/organizerhq/backoffice/internal/models"

// SubscribeInput contains parameters for subscribing to channels
type SubscribeInput struct {
	Channels []string

	// WithPresence announces this client on the channels' presence topic
	WithPresence bool
}

// UnsubscribeInput contains parameters for leaving channels
type UnsubscribeInput struct {
	Channels []string
}

// PublishInput contains parameters for publishing one envelope
type PublishInput struct {
	Channel string
	Message *models.Message
}

// HistoryInput contains parameters for fetching recent envelopes
type HistoryInput struct {
	Channel string

	// Count caps the number of envelopes returned; zero means the default
	Count int
}

// HistoryOutput contains the fetched envelopes, oldest first
type HistoryOutput struct {
	Messages []*models.Message
}

// PresenceAction describes a presence transition on a channel
type PresenceAction string

const (
	// PresenceJoin indicates a client subscribed to the channel
	PresenceJoin PresenceAction = "join"

	// PresenceLeave indicates a client unsubscribed from the channel
	PresenceLeave PresenceAction = "leave"
)

// MessageEvent is an inbound chat envelope
type MessageEvent struct {
	Channel string
	Message *models.Message
}

// PresenceEvent is an inbound presence transition
type PresenceEvent struct {
	Channel  string
	Action   PresenceAction
	ClientID string
}

// Listener receives inbound broker events. Nil handlers are skipped.
// Listeners are compared by identity for removal.
type Listener struct {
	Message  func(event *MessageEvent)
	Presence func(event *PresenceEvent)
}
