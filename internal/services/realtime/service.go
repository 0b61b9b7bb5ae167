package realtime

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/organizerhq/backoffice/internal/common/clock"
	"github.com/organizerhq/backoffice/internal/common/uuid"
	"github.com/organizerhq/backoffice/internal/models"
	"github.com/organizerhq/backoffice/internal/pubsub"
)

// defaultHistoryCount is how many envelopes FetchHistory returns when
// the caller does not ask for a specific count
const defaultHistoryCount = 50

// Config holds configuration for the realtime binder
type Config struct {
	// Broker carries the chat traffic. Its subscriber identity must
	// match ClientID so presence announcements and envelopes agree.
	Broker pubsub.Broker

	// ClientID is this subscriber's identity, from IdentityFor
	ClientID string

	// DisplayName is the name stamped on outbound envelopes, from
	// DisplayNameFor
	DisplayName string

	// Clock stamps outbound envelopes, defaults to the system clock
	Clock clock.Clock
}

type service struct {
	broker      pubsub.Broker
	clientID    string
	displayName string
	clock       clock.Clock

	mu      sync.Mutex
	channel string
}

// New creates a new realtime binder speaking as the given identity
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Broker == nil {
		return nil, ErrNilBroker
	}

	if cfg.ClientID == "" {
		return nil, ErrEmptyClientID
	}

	clockImpl := cfg.Clock
	if clockImpl == nil {
		clockImpl = clock.New()
	}

	displayName := cfg.DisplayName
	if displayName == "" {
		displayName = "Guest"
	}

	return &service{
		broker:      cfg.Broker,
		clientID:    cfg.ClientID,
		displayName: displayName,
		clock:       clockImpl,
	}, nil
}

// IdentityFor derives the subscriber identity: user-<id> when
// authenticated, a random user-<uuid> otherwise (degraded mode). The
// result must be shared by the broker and the binder.
func IdentityFor(organizer *models.Organizer, gen uuid.UUID) string {
	if organizer != nil && organizer.ID != 0 {
		return fmt.Sprintf("user-%d", organizer.ID)
	}

	if gen == nil {
		gen = uuid.New()
	}

	return "user-" + gen.NewUUID()
}

// DisplayNameFor picks the name stamped on outbound envelopes
func DisplayNameFor(organizer *models.Organizer) string {
	if organizer == nil {
		return "Guest"
	}

	if organizer.Profile.Name != "" {
		return organizer.Profile.Name
	}

	if organizer.Username != "" {
		return organizer.Username
	}

	return organizer.Email
}

// ChannelForGroup maps a group to its conversation channel
func ChannelForGroup(groupID int64) string {
	return strconv.FormatInt(groupID, 10)
}

// SetCurrentChannel rebinds the conversation, leaving the previous
// channel before joining the next
func (s *service) SetCurrentChannel(ctx context.Context, input *SetCurrentChannelInput) error {
	if input == nil {
		return ErrNilInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Channel == s.channel {
		return nil
	}

	if s.channel != "" {
		err := s.broker.Unsubscribe(ctx, &pubsub.UnsubscribeInput{
			Channels: []string{s.channel},
		})
		if err != nil {
			return fmt.Errorf("failed to leave channel %s: %w", s.channel, err)
		}

		s.channel = ""
	}

	if input.Channel == "" {
		return nil
	}

	err := s.broker.Subscribe(ctx, &pubsub.SubscribeInput{
		Channels:     []string{input.Channel},
		WithPresence: true,
	})
	if err != nil {
		return fmt.Errorf("failed to join channel %s: %w", input.Channel, err)
	}

	s.channel = input.Channel

	return nil
}

// CurrentChannel returns the bound channel, empty when unbound
func (s *service) CurrentChannel() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.channel
}

// ClientID returns this subscriber's identity on the wire
func (s *service) ClientID() string {
	return s.clientID
}

// SendMessage publishes one envelope to the bound channel
func (s *service) SendMessage(ctx context.Context, input *SendMessageInput) error {
	if input == nil {
		return ErrNilInput
	}

	if input.Text == "" && input.Image == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	channel := s.channel
	s.mu.Unlock()

	if channel == "" {
		return ErrNoChannelBound
	}

	return s.broker.Publish(ctx, &pubsub.PublishInput{
		Channel: channel,
		Message: &models.Message{
			Text:      input.Text,
			Image:     input.Image,
			CreatedAt: s.clock.Now().UnixMilli(),
			User: models.MessageUser{
				ID:   s.clientID,
				Name: s.displayName,
			},
		},
	})
}

// FetchHistory returns the bound channel's recent envelopes, oldest first
func (s *service) FetchHistory(ctx context.Context, input *FetchHistoryInput) (*FetchHistoryOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	channel := s.channel
	s.mu.Unlock()

	if channel == "" {
		return nil, ErrNoChannelBound
	}

	count := input.Count
	if count <= 0 {
		count = defaultHistoryCount
	}

	history, err := s.broker.History(ctx, &pubsub.HistoryInput{
		Channel: channel,
		Count:   count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for channel %s: %w", channel, err)
	}

	return &FetchHistoryOutput{
		Messages: history.Messages,
	}, nil
}

// AddListener registers for inbound chat and presence events
func (s *service) AddListener(listener *pubsub.Listener) {
	s.broker.AddListener(listener)
}

// RemoveListener drops a previously registered listener
func (s *service) RemoveListener(listener *pubsub.Listener) {
	s.broker.RemoveListener(listener)
}

// Teardown leaves every channel and closes the broker
func (s *service) Teardown(ctx context.Context) error {
	s.mu.Lock()
	s.channel = ""
	s.mu.Unlock()

	if err := s.broker.UnsubscribeAll(ctx); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return s.broker.Close()
}
