package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/organizerhq/backoffice/internal/models"
)

const (
	// Topic and key prefixes for Redis
	messageTopicPrefix  = "chat:"
	presenceTopicPrefix = "presence:"
	historyKeyPrefix    = "chat_history:"

	// defaultHistoryLimit caps how many envelopes a channel retains
	defaultHistoryLimit = 100
)

// Config holds configuration for the Redis broker
type Config struct {
	// RedisClient is the shared Redis connection
	RedisClient *redis.Client

	// ClientID is this subscriber's identity on presence topics
	ClientID string

	// HistoryLimit overrides the per-channel history retention
	HistoryLimit int
}

// subscription tracks one channel's Redis Pub/Sub state
type subscription struct {
	pubsub       *redis.PubSub
	withPresence bool
	done         chan struct{}
}

// redisBroker implements the Broker interface on Redis Pub/Sub, with
// presence announced on a shadow topic and history kept in a capped
// list written on publish.
type redisBroker struct {
	client       *redis.Client
	clientID     string
	historyLimit int

	mu     sync.Mutex
	subs   map[string]*subscription
	closed bool

	// listeners live under their own lock so the receive goroutines can
	// dispatch while a subscription teardown holds mu
	lmu       sync.RWMutex
	listeners []*Listener
}

// NewRedis creates a Redis-backed broker
func NewRedis(cfg *Config) (*redisBroker, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	if cfg.ClientID == "" {
		return nil, ErrEmptyClientID
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	historyLimit := cfg.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}

	return &redisBroker{
		client:       cfg.RedisClient,
		clientID:     cfg.ClientID,
		historyLimit: historyLimit,
		subs:         make(map[string]*subscription),
	}, nil
}

// Subscribe starts delivering the channels' messages to listeners
func (b *redisBroker) Subscribe(ctx context.Context, input *SubscribeInput) error {
	if input == nil {
		return ErrNilInput
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	for _, channel := range input.Channels {
		if channel == "" {
			return ErrEmptyChannel
		}

		if _, ok := b.subs[channel]; ok {
			continue
		}

		topics := []string{messageTopicPrefix + channel}
		if input.WithPresence {
			topics = append(topics, presenceTopicPrefix+channel)
		}

		ps := b.client.Subscribe(ctx, topics...)

		// Wait for the subscription ack so a publish issued right after
		// Subscribe returns cannot be missed
		if _, err := ps.Receive(ctx); err != nil {
			_ = ps.Close()
			return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
		}

		sub := &subscription{
			pubsub:       ps,
			withPresence: input.WithPresence,
			done:         make(chan struct{}),
		}
		b.subs[channel] = sub

		go b.receive(channel, sub)

		if input.WithPresence {
			b.announce(ctx, channel, PresenceJoin)
		}
	}

	return nil
}

// Unsubscribe stops delivery for the given channels
func (b *redisBroker) Unsubscribe(ctx context.Context, input *UnsubscribeInput) error {
	if input == nil {
		return ErrNilInput
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, channel := range input.Channels {
		b.dropSubscription(ctx, channel)
	}

	return nil
}

// UnsubscribeAll stops delivery for every subscribed channel
func (b *redisBroker) UnsubscribeAll(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for channel := range b.subs {
		b.dropSubscription(ctx, channel)
	}

	return nil
}

// dropSubscription closes one channel's subscription. Caller holds b.mu.
func (b *redisBroker) dropSubscription(ctx context.Context, channel string) {
	sub, ok := b.subs[channel]
	if !ok {
		return
	}

	delete(b.subs, channel)

	if sub.withPresence {
		b.announce(ctx, channel, PresenceLeave)
	}

	if err := sub.pubsub.Close(); err != nil {
		log.Printf("Error closing subscription for channel %s: %v", channel, err)
	}
	<-sub.done
}

// Publish sends one envelope to a channel's topic and appends it to the
// channel's capped history list
func (b *redisBroker) Publish(ctx context.Context, input *PublishInput) error {
	if input == nil {
		return ErrNilInput
	}

	if input.Channel == "" {
		return ErrEmptyChannel
	}

	if input.Message == nil {
		return ErrNilMessage
	}

	payload, err := json.Marshal(input.Message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	historyKey := historyKeyPrefix + input.Channel

	pipe := b.client.Pipeline()
	pipe.Publish(ctx, messageTopicPrefix+input.Channel, payload)
	pipe.RPush(ctx, historyKey, payload)
	pipe.LTrim(ctx, historyKey, int64(-b.historyLimit), -1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// History returns the channel's most recent envelopes, oldest first
func (b *redisBroker) History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.Channel == "" {
		return nil, ErrEmptyChannel
	}

	count := input.Count
	if count <= 0 || count > b.historyLimit {
		count = b.historyLimit
	}

	entries, err := b.client.LRange(ctx, historyKeyPrefix+input.Channel, int64(-count), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}

	messages := make([]*models.Message, 0, len(entries))
	for _, entry := range entries {
		var message models.Message
		if err := json.Unmarshal([]byte(entry), &message); err != nil {
			// A malformed entry is skipped, not fatal
			continue
		}
		messages = append(messages, &message)
	}

	return &HistoryOutput{
		Messages: messages,
	}, nil
}

// AddListener registers for inbound events
func (b *redisBroker) AddListener(listener *Listener) {
	if listener == nil {
		return
	}

	b.lmu.Lock()
	defer b.lmu.Unlock()

	b.listeners = append(b.listeners, listener)
}

// RemoveListener drops a previously registered listener
func (b *redisBroker) RemoveListener(listener *Listener) {
	b.lmu.Lock()
	defer b.lmu.Unlock()

	for i, l := range b.listeners {
		if l == listener {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Close releases all subscriptions
func (b *redisBroker) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	return b.UnsubscribeAll(context.Background())
}

// receive pumps one subscription's Redis messages to the listeners
func (b *redisBroker) receive(channel string, sub *subscription) {
	defer close(sub.done)

	for msg := range sub.pubsub.Channel() {
		switch {
		case msg.Channel == messageTopicPrefix+channel:
			var message models.Message
			if err := json.Unmarshal([]byte(msg.Payload), &message); err != nil {
				log.Printf("Error parsing message on channel %s: %v", channel, err)
				continue
			}
			b.dispatchMessage(&MessageEvent{
				Channel: channel,
				Message: &message,
			})

		case msg.Channel == presenceTopicPrefix+channel:
			var event presencePayload
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Error parsing presence event on channel %s: %v", channel, err)
				continue
			}
			b.dispatchPresence(&PresenceEvent{
				Channel:  channel,
				Action:   event.Action,
				ClientID: event.ClientID,
			})
		}
	}
}

// presencePayload is the wire form of a presence announcement
type presencePayload struct {
	Action   PresenceAction `json:"action"`
	ClientID string         `json:"client_id"`
}

// announce publishes a presence transition. Caller holds b.mu.
func (b *redisBroker) announce(ctx context.Context, channel string, action PresenceAction) {
	payload, err := json.Marshal(&presencePayload{
		Action:   action,
		ClientID: b.clientID,
	})
	if err != nil {
		return
	}

	if err := b.client.Publish(ctx, presenceTopicPrefix+channel, payload).Err(); err != nil {
		log.Printf("Error announcing presence on channel %s: %v", channel, err)
	}
}

func (b *redisBroker) dispatchMessage(event *MessageEvent) {
	b.lmu.RLock()
	listeners := make([]*Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.lmu.RUnlock()

	for _, l := range listeners {
		if l.Message != nil {
			l.Message(event)
		}
	}
}

func (b *redisBroker) dispatchPresence(event *PresenceEvent) {
	b.lmu.RLock()
	listeners := make([]*Listener, len(b.listeners))
	copy(listeners, b.listeners)
	b.lmu.RUnlock()

	for _, l := range listeners {
		if l.Presence != nil {
			l.Presence(event)
		}
	}
}
