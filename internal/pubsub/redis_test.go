package pubsub

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/organizerhq/backoffice/internal/models"
)

type RedisBrokerTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	broker Broker
	ctx    context.Context
}

func (s *RedisBrokerTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	broker, err := NewRedis(&Config{
		RedisClient: s.client,
		ClientID:    "user-7",
	})
	s.Require().NoError(err)
	s.broker = broker

	s.ctx = context.Background()
}

func (s *RedisBrokerTestSuite) TearDownTest() {
	_ = s.broker.Close()
	s.client.Close()
	s.mr.Close()
}

func TestRedisBrokerTestSuite(t *testing.T) {
	suite.Run(t, new(RedisBrokerTestSuite))
}

func (s *RedisBrokerTestSuite) testMessage(text string) *models.Message {
	return &models.Message{
		Text:      text,
		CreatedAt: time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC).UnixMilli(),
		User: models.MessageUser{
			ID:   "user-7",
			Name: "Test Organization",
		},
	}
}

func (s *RedisBrokerTestSuite) TestNewValidatesConfig() {
	_, err := NewRedis(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = NewRedis(&Config{ClientID: "user-7"})
	s.ErrorIs(err, ErrNilRedisClient)

	_, err = NewRedis(&Config{RedisClient: s.client})
	s.ErrorIs(err, ErrEmptyClientID)
}

func (s *RedisBrokerTestSuite) TestPublishAndReceive() {
	received := make(chan *MessageEvent, 1)
	s.broker.AddListener(&Listener{
		Message: func(event *MessageEvent) {
			received <- event
		},
	})

	err := s.broker.Subscribe(s.ctx, &SubscribeInput{
		Channels: []string{"42"},
	})
	s.Require().NoError(err)

	err = s.broker.Publish(s.ctx, &PublishInput{
		Channel: "42",
		Message: s.testMessage("hello attendees"),
	})
	s.Require().NoError(err)

	select {
	case event := <-received:
		s.Equal("42", event.Channel)
		s.Equal("hello attendees", event.Message.Text)
		s.Equal("user-7", event.Message.User.ID)
	case <-time.After(2 * time.Second):
		s.Fail("timed out waiting for message")
	}
}

func (s *RedisBrokerTestSuite) TestHistoryReturnsRecentMessagesOldestFirst() {
	for i := 1; i <= 3; i++ {
		err := s.broker.Publish(s.ctx, &PublishInput{
			Channel: "42",
			Message: s.testMessage(fmt.Sprintf("message %d", i)),
		})
		s.Require().NoError(err)
	}

	history, err := s.broker.History(s.ctx, &HistoryInput{
		Channel: "42",
		Count:   2,
	})
	s.Require().NoError(err)

	s.Require().Len(history.Messages, 2)
	s.Equal("message 2", history.Messages[0].Text)
	s.Equal("message 3", history.Messages[1].Text)
}

func (s *RedisBrokerTestSuite) TestHistoryIsCapped() {
	broker, err := NewRedis(&Config{
		RedisClient:  s.client,
		ClientID:     "user-7",
		HistoryLimit: 3,
	})
	s.Require().NoError(err)
	defer broker.Close()

	for i := 1; i <= 5; i++ {
		err := broker.Publish(s.ctx, &PublishInput{
			Channel: "42",
			Message: s.testMessage(fmt.Sprintf("message %d", i)),
		})
		s.Require().NoError(err)
	}

	history, err := broker.History(s.ctx, &HistoryInput{Channel: "42"})
	s.Require().NoError(err)

	s.Require().Len(history.Messages, 3)
	s.Equal("message 3", history.Messages[0].Text)
	s.Equal("message 5", history.Messages[2].Text)
}

func (s *RedisBrokerTestSuite) TestUnsubscribeStopsDelivery() {
	received := make(chan *MessageEvent, 1)
	s.broker.AddListener(&Listener{
		Message: func(event *MessageEvent) {
			received <- event
		},
	})

	err := s.broker.Subscribe(s.ctx, &SubscribeInput{Channels: []string{"42"}})
	s.Require().NoError(err)

	err = s.broker.Unsubscribe(s.ctx, &UnsubscribeInput{Channels: []string{"42"}})
	s.Require().NoError(err)

	err = s.broker.Publish(s.ctx, &PublishInput{
		Channel: "42",
		Message: s.testMessage("after unsubscribe"),
	})
	s.Require().NoError(err)

	select {
	case <-received:
		s.Fail("received message after unsubscribe")
	case <-time.After(200 * time.Millisecond):
	}
}

func (s *RedisBrokerTestSuite) TestPresenceAnnouncements() {
	presence := make(chan *PresenceEvent, 2)
	s.broker.AddListener(&Listener{
		Presence: func(event *PresenceEvent) {
			presence <- event
		},
	})

	err := s.broker.Subscribe(s.ctx, &SubscribeInput{
		Channels:     []string{"42"},
		WithPresence: true,
	})
	s.Require().NoError(err)

	// A second client joining the same channel is announced
	other, err := NewRedis(&Config{
		RedisClient: redis.NewClient(&redis.Options{Addr: s.mr.Addr()}),
		ClientID:    "user-9",
	})
	s.Require().NoError(err)
	defer other.Close()

	err = other.Subscribe(s.ctx, &SubscribeInput{
		Channels:     []string{"42"},
		WithPresence: true,
	})
	s.Require().NoError(err)

	waitForPresence := func(want PresenceAction, clientID string) {
		for {
			select {
			case event := <-presence:
				if event.Action == want && event.ClientID == clientID {
					s.Equal("42", event.Channel)
					return
				}
			case <-time.After(2 * time.Second):
				s.Fail(fmt.Sprintf("timed out waiting for presence %s of %s", want, clientID))
				return
			}
		}
	}

	waitForPresence(PresenceJoin, "user-9")

	err = other.Unsubscribe(s.ctx, &UnsubscribeInput{Channels: []string{"42"}})
	s.Require().NoError(err)

	waitForPresence(PresenceLeave, "user-9")
}

func (s *RedisBrokerTestSuite) TestRemoveListener() {
	received := make(chan *MessageEvent, 1)
	listener := &Listener{
		Message: func(event *MessageEvent) {
			received <- event
		},
	}
	s.broker.AddListener(listener)
	s.broker.RemoveListener(listener)

	err := s.broker.Subscribe(s.ctx, &SubscribeInput{Channels: []string{"42"}})
	s.Require().NoError(err)

	err = s.broker.Publish(s.ctx, &PublishInput{
		Channel: "42",
		Message: s.testMessage("nobody listening"),
	})
	s.Require().NoError(err)

	select {
	case <-received:
		s.Fail("removed listener still received a message")
	case <-time.After(200 * time.Millisecond):
	}
}

func (s *RedisBrokerTestSuite) TestSubscribeAfterCloseFails() {
	s.Require().NoError(s.broker.Close())

	err := s.broker.Subscribe(s.ctx, &SubscribeInput{Channels: []string{"42"}})
	s.ErrorIs(err, ErrClosed)
}

func (s *RedisBrokerTestSuite) TestPublishValidatesInput() {
	err := s.broker.Publish(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)

	err = s.broker.Publish(s.ctx, &PublishInput{Message: s.testMessage("x")})
	s.ErrorIs(err, ErrEmptyChannel)

	err = s.broker.Publish(s.ctx, &PublishInput{Channel: "42"})
	s.ErrorIs(err, ErrNilMessage)
}
