// Package subscription carries catalog change notifications over a Redis
// pub/sub channel. Publishers live in the catalog service; the cart service
// owns a single Subscription for its lifetime and closes it on shutdown.
package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/journey/internal/constants"
)

const Channel = "catalog:changes"

type Kind string

const (
	KindExperience    Kind = "experience"
	KindAccommodation Kind = "accommodation"
	KindMenuItem      Kind = "menu-item"
)

type Op string

const (
	OpUpsert Op = "upsert"
	OpDelete Op = "delete"
)

type Change struct {
	Kind Kind      `json:"kind"`
	ID   uuid.UUID `json:"id"`
	Op   Op        `json:"op"`
}

type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) Publisher {
	return Publisher{client: client}
}

func (p Publisher) Publish(c context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed marshalling change with error=%w", err)
	}
	if err := p.client.Publish(c, Channel, payload).Err(); err != nil {
		return fmt.Errorf("failed publishing change to channel=%s with error=%w", Channel, err)
	}
	return nil
}

type Subscriber struct {
	client *redis.Client
}

func NewSubscriber(client *redis.Client) Subscriber {
	return Subscriber{client: client}
}

// Subscribe returns once Redis has confirmed the subscription, so changes
// published after it returns are delivered.
func (s Subscriber) Subscribe(c context.Context) (*Subscription, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Subscriber Subscribe").
		Str(constants.KEY_PROCESS, "subscribing to catalog changes").
		Logger()

	pubsub := s.client.Subscribe(c, Channel)
	if _, err := pubsub.Receive(c); err != nil {
		pubsub.Close()
		err = fmt.Errorf("failed subscribing to channel=%s with error=%w", Channel, err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("subscribed to catalog changes")

	sub := &Subscription{
		pubsub:  pubsub,
		changes: make(chan Change),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go sub.run(logger)
	return sub, nil
}

type Subscription struct {
	pubsub    *redis.PubSub
	changes   chan Change
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Changes is closed after Close returns or when the underlying connection
// is shut down.
func (s *Subscription) Changes() <-chan Change {
	return s.changes
}

func (s *Subscription) run(logger zerolog.Logger) {
	defer close(s.stopped)
	defer close(s.changes)
	for msg := range s.pubsub.Channel() {
		change := Change{}
		if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
			logger.Warn().Err(err).Str(constants.KEY_BODY, msg.Payload).Msg("skipping malformed change")
			continue
		}
		select {
		case s.changes <- change:
		case <-s.done:
			return
		}
	}
}

func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.pubsub.Close()
		<-s.stopped
	})
	return s.closeErr
}
