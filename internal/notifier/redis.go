package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/pkg/circuitbreaker"
)

// Channel carries reservation change events. List views subscribe and
// re-query on every event, which is the closest equivalent to the live
// document queries the front end was built around.
const Channel = "reservations.changes"

type EventType string

const (
	EventCreated       EventType = "created"
	EventStatusChanged EventType = "status_changed"
	EventCancelled     EventType = "cancelled"
)

// ChangeEvent is the payload published on Channel.
type ChangeEvent struct {
	Type           EventType               `json:"type"`
	ReservationID  string                  `json:"reservation_id"`
	ProfessionalID string                  `json:"professional_id"`
	ResponsibleID  string                  `json:"responsible_id"`
	Date           string                  `json:"date"`
	Status         model.ReservationStatus `json:"status"`
	At             time.Time               `json:"at"`
}

// Notifier publishes reservation changes so appointment list views can
// refresh without polling.
type Notifier interface {
	Publish(ctx context.Context, event *ChangeEvent) error
	Subscribe(ctx context.Context) (<-chan *ChangeEvent, error)
	Close() error
}

type Config struct {
	URL          string
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
}

type redisNotifier struct {
	client *redis.Client
	cb     *circuitbreaker.CircuitBreaker
	logger *zerolog.Logger
}

func NewRedisNotifier(cfg Config, logger *zerolog.Logger) (Notifier, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opts.MaxRetries = cfg.MaxRetries
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
		Name:        "reservation-notifier",
		MaxFailures: 5,
		Timeout:     10 * time.Second,
	})

	return &redisNotifier{client: client, cb: cb, logger: logger}, nil
}

func (n *redisNotifier) Publish(ctx context.Context, event *ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	return n.cb.Execute(func() error {
		return n.client.Publish(ctx, Channel, payload).Err()
	})
}

func (n *redisNotifier) Subscribe(ctx context.Context) (<-chan *ChangeEvent, error) {
	pubsub := n.client.Subscribe(ctx, Channel)
	events := make(chan *ChangeEvent, 100)

	go func() {
		defer func() {
			pubsub.Close()
			close(events)
		}()

		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					continue
				}
				var event ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					n.logger.Warn().Err(err).Msg("discarding malformed change event")
					continue
				}
				events <- &event
			}
		}
	}()

	return events, nil
}

func (n *redisNotifier) Close() error {
	return n.client.Close()
}
