// Package events publishes reservation lifecycle events to RabbitMQ. Publishing is
// best effort: callers log failures and carry on with the request.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Type string

const (
	ReservationCreated   Type = "reservation.created"
	ReservationCancelled Type = "reservation.cancelled"
	ReservationConfirmed Type = "reservation.confirmed"
	ReservationExpired   Type = "reservation.expired"
)

type Event struct {
	Type          Type      `json:"type"`
	ReservationID int64     `json:"reservationId"`
	UserID        int64     `json:"userId,omitempty"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }

// AMQPPublisher keeps one connection and one channel open. The channel is not safe
// for concurrent publishes, so Publish serialises on mu.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      *zap.Logger

	mu sync.Mutex
}

// NewAMQPPublisher dials url and declares a durable topic exchange. Events are
// routed by their Type.
func NewAMQPPublisher(url, exchange string, log *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare %s: %w", exchange, err)
	}

	return &AMQPPublisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		log:      log.With(zap.String("component", "events")),
	}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.Type, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt.UTC(),
		Type:         string(event.Type),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		p.log.Warn("Publish failed",
			zap.Error(err),
			zap.String("type", string(event.Type)),
			zap.Int64("reservation_id", event.ReservationID),
		)
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
