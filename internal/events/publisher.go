package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
)

const publishTimeout = 5 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends domain events to a topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Message is the wire shape of a published audit event.
type Message struct {
	Action     string    `json:"action"`
	ActorID    *uint     `json:"actor_id,omitempty"`
	Entity     string    `json:"entity,omitempty"`
	EntityID   *uint     `json:"entity_id,omitempty"`
	Metadata   any       `json:"metadata,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey for an action, e.g. "coaching.invitation_accepted".
func RoutingKey(action string) string {
	return "coaching." + action
}

// Record implements audit.Sink.
func (p *Publisher) Record(ctx context.Context, ev audit.Event) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.PublishJSON(ctx, RoutingKey(ev.Action), Message{
		Action:     ev.Action,
		ActorID:    ev.ActorID,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   ev.Metadata,
		OccurredAt: ev.At,
	})
}

var _ audit.Sink = (*Publisher)(nil)
