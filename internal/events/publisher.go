package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/payments-service-go/internal/payment"
)

const defaultProducer = "payments-service"

// SequenceSource assigns per-partition sequence numbers to outgoing events.
type SequenceSource interface {
	NextSequence(ctx context.Context, partitionKey string) (int64, error)
}

// Channel is the slice of the amqp channel the publisher uses.
// *amqp.Channel satisfies it.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher emits payment lifecycle events on a topic exchange. It
// implements payment.EventPublisher.
type Publisher struct {
	ch       Channel
	seq      SequenceSource
	producer string
}

func NewPublisher(conn *amqp.Connection, seq SequenceSource, producer string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return newPublisher(ch, seq, producer)
}

func newPublisher(ch Channel, seq SequenceSource, producer string) (*Publisher, error) {
	if err := ch.ExchangeDeclare(EventsExchange, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	if producer == "" {
		producer = defaultProducer
	}
	return &Publisher{ch: ch, seq: seq, producer: producer}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PaymentCreated(ctx context.Context, resp payment.Response) error {
	ev := PaymentCreated{
		PaymentID:    resp.ID,
		Total:        resp.Total,
		RecordType:   resp.RecordType,
		Status:       resp.Status,
		ModifiedDate: resp.ModifiedDate,
	}
	return publish(ctx, p, PaymentCreatedName, PaymentCreatedRoutingKey, partitionKey(resp.ID), ev)
}

func (p *Publisher) PaymentUpdated(ctx context.Context, resp payment.Response) error {
	ev := PaymentUpdated{
		PaymentID:    resp.ID,
		Total:        resp.Total,
		RecordType:   resp.RecordType,
		Status:       resp.Status,
		ModifiedDate: resp.ModifiedDate,
	}
	return publish(ctx, p, PaymentUpdatedName, PaymentUpdatedRoutingKey, partitionKey(resp.ID), ev)
}

func (p *Publisher) PaymentDeleted(ctx context.Context, id int64) error {
	return publish(ctx, p, PaymentDeletedName, PaymentDeletedRoutingKey, partitionKey(id), PaymentDeleted{PaymentID: id})
}

func partitionKey(id int64) string {
	return fmt.Sprintf("payment-%d", id)
}

// publish wraps the payload in an envelope, stamps a sequence number when a
// source is configured, and sends it persistently to the topic exchange.
func publish[T any](ctx context.Context, p *Publisher, name, routingKey, partition string, payload T) error {
	env := NewEnvelope(name, p.producer, partition, payload)

	if p.seq != nil {
		seq, err := p.seq.NextSequence(ctx, partition)
		if err != nil {
			return fmt.Errorf("sequence for %s: %w", routingKey, err)
		}
		env.Sequence = &seq
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// NewEnvelope builds a v1 envelope with a fresh event id.
func NewEnvelope[T any](name, producer, partition string, payload T) EventEnvelope[T] {
	return EventEnvelope[T]{
		EventName:    name,
		EventVersion: 1,
		EventID:      uuid.NewString(),
		Producer:     producer,
		PartitionKey: partition,
		OccurredAt:   time.Now().UTC(),
		Payload:      payload,
	}
}
