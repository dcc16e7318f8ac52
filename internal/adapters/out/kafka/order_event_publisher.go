// Package kafka publishes order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// DefaultWriteTimeout bounds a single publish.
const DefaultWriteTimeout = 2 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderChangedMessage is the JSON value of every record on the topic.
type OrderChangedMessage struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	Status     string    `json:"status"`
	Version    int64     `json:"version"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderEventPublisher writes events keyed by order id, so all events of
// one order land on one partition and keep their order.
type OrderEventPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

// NewOrderEventPublisher connects a writer to topic on brokers.
func NewOrderEventPublisher(brokers []string, topic string) *OrderEventPublisher {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: int(kafka.RequireAll),
	})
	return newOrderEventPublisher(w)
}

func newOrderEventPublisher(w messageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: w, timeout: DefaultWriteTimeout}
}

// Publish writes one message and waits for the broker acknowledgement.
func (p *OrderEventPublisher) Publish(ctx context.Context, event order.Event) error {
	value, err := json.Marshal(OrderChangedMessage{
		EventID:    event.ID.String(),
		Type:       string(event.Type),
		OrderID:    event.OrderID,
		Status:     event.Status.String(),
		Version:    event.Version,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
}

// Close flushes pending messages.
func (p *OrderEventPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// NopOrderEventPublisher drops every event. It is used when no brokers are
// configured.
type NopOrderEventPublisher struct{}

var _ ports.OrderEventPublisher = NopOrderEventPublisher{}

func (NopOrderEventPublisher) Publish(context.Context, order.Event) error {
	return nil
}
