// Package kafka publishes order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"orders/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderStatusChangedEvent is the JSON value of every published message.
type OrderStatusChangedEvent struct {
	OrderID    string    `json:"orderId"`
	OldStatus  string    `json:"oldStatus"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	UpdatedBy  string    `json:"updatedBy"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher implements ports.StatusNotifier. Messages are keyed by order id so
// all changes of one order land on the same partition in order.
type Publisher struct {
	writer MessageWriter
}

var _ ports.StatusNotifier = (*Publisher)(nil)

// NewWriter builds a writer for a comma separated broker list.
func NewWriter(brokersCSV, topic string) *kafka.Writer {
	brokers := make([]string, 0)
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) NotifyStatusChanged(ctx context.Context, change ports.StatusChange) error {
	event := OrderStatusChangedEvent{
		OrderID:    change.OrderID.String(),
		OldStatus:  change.From.String(),
		Status:     change.To.String(),
		Message:    change.Message,
		UpdatedBy:  change.UpdatedBy,
		OccurredAt: change.OccurredAt,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Time:  time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("publish status change of order %s: %w", event.OrderID, err)
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
