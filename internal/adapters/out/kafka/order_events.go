// Package kafka publishes order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pos/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// DefaultOrderTopic carries order status changes.
const DefaultOrderTopic = "pos.orders"

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewWriter builds a writer for broker and topic.
func NewWriter(broker, topic string) *kafka.Writer {
	if topic == "" {
		topic = DefaultOrderTopic
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

// StatusChangedMessage is the JSON value of a status change event.
type StatusChangedMessage struct {
	OrderID    string `json:"orderId"`
	From       string `json:"from"`
	To         string `json:"to"`
	Location   string `json:"location,omitempty"`
	Total      string `json:"total"`
	ItemCount  int    `json:"itemCount"`
	OccurredAt string `json:"occurredAt"`
}

var _ ports.OrderEventPublisher = (*OrderEventPublisher)(nil)

type OrderEventPublisher struct {
	writer MessageWriter
}

func NewOrderEventPublisher(writer MessageWriter) *OrderEventPublisher {
	return &OrderEventPublisher{writer: writer}
}

// PublishStatusChanged writes one message keyed by order id, so events of one
// order stay in one partition and keep their order.
func (p *OrderEventPublisher) PublishStatusChanged(ctx context.Context, e ports.OrderStatusChanged) error {
	msg := StatusChangedMessage{
		OrderID:    e.Order.ID.String(),
		From:       e.From.String(),
		To:         e.To.String(),
		Location:   e.Order.LocationName(),
		Total:      e.Order.Total.String(),
		OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339),
	}
	for _, it := range e.Order.Items {
		msg.ItemCount += it.Quantity
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode status change: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("order.status_changed")},
		},
	})
}
