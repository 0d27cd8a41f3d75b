package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange receives kitchen tickets.
const DefaultExchange = "kitchen"

// Publisher is the subset of Client used to send messages.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte, headers amqp.Table) error
}

// KitchenTicketMessage is the body of a published ticket.
type KitchenTicketMessage struct {
	OrderID         string              `json:"orderId,omitempty"`
	Location        string              `json:"location,omitempty"`
	LocationDisplay string              `json:"locationDisplay,omitempty"`
	CreatedAt       string              `json:"createdAt"`
	Items           []KitchenTicketItem `json:"items"`
}

type KitchenTicketItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

var _ ports.KitchenTicketSender = (*KitchenTicketPublisher)(nil)

type KitchenTicketPublisher struct {
	pub      Publisher
	exchange string
}

func NewKitchenTicketPublisher(pub Publisher, exchange string) *KitchenTicketPublisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &KitchenTicketPublisher{pub: pub, exchange: exchange}
}

// SendKitchenTicket publishes under "ticket.<location type>", e.g.
// "ticket.mesa", or "ticket.none" for orders without a location.
func (k *KitchenTicketPublisher) SendKitchenTicket(ctx context.Context, s order.Snapshot) error {
	msg := KitchenTicketMessage{
		CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:     make([]KitchenTicketItem, 0, len(s.Items)),
	}
	if s.Persisted {
		msg.OrderID = s.ID.String()
	}
	routingKey := "ticket.none"
	if s.Location != nil {
		msg.Location = s.Location.ID()
		msg.LocationDisplay = s.Location.DisplayName()
		routingKey = "ticket." + s.Location.Type().String()
	}
	for _, it := range s.Items {
		msg.Items = append(msg.Items, KitchenTicketItem{
			ProductID: it.ProductID.String(),
			Name:      it.Name,
			Quantity:  it.Quantity,
		})
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode kitchen ticket: %w", err)
	}
	return k.pub.Publish(ctx, k.exchange, routingKey, body, amqp.Table{"type": "kitchen_ticket"})
}
