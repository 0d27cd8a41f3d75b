package ports

import (
	"context"
	"time"

	"pos/internal/core/domain/model/order"
)

// OrderStatusChanged is emitted after a status transition was committed.
type OrderStatusChanged struct {
	Order      order.Snapshot
	From       order.Status
	To         order.Status
	OccurredAt time.Time
}

// OrderEventPublisher publishes order events to interested consumers.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChanged) error
}
