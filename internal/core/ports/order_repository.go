package ports

import (
	"context"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists an order that already received its identifier.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces a stored order. Returns ObjectNotFound when the order
	// was never added.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll returns every stored order in insertion order.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllActive returns orders in pending, preparing or ready status.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetActiveByLocation returns the active order bound to loc.
	// Returns ObjectNotFound when the location is free.
	GetActiveByLocation(ctx context.Context, loc kernel.Location) (*order.Order, error)
}
