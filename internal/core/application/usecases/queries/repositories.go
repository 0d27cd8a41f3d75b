// Package queries contains read-only operations over orders and the catalog.
// Handlers never write; they return domain snapshots or report values.
package queries

import (
	"context"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
)

// Read-side views of the repositories. ports repositories satisfy them.
type (
	OrderReader interface {
		Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
		GetAll(ctx context.Context) ([]*order.Order, error)
	}

	ProductReader interface {
		Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error)
		GetAll(ctx context.Context) ([]*catalog.Product, error)
	}

	CategoryReader interface {
		GetAll(ctx context.Context) ([]catalog.Category, error)
	}
)
