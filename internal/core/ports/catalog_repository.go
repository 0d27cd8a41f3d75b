package ports

import (
	"context"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
)

// ProductRepository defines the persistence contract for products.
type ProductRepository interface {
	Add(ctx context.Context, product *catalog.Product) error

	// Update replaces a stored product. Returns ObjectNotFound for unknown ids.
	Update(ctx context.Context, product *catalog.Product) error

	// Delete removes a product. Returns ObjectNotFound for unknown ids.
	Delete(ctx context.Context, id kernel.UUID) error

	Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error)

	GetAll(ctx context.Context) ([]*catalog.Product, error)
}

// CategoryRepository exposes the category list. When nothing was stored the
// default category set is returned.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]catalog.Category, error)
}
