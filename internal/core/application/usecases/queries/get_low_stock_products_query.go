package queries

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/pkg/guard"
)

var ErrGetLowStockProductsQueryIsNotConstructed = errors.New(
	"GetLowStockProductsQuery must be created via NewGetLowStockProductsQuery constructor",
)

type GetLowStockProductsQuery struct {
	threshold int
	guard     guard.ConstructorGuard
}

// NewGetLowStockProductsQuery selects products with stock at or below
// threshold; a non-positive threshold uses catalog.DefaultLowStockThreshold.
func NewGetLowStockProductsQuery(threshold int) GetLowStockProductsQuery {
	if threshold <= 0 {
		threshold = catalog.DefaultLowStockThreshold
	}
	return GetLowStockProductsQuery{threshold: threshold, guard: guard.NewConstructorGuard()}
}

func (q GetLowStockProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockProductsQueryIsNotConstructed)
}

func (q GetLowStockProductsQuery) Threshold() int {
	return q.threshold
}

type GetLowStockProductsQueryHandler struct {
	products ProductReader
}

func NewGetLowStockProductsQueryHandler(products ProductReader) GetLowStockProductsQueryHandler {
	return GetLowStockProductsQueryHandler{products: products}
}

// Handle returns the matching products, lowest stock first.
func (h GetLowStockProductsQueryHandler) Handle(
	ctx context.Context,
	q GetLowStockProductsQuery,
) ([]*catalog.Product, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	all, err := h.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*catalog.Product, 0)
	for _, p := range all {
		if p.IsLowStock(q.threshold) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b *catalog.Product) int {
		if c := cmp.Compare(a.Stock(), b.Stock()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name(), b.Name())
	})
	return out, nil
}
