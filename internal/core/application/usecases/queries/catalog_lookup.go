package queries

import (
	"context"
	"errors"
	"strings"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/guard"
)

var ErrGetProductsQueryIsNotConstructed = errors.New(
	"GetProductsQuery must be created via NewGetProductsQuery constructor",
)

// GetProductsQuery filters the product list by category and by a
// case-insensitive name fragment. Both filters are optional.
type GetProductsQuery struct {
	categoryID kernel.UUID
	search     string
	guard      guard.ConstructorGuard
}

// NewGetProductsQuery builds the filter; a nil categoryID lists every category.
func NewGetProductsQuery(categoryID *kernel.UUID, search string) (GetProductsQuery, error) {
	q := GetProductsQuery{
		search: strings.ToLower(strings.TrimSpace(search)),
		guard:  guard.NewConstructorGuard(),
	}
	if categoryID != nil {
		if err := categoryID.Validate(); err != nil {
			return GetProductsQuery{}, err
		}
		q.categoryID = *categoryID
	}
	return q, nil
}

func (q GetProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetProductsQueryIsNotConstructed)
}

func (q GetProductsQuery) matches(p *catalog.Product) bool {
	if !q.categoryID.IsZero() && !p.CategoryID().IsEqual(q.categoryID) {
		return false
	}
	return q.search == "" || strings.Contains(strings.ToLower(p.Name()), q.search)
}

// CatalogLookup resolves products and categories for billing and rendering.
// It never changes stock; that happens only when an order completes or a
// product is saved.
type CatalogLookup struct {
	products   ProductReader
	categories CategoryReader
}

func NewCatalogLookup(products ProductReader, categories CategoryReader) CatalogLookup {
	return CatalogLookup{products: products, categories: categories}
}

// Product returns the current name, price and stock of id.
func (l CatalogLookup) Product(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	return l.products.Get(ctx, id)
}

func (l CatalogLookup) Products(ctx context.Context, q GetProductsQuery) ([]*catalog.Product, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	all, err := l.products.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*catalog.Product, 0, len(all))
	for _, p := range all {
		if q.matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (l CatalogLookup) Categories(ctx context.Context) ([]catalog.Category, error) {
	return l.categories.GetAll(ctx)
}
