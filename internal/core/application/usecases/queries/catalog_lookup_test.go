package queries_test

import (
	"testing"

	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogLookup_Products(t *testing.T) {
	food := kernel.NewUUID()
	drinks := kernel.NewUUID()
	burger := product(t, "Hamburguesa Clásica", "12.50", 25, food)
	pizza := product(t, "Pizza Margherita", "15.00", 15, food)
	cola := product(t, "Coca Cola", "2.50", 50, drinks)

	products := &MockProductReader{}
	products.On("GetAll", mock.Anything).Return([]*catalog.Product{burger, pizza, cola}, nil)
	lookup := queries.NewCatalogLookup(products, &MockCategoryReader{})

	tests := []struct {
		name     string
		category *kernel.UUID
		search   string
		want     []string
	}{
		{"everything", nil, "", []string{"Hamburguesa Clásica", "Pizza Margherita", "Coca Cola"}},
		{"by category", &drinks, "", []string{"Coca Cola"}},
		{"by name fragment, case-insensitive", nil, "PIZZA", []string{"Pizza Margherita"}},
		{"both filters", &food, "cola", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := queries.NewGetProductsQuery(tt.category, tt.search)
			require.NoError(t, err)

			got, err := lookup.Products(t.Context(), q)
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name())
			}
			assert.Equal(t, tt.want, names)
		})
	}

	t.Run("rejects unconstructed query", func(t *testing.T) {
		_, err := lookup.Products(t.Context(), queries.GetProductsQuery{})
		require.ErrorIs(t, err, queries.ErrGetProductsQueryIsNotConstructed)
	})
}

func TestCatalogLookup_ProductAndCategories(t *testing.T) {
	p := product(t, "Tacos", "30.00", 10, kernel.NewUUID())
	missing := kernel.NewUUID()

	products := &MockProductReader{}
	products.On("Get", mock.Anything, p.ID()).Return(p, nil)
	products.On("Get", mock.Anything, missing).Return(nil, errs.NewObjectNotFoundError("product", missing.String()))
	categories := &MockCategoryReader{}
	categories.On("GetAll", mock.Anything).Return(catalog.DefaultCategories(), nil)

	lookup := queries.NewCatalogLookup(products, categories)

	got, err := lookup.Product(t.Context(), p.ID())
	require.NoError(t, err)
	assert.Equal(t, "30.00", got.Price().String())

	_, err = lookup.Product(t.Context(), missing)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	cats, err := lookup.Categories(t.Context())
	require.NoError(t, err)
	assert.Len(t, cats, 9)

	products.AssertExpectations(t)
	categories.AssertExpectations(t)
}
