package queries_test

import (
	"context"
	"testing"
	"time"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductReader) GetAll(ctx context.Context) ([]*catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

type MockCategoryReader struct {
	mock.Mock
}

func (m *MockCategoryReader) GetAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

var (
	day1 = time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)
	day2 = day1.AddDate(0, 0, 1)
	day3 = day1.AddDate(0, 0, 2)
)

func product(t *testing.T, name, price string, stock int, category kernel.UUID) *catalog.Product {
	t.Helper()
	p, err := catalog.RestoreProduct(kernel.NewUUID(), name, category, kernel.MustMoney(price), stock, "", day1)
	require.NoError(t, err)
	return p
}

type line struct {
	p   *catalog.Product
	qty int
}

func orderWith(t *testing.T, status order.Status, createdAt time.Time, lines ...line) *order.Order {
	t.Helper()
	items := make([]order.LineItem, 0, len(lines))
	for _, l := range lines {
		it, err := order.RestoreLineItem(l.p.ID(), l.p.Name(), l.p.Price(), l.qty)
		require.NoError(t, err)
		items = append(items, it)
	}
	o, err := order.RestoreOrder(kernel.NewUUID(), items, status, nil, kernel.ZeroTaxRate(),
		createdAt, createdAt, nil, false, status == order.Completed)
	require.NoError(t, err)
	return o
}
