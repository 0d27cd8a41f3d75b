package queries

import (
	"context"
	"errors"
	"time"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/guard"
)

var ErrGetDashboardQueryIsNotConstructed = errors.New(
	"GetDashboardQuery must be created via NewGetDashboardQuery constructor",
)

const dashboardListSize = 5

type GetDashboardQuery struct {
	day               time.Time
	lowStockThreshold int
	guard             guard.ConstructorGuard
}

// NewGetDashboardQuery summarizes day. A non-positive threshold uses
// catalog.DefaultLowStockThreshold.
func NewGetDashboardQuery(day time.Time, lowStockThreshold int) GetDashboardQuery {
	if lowStockThreshold <= 0 {
		lowStockThreshold = catalog.DefaultLowStockThreshold
	}
	return GetDashboardQuery{day: day, lowStockThreshold: lowStockThreshold, guard: guard.NewConstructorGuard()}
}

func (q GetDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardQueryIsNotConstructed)
}

type Dashboard struct {
	Day             time.Time
	OrdersToday     int
	RevenueToday    kernel.Money
	ProductCount    int
	LowStockCount   int
	RecentSales     []order.Snapshot
	PopularProducts []ProductSales
}

type GetDashboardQueryHandler struct {
	orders   OrderReader
	products ProductReader
}

func NewGetDashboardQueryHandler(orders OrderReader, products ProductReader) GetDashboardQueryHandler {
	return GetDashboardQueryHandler{orders: orders, products: products}
}

// Handle counts every order created on the day, sums revenue of the completed
// ones, and lists the five latest completed sales and the five best sellers
// of all time.
func (h GetDashboardQueryHandler) Handle(ctx context.Context, q GetDashboardQuery) (Dashboard, error) {
	if err := q.Validate(); err != nil {
		return Dashboard{}, err
	}

	orders, err := h.orders.GetAll(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	products, err := h.products.GetAll(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{Day: startOfDay(q.day), RevenueToday: kernel.ZeroMoney(), ProductCount: len(products)}
	for _, o := range orders {
		if !sameDay(o.CreatedAt(), q.day) {
			continue
		}
		d.OrdersToday++
		if o.Status() == order.Completed {
			d.RevenueToday = d.RevenueToday.Add(o.Total())
		}
	}

	for _, p := range products {
		if p.IsLowStock(q.lowStockThreshold) {
			d.LowStockCount++
		}
	}

	for i := len(orders) - 1; i >= 0 && len(d.RecentSales) < dashboardListSize; i-- {
		if orders[i].Status() == order.Completed {
			d.RecentSales = append(d.RecentSales, orders[i].Snapshot())
		}
	}
	d.PopularProducts = rankProducts(orders, dashboardListSize)
	return d, nil
}
