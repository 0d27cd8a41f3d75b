package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrGetSalesReportQueryIsNotConstructed = errors.New(
	"GetSalesReportQuery must be created via NewGetSalesReportQuery constructor",
)

// GetSalesReportQuery selects completed orders created between two calendar
// days, both inclusive.
type GetSalesReportQuery struct {
	from  time.Time
	to    time.Time
	guard guard.ConstructorGuard
}

func NewGetSalesReportQuery(from, to time.Time) (GetSalesReportQuery, error) {
	if from.IsZero() {
		return GetSalesReportQuery{}, errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return GetSalesReportQuery{}, errs.NewValueIsRequiredError("to")
	}
	from, to = startOfDay(from), startOfDay(to)
	if to.Before(from) {
		return GetSalesReportQuery{}, errs.NewValueIsInvalidErrorWithCause("date range",
			fmt.Errorf("%s is after %s", from.Format(time.DateOnly), to.Format(time.DateOnly)))
	}
	return GetSalesReportQuery{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSalesReportQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesReportQueryIsNotConstructed)
}

func (q GetSalesReportQuery) From() time.Time { return q.from }
func (q GetSalesReportQuery) To() time.Time   { return q.to }

func (q GetSalesReportQuery) includes(t time.Time) bool {
	day := startOfDay(t.In(q.from.Location()))
	return !day.Before(q.from) && !day.After(q.to)
}

type SalesReport struct {
	From          time.Time
	To            time.Time
	Orders        []order.Snapshot
	Count         int
	Revenue       kernel.Money
	AverageTicket kernel.Money
	TopProducts   []ProductSales
}

// TopProductsLimit caps SalesReport.TopProducts.
const TopProductsLimit = 10

type GetSalesReportQueryHandler struct {
	orders OrderReader
}

func NewGetSalesReportQueryHandler(orders OrderReader) GetSalesReportQueryHandler {
	return GetSalesReportQueryHandler{orders: orders}
}

func (h GetSalesReportQueryHandler) Handle(ctx context.Context, q GetSalesReportQuery) (SalesReport, error) {
	if err := q.Validate(); err != nil {
		return SalesReport{}, err
	}

	all, err := h.orders.GetAll(ctx)
	if err != nil {
		return SalesReport{}, err
	}

	report := SalesReport{From: q.from, To: q.to, Revenue: kernel.ZeroMoney(), AverageTicket: kernel.ZeroMoney()}
	selected := make([]*order.Order, 0)
	for _, o := range all {
		if o.Status() != order.Completed || !q.includes(o.CreatedAt()) {
			continue
		}
		selected = append(selected, o)
		report.Orders = append(report.Orders, o.Snapshot())
		report.Revenue = report.Revenue.Add(o.Total())
	}

	report.Count = len(selected)
	if report.Count > 0 {
		report.AverageTicket = report.Revenue.DivInt(report.Count)
	}
	report.TopProducts = rankProducts(selected, TopProductsLimit)
	return report, nil
}
