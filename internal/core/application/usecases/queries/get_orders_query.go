package queries

import (
	"context"
	"errors"
	"slices"
	"time"

	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// OrdersFilter narrows GetOrdersQuery. Zero values mean "any".
type OrdersFilter struct {
	Status     order.Status
	Day        time.Time
	ActiveOnly bool
}

type GetOrdersQuery struct {
	filter OrdersFilter
	guard  guard.ConstructorGuard
}

func NewGetOrdersQuery(filter OrdersFilter) (GetOrdersQuery, error) {
	if filter.Status != order.Unknown {
		if err := filter.Status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}
	return GetOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) matches(o *order.Order) bool {
	f := q.filter
	switch {
	case f.Status != order.Unknown && o.Status() != f.Status:
		return false
	case f.ActiveOnly && !o.Status().IsActive():
		return false
	case !f.Day.IsZero() && !sameDay(o.CreatedAt(), f.Day):
		return false
	}
	return true
}

type GetOrdersQueryHandler struct {
	orders OrderReader
}

func NewGetOrdersQueryHandler(orders OrderReader) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{orders: orders}
}

// Handle returns matching orders, newest first.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, q GetOrdersQuery) ([]order.Snapshot, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	all, err := h.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]order.Snapshot, 0, len(all))
	for _, o := range all {
		if q.matches(o) {
			out = append(out, o.Snapshot())
		}
	}
	slices.SortStableFunc(out, func(a, b order.Snapshot) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// sameDay compares calendar days in ref's location.
func sameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
