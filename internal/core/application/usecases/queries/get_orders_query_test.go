package queries_test

import (
	"errors"
	"testing"

	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetOrdersQueryHandler(t *testing.T) {
	p := product(t, "Tacos", "30.00", 10, kernel.NewUUID())
	old := orderWith(t, order.Completed, day1, line{p, 1})
	mid := orderWith(t, order.Cancelled, day2, line{p, 1})
	newest := orderWith(t, order.Preparing, day2.Add(1), line{p, 2})

	reader := &MockOrderReader{}
	reader.On("GetAll", mock.Anything).Return([]*order.Order{old, mid, newest}, nil)
	handler := queries.NewGetOrdersQueryHandler(reader)

	tests := []struct {
		name   string
		filter queries.OrdersFilter
		want   []kernel.UUID
	}{
		{"all, newest first", queries.OrdersFilter{}, []kernel.UUID{newest.ID(), mid.ID(), old.ID()}},
		{"by status", queries.OrdersFilter{Status: order.Completed}, []kernel.UUID{old.ID()}},
		{"by day", queries.OrdersFilter{Day: day2}, []kernel.UUID{newest.ID(), mid.ID()}},
		{"active only", queries.OrdersFilter{ActiveOnly: true}, []kernel.UUID{newest.ID()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := queries.NewGetOrdersQuery(tt.filter)
			require.NoError(t, err)

			got, err := handler.Handle(t.Context(), q)
			require.NoError(t, err)

			ids := make([]kernel.UUID, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGetOrdersQuery_Errors(t *testing.T) {
	_, err := queries.NewGetOrdersQuery(queries.OrdersFilter{Status: order.Status(42)})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	reader := &MockOrderReader{}
	reader.On("GetAll", mock.Anything).Return(nil, errs.NewPersistenceFailureError("read orders", errors.New("boom")))
	q, err := queries.NewGetOrdersQuery(queries.OrdersFilter{})
	require.NoError(t, err)

	_, err = queries.NewGetOrdersQueryHandler(reader).Handle(t.Context(), q)
	require.ErrorIs(t, err, errs.ErrPersistenceFailure)

	_, err = queries.NewGetOrdersQueryHandler(reader).Handle(t.Context(), queries.GetOrdersQuery{})
	require.ErrorIs(t, err, queries.ErrGetOrdersQueryIsNotConstructed)
}
