package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pos/internal/adapters/out/rabbitmq"
	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, exchange, key string, body []byte, headers amqp.Table) error {
	args := m.Called(ctx, exchange, key, body, headers)
	return args.Error(0)
}

func ticketSnapshot(t *testing.T) order.Snapshot {
	t.Helper()
	loc, err := kernel.NewLocation(kernel.Delivery, 2, 0)
	require.NoError(t, err)
	o, err := order.NewOrder(loc, kernel.ZeroTaxRate(), time.Now())
	require.NoError(t, err)
	p, err := catalog.NewProduct("Tacos", kernel.NewUUID(), kernel.MustMoney("30"), 5, "", time.Now())
	require.NoError(t, err)
	_, err = o.AddItem(p, time.Now())
	require.NoError(t, err)
	return o.Snapshot()
}

func TestKitchenTicketPublisher(t *testing.T) {
	t.Run("publishes by location type", func(t *testing.T) {
		pub := &MockPublisher{}
		var body []byte
		pub.On("Publish", mock.Anything, "kitchen", "ticket.domicilio", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { body = args.Get(3).([]byte) }).
			Return(nil).Once()

		err := rabbitmq.NewKitchenTicketPublisher(pub, "").SendKitchenTicket(t.Context(), ticketSnapshot(t))
		require.NoError(t, err)
		pub.AssertExpectations(t)

		var msg rabbitmq.KitchenTicketMessage
		require.NoError(t, json.Unmarshal(body, &msg))
		assert.Equal(t, "domicilio_2", msg.Location)
		assert.Equal(t, "Dom 2", msg.LocationDisplay)
		assert.Empty(t, msg.OrderID, "unsaved orders carry no id")
		require.Len(t, msg.Items, 1)
		assert.Equal(t, 1, msg.Items[0].Quantity)
	})

	t.Run("returns broker errors", func(t *testing.T) {
		pub := &MockPublisher{}
		pub.On("Publish", mock.Anything, "cocina", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("publish NACK from broker"))

		err := rabbitmq.NewKitchenTicketPublisher(pub, "cocina").SendKitchenTicket(t.Context(), ticketSnapshot(t))
		require.Error(t, err)
	})
}
