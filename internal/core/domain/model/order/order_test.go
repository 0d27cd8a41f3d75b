package order_test

import (
	"testing"
	"time"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func mesa(t *testing.T, i int) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(kernel.Table, i, kernel.DefaultMaxLocationIndex)
	require.NoError(t, err)
	return loc
}

func product(t *testing.T, name, price string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, kernel.NewUUID(), kernel.MustMoney(price), stock, "", t0)
	require.NoError(t, err)
	return p
}

func newOrder(t *testing.T, rate string) *order.Order {
	t.Helper()
	r, err := kernel.TaxRateFromString(rate)
	require.NoError(t, err)
	o, err := order.NewOrder(mesa(t, 3), r, t0)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates an empty pending order", func(t *testing.T) {
		o := newOrder(t, "0")

		require.NoError(t, o.Validate())
		assert.False(t, o.IsPersisted())
		assert.True(t, o.IsEmpty())
		assert.Equal(t, order.Pending, o.Status())
		assert.True(t, o.Total().IsZero())
		assert.Equal(t, t0, o.CreatedAt())
		assert.False(t, o.KitchenTicketPrinted())
		assert.False(t, o.IsPaid())

		loc, ok := o.Location()
		require.True(t, ok)
		assert.Equal(t, "mesa_3", loc.ID())
		assert.True(t, o.IsAt(mesa(t, 3)))
		assert.False(t, o.IsAt(mesa(t, 4)))
	})

	t.Run("requires a location", func(t *testing.T) {
		_, err := order.NewOrder(kernel.Location{}, kernel.ZeroTaxRate(), t0)
		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("appends then increments", func(t *testing.T) {
		o := newOrder(t, "0")
		burger := product(t, "Hamburguesa", "8.50", 10)

		added, err := o.AddItem(burger, t0)
		require.NoError(t, err)
		assert.True(t, added)
		added, err = o.AddItem(burger, t0.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, added)

		items := o.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity())
		assert.Equal(t, "17.00", items[0].Subtotal().String())
		assert.Equal(t, "17.00", o.Total().String())
		assert.Equal(t, t0.Add(time.Minute), o.UpdatedAt())
	})

	t.Run("out of stock product is a silent no-op", func(t *testing.T) {
		o := newOrder(t, "0")

		added, err := o.AddItem(product(t, "Agotado", "5", 0), t0.Add(time.Hour))

		require.NoError(t, err)
		assert.False(t, added)
		assert.True(t, o.IsEmpty())
		assert.Equal(t, t0, o.UpdatedAt())
	})

	t.Run("captures price at add time", func(t *testing.T) {
		o := newOrder(t, "0")
		p := product(t, "Gaseosa", "2.50", 10)
		_, err := o.AddItem(p, t0)
		require.NoError(t, err)

		require.NoError(t, p.Update("Gaseosa", p.CategoryID(), kernel.MustMoney("3.00"), 10, ""))
		_, err = o.AddItem(p, t0)
		require.NoError(t, err)

		item, ok := o.Item(p.ID())
		require.True(t, ok)
		assert.Equal(t, "2.50", item.UnitPrice().String())
		assert.Equal(t, "5.00", o.Subtotal().String())
	})

	t.Run("items keep insertion order", func(t *testing.T) {
		o := newOrder(t, "0")
		a, b := product(t, "A", "1", 5), product(t, "B", "2", 5)
		_, _ = o.AddItem(a, t0)
		_, _ = o.AddItem(b, t0)
		_, _ = o.AddItem(a, t0)

		items := o.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "A", items[0].Name())
		assert.Equal(t, "B", items[1].Name())
		assert.Equal(t, 3, o.ItemCount())
	})

	t.Run("rejects unconstructed product", func(t *testing.T) {
		o := newOrder(t, "0")
		_, err := o.AddItem(&catalog.Product{}, t0)
		require.ErrorIs(t, err, catalog.ErrProductIsNotConstructed)
	})
}

func TestOrder_ChangeQuantity(t *testing.T) {
	t.Run("adjusts and removes at zero", func(t *testing.T) {
		o := newOrder(t, "0")
		p := product(t, "Papas", "3.50", 10)
		_, _ = o.AddItem(p, t0)

		require.NoError(t, o.ChangeQuantity(p.ID(), 2, t0))
		item, _ := o.Item(p.ID())
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, "10.50", o.Total().String())

		require.NoError(t, o.ChangeQuantity(p.ID(), -5, t0))
		_, ok := o.Item(p.ID())
		assert.False(t, ok)
		assert.True(t, o.Total().IsZero())
	})

	t.Run("unknown product", func(t *testing.T) {
		o := newOrder(t, "0")
		err := o.ChangeQuantity(kernel.NewUUID(), 1, t0)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("decrement after kitchen ticket is refused", func(t *testing.T) {
		o := newOrder(t, "0")
		p := product(t, "Perro", "5.50", 10)
		_, _ = o.AddItem(p, t0)
		_, _ = o.AddItem(p, t0)
		require.NoError(t, o.MarkKitchenTicketPrinted(t0))

		err := o.ChangeQuantity(p.ID(), -1, t0)

		require.ErrorIs(t, err, errs.ErrPolicyViolation)
		item, _ := o.Item(p.ID())
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, "11.00", o.Total().String())
	})

	t.Run("increment after kitchen ticket is allowed", func(t *testing.T) {
		o := newOrder(t, "0")
		p := product(t, "Perro", "5.50", 10)
		_, _ = o.AddItem(p, t0)
		require.NoError(t, o.MarkKitchenTicketPrinted(t0))

		require.NoError(t, o.ChangeQuantity(p.ID(), 1, t0))
		added, err := o.AddItem(product(t, "Jugo", "3", 4), t0)
		require.NoError(t, err)
		assert.True(t, added)
		assert.Equal(t, 3, o.ItemCount())
	})
}

func TestOrder_Totals(t *testing.T) {
	t.Run("total equals subtotal times one plus rate for any sequence", func(t *testing.T) {
		o := newOrder(t, "0.16")
		a := product(t, "Hamburguesa", "8.50", 100)
		b := product(t, "Coca Cola", "2.50", 100)
		c := product(t, "Papas", "3.50", 100)

		steps := []func(){
			func() { _, _ = o.AddItem(a, t0) },
			func() { _, _ = o.AddItem(a, t0) },
			func() { _, _ = o.AddItem(b, t0) },
			func() { _ = o.ChangeQuantity(b.ID(), 1, t0) },
			func() { _, _ = o.AddItem(c, t0) },
			func() { _ = o.ChangeQuantity(a.ID(), -1, t0) },
			func() { _ = o.ChangeQuantity(c.ID(), -3, t0) },
		}

		rate := decimal.RequireFromString("0.16")
		for _, step := range steps {
			step()
			sum := decimal.Zero
			for _, it := range o.Items() {
				sum = sum.Add(it.Subtotal().Amount())
			}
			want := sum.Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
			assert.True(t, want.Equal(o.Total().Amount()), "want %s got %s", want, o.Total())
			assert.True(t, sum.Equal(o.Subtotal().Amount()))
		}
	})

	t.Run("sixteen percent tax on the reference order", func(t *testing.T) {
		o := newOrder(t, "0.16")
		burger := product(t, "Hamburguesa Clásica", "8.50", 10)
		cola := product(t, "Coca Cola", "2.50", 10)
		fries := product(t, "Papas Fritas", "3.50", 10)
		_, _ = o.AddItem(burger, t0)
		_, _ = o.AddItem(burger, t0)
		_, _ = o.AddItem(cola, t0)
		_, _ = o.AddItem(cola, t0)
		_, _ = o.AddItem(fries, t0)

		assert.Equal(t, "25.50", o.Subtotal().String())
		assert.Equal(t, "4.08", o.Tax().String())
		assert.Equal(t, "29.58", o.Total().String())
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("happy path to completed", func(t *testing.T) {
		o := newOrder(t, "0")

		require.NoError(t, o.TransitionTo(order.Preparing, t0.Add(time.Minute)))
		require.NoError(t, o.TransitionTo(order.Ready, t0.Add(2*time.Minute)))
		require.NoError(t, o.TransitionTo(order.Completed, t0.Add(3*time.Minute)))

		assert.Equal(t, order.Completed, o.Status())
		assert.True(t, o.IsPaid())
		completedAt, ok := o.CompletedAt()
		require.True(t, ok)
		assert.Equal(t, t0.Add(3*time.Minute), completedAt)
		assert.Equal(t, t0.Add(3*time.Minute), o.UpdatedAt())
	})

	t.Run("illegal edge leaves status unchanged", func(t *testing.T) {
		o := newOrder(t, "0")

		err := o.TransitionTo(order.Completed, t0.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, t0, o.UpdatedAt())
		require.ErrorIs(t, o.ValidateTransition(order.Ready), errs.ErrInvalidTransition)
		require.NoError(t, o.ValidateTransition(order.Cancelled))
	})

	t.Run("cancelled order is immutable", func(t *testing.T) {
		o := newOrder(t, "0")
		p := product(t, "A", "1", 5)
		_, _ = o.AddItem(p, t0)
		require.NoError(t, o.TransitionTo(order.Cancelled, t0))

		_, err := o.AddItem(p, t0)
		require.ErrorIs(t, err, errs.ErrPolicyViolation)
		require.ErrorIs(t, o.ChangeQuantity(p.ID(), 1, t0), errs.ErrPolicyViolation)
		require.ErrorIs(t, o.MarkKitchenTicketPrinted(t0), errs.ErrPolicyViolation)
		require.ErrorIs(t, o.TransitionTo(order.Pending, t0), errs.ErrInvalidTransition)
		assert.False(t, o.IsPaid())
	})
}

func TestOrder_AssignID(t *testing.T) {
	o := newOrder(t, "0")
	id := kernel.NewUUID()

	require.ErrorIs(t, o.AssignID(kernel.UUID{}), kernel.ErrUUIDIsNotConstructed)
	require.NoError(t, o.AssignID(id))
	assert.True(t, o.IsPersisted())
	require.NoError(t, o.AssignID(id))
	require.ErrorIs(t, o.AssignID(kernel.NewUUID()), errs.ErrValueIsInvalid)
	assert.True(t, o.ID().IsEqual(id))
}

func TestOrder_WithID(t *testing.T) {
	t.Run("copy carries the id and the receiver stays unsaved", func(t *testing.T) {
		o := newOrder(t, "0")
		tacos := product(t, "Tacos", "30.00", 10)
		_, err := o.AddItem(tacos, t0)
		require.NoError(t, err)
		id := kernel.NewUUID()

		cp, err := o.WithID(id)

		require.NoError(t, err)
		assert.True(t, cp.ID().IsEqual(id))
		assert.False(t, o.IsPersisted())

		require.NoError(t, cp.ChangeQuantity(tacos.ID(), 1, t0))
		item, _ := o.Item(tacos.ID())
		assert.Equal(t, 1, item.Quantity(), "items are not shared")
	})

	t.Run("saved order keeps its id", func(t *testing.T) {
		o := newOrder(t, "0")
		id := kernel.NewUUID()
		require.NoError(t, o.AssignID(id))

		_, err := o.WithID(id)
		require.NoError(t, err)
		_, err = o.WithID(kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("recomputes totals from items", func(t *testing.T) {
		item, err := order.RestoreLineItem(kernel.NewUUID(), "Ensalada", kernel.MustMoney("8.50"), 2)
		require.NoError(t, err)
		rate, _ := kernel.TaxRateFromString("0.16")
		loc := mesa(t, 1)

		o, err := order.RestoreOrder(kernel.NewUUID(), []order.LineItem{item}, order.Ready, &loc, rate,
			t0, t0, nil, true, false)

		require.NoError(t, err)
		assert.Equal(t, "17.00", o.Subtotal().String())
		assert.Equal(t, "19.72", o.Total().String())
		assert.True(t, o.KitchenTicketPrinted())
		assert.True(t, o.IsPersisted())
	})

	t.Run("allows records without location", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), nil, order.Completed, nil, kernel.ZeroTaxRate(),
			t0, t0, &t0, false, true)

		require.NoError(t, err)
		_, ok := o.Location()
		assert.False(t, ok)
		assert.False(t, o.IsAt(mesa(t, 1)))
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.UUID{}, []order.LineItem{{}}, order.Unknown, nil, kernel.ZeroTaxRate(),
			t0, t0, nil, false, false)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, order.ErrLineItemIsNotConstructed)
	})
}

func TestRestoreLineItem(t *testing.T) {
	_, err := order.RestoreLineItem(kernel.NewUUID(), "x", kernel.MustMoney("1"), 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = order.RestoreLineItem(kernel.NewUUID(), " ", kernel.MustMoney("1"), 1)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestOrder_Snapshot(t *testing.T) {
	o := newOrder(t, "0")
	p := product(t, "Mazorcada", "4.50", 3)
	_, _ = o.AddItem(p, t0)

	snap := o.Snapshot()
	snap.Items[0].Quantity = 99
	snap.Status = order.Cancelled

	item, _ := o.Item(p.ID())
	assert.Equal(t, 1, item.Quantity())
	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, "Mesa 3", snap.LocationName())
	assert.False(t, snap.Persisted)
	assert.Equal(t, "4.50", snap.Total.String())
}
