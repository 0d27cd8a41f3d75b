package order

import (
	"time"

	"pos/internal/core/domain/model/kernel"
)

// ItemSnapshot is a read-only view of a line item.
type ItemSnapshot struct {
	ProductID kernel.UUID
	Name      string
	UnitPrice kernel.Money
	Quantity  int
	Subtotal  kernel.Money
}

// Snapshot is a read-only copy of an order handed to rendering, printing and
// export. Changing it does not affect the order.
type Snapshot struct {
	ID                   kernel.UUID
	Persisted            bool
	Items                []ItemSnapshot
	Status               Status
	Location             *kernel.Location
	TaxRate              kernel.TaxRate
	Subtotal             kernel.Money
	Tax                  kernel.Money
	Total                kernel.Money
	CreatedAt            time.Time
	UpdatedAt            time.Time
	CompletedAt          *time.Time
	KitchenTicketPrinted bool
	IsPaid               bool
}

// LocationName is the display name of the bound location, or "" if none.
func (s Snapshot) LocationName() string {
	if s.Location == nil {
		return ""
	}
	return s.Location.DisplayName()
}

// Snapshot copies the current state.
func (o *Order) Snapshot() Snapshot {
	items := make([]ItemSnapshot, 0, len(o.items))
	for _, it := range o.items {
		items = append(items, ItemSnapshot{
			ProductID: it.productID,
			Name:      it.name,
			UnitPrice: it.unitPrice,
			Quantity:  it.quantity,
			Subtotal:  it.Subtotal(),
		})
	}

	var loc *kernel.Location
	if o.location != nil {
		l := *o.location
		loc = &l
	}
	var completedAt *time.Time
	if o.completedAt != nil {
		c := *o.completedAt
		completedAt = &c
	}

	return Snapshot{
		ID:                   o.id,
		Persisted:            o.IsPersisted(),
		Items:                items,
		Status:               o.status,
		Location:             loc,
		TaxRate:              o.taxRate,
		Subtotal:             o.subtotal,
		Tax:                  o.tax,
		Total:                o.total,
		CreatedAt:            o.createdAt,
		UpdatedAt:            o.updatedAt,
		CompletedAt:          completedAt,
		KitchenTicketPrinted: o.kitchenTicketPrinted,
		IsPaid:               o.isPaid,
	}
}
