package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root for one tab: its line items, derived totals,
// status and the location it is served at.
//
// Order follows these invariants:
//   - total = subtotal + tax, tax = subtotal × taxRate, recomputed after every mutation
//   - every line item has quantity >= 1
//   - once the kitchen ticket is printed, items may be added but never removed or decremented
//   - a terminal order (completed, cancelled) is immutable
//   - a failed operation leaves the order unchanged
//
// The identifier is zero until the order is first saved (see AssignID).
type Order struct {
	id       kernel.UUID
	items    []LineItem
	status   Status
	location *kernel.Location
	taxRate  kernel.TaxRate

	subtotal kernel.Money
	tax      kernel.Money
	total    kernel.Money

	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time

	kitchenTicketPrinted bool
	isPaid               bool

	isConstructed bool
}

// NewOrder creates an empty pending order bound to location. The tax rate is
// fixed for the life of the order.
//
// Example:
//
//	loc, _ := kernel.NewLocation(kernel.Table, 3, kernel.DefaultMaxLocationIndex)
//	o, err := order.NewOrder(loc, kernel.ZeroTaxRate(), time.Now())
func NewOrder(location kernel.Location, taxRate kernel.TaxRate, at time.Time) (*Order, error) {
	if err := location.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		status:        Pending,
		location:      &location,
		taxRate:       taxRate,
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}
	o.recomputeTotals()
	return o, nil
}

// RestoreOrder rebuilds an order from storage. Location may be nil for
// records written before locations existed. Totals are recomputed from the
// items and tax rate rather than trusted from storage.
func RestoreOrder(
	id kernel.UUID,
	items []LineItem,
	status Status,
	location *kernel.Location,
	taxRate kernel.TaxRate,
	createdAt time.Time,
	updatedAt time.Time,
	completedAt *time.Time,
	kitchenTicketPrinted bool,
	isPaid bool,
) (*Order, error) {
	var locErr error
	if location != nil {
		locErr = location.Validate()
	}

	itemErrs := make([]error, 0, len(items))
	for _, it := range items {
		itemErrs = append(itemErrs, it.Validate())
	}

	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		locErr,
		errors.Join(itemErrs...),
	); err != nil {
		return nil, err
	}

	o := &Order{
		id:                   id,
		items:                slices.Clone(items),
		status:               status,
		location:             location,
		taxRate:              taxRate,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
		completedAt:          completedAt,
		kitchenTicketPrinted: kitchenTicketPrinted,
		isPaid:               isPaid,
		isConstructed:        true,
	}
	o.recomputeTotals()
	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID { return o.id }

// IsPersisted reports whether the order has been saved at least once.
func (o *Order) IsPersisted() bool { return !o.id.IsZero() }

func (o *Order) Status() Status          { return o.status }
func (o *Order) TaxRate() kernel.TaxRate { return o.taxRate }
func (o *Order) Subtotal() kernel.Money  { return o.subtotal }
func (o *Order) Tax() kernel.Money       { return o.tax }
func (o *Order) Total() kernel.Money     { return o.total }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }
func (o *Order) KitchenTicketPrinted() bool {
	return o.kitchenTicketPrinted
}
func (o *Order) IsPaid() bool { return o.isPaid }

// CompletedAt returns the completion time and whether it is set.
func (o *Order) CompletedAt() (time.Time, bool) {
	if o.completedAt == nil {
		return time.Time{}, false
	}
	return *o.completedAt, true
}

// Location returns the bound location and whether the order has one.
func (o *Order) Location() (kernel.Location, bool) {
	if o.location == nil {
		return kernel.Location{}, false
	}
	return *o.location, true
}

// IsAt reports whether the order is bound to loc.
func (o *Order) IsAt(loc kernel.Location) bool {
	return o.location != nil && o.location.IsEqual(loc)
}

// Items returns a copy of the line items in insertion order.
func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

// Item finds the line item for productID.
func (o *Order) Item(productID kernel.UUID) (LineItem, bool) {
	if i := o.indexOf(productID); i >= 0 {
		return o.items[i], true
	}
	return LineItem{}, false
}

func (o *Order) IsEmpty() bool { return len(o.items) == 0 }

// ItemCount is the total number of units across all line items.
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.items {
		n += it.quantity
	}
	return n
}

// AssignID sets the identifier on first save. Saving twice keeps the first id.
func (o *Order) AssignID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if o.IsPersisted() {
		if o.id.IsEqual(id) {
			return nil
		}
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("order already saved as %s", o.id))
	}
	o.id = id
	return nil
}

// WithID returns a copy of a never-saved order carrying id. The receiver
// keeps its zero id until AssignID, so a save that fails to commit leaves it
// unsaved.
func (o *Order) WithID(id kernel.UUID) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	cp := *o
	cp.items = slices.Clone(o.items)
	if o.location != nil {
		loc := *o.location
		cp.location = &loc
	}
	if o.completedAt != nil {
		at := *o.completedAt
		cp.completedAt = &at
	}
	if err := cp.AssignID(id); err != nil {
		return nil, err
	}
	return &cp, nil
}

// AddItem adds one unit of product: the existing line is incremented or a new
// line with quantity 1 is appended, capturing the product's current name and
// price. A product with no stock is ignored and AddItem reports false.
func (o *Order) AddItem(product *catalog.Product, at time.Time) (bool, error) {
	if err := product.Validate(); err != nil {
		return false, err
	}
	if err := o.ensureMutable(); err != nil {
		return false, err
	}
	if !product.IsAvailable() {
		return false, nil
	}

	if i := o.indexOf(product.ID()); i >= 0 {
		o.items[i] = o.items[i].withQuantity(o.items[i].quantity + 1)
	} else {
		item, err := RestoreLineItem(product.ID(), product.Name(), product.Price(), 1)
		if err != nil {
			return false, err
		}
		o.items = append(o.items, item)
	}

	o.touch(at)
	return true, nil
}

// ChangeQuantity adjusts the quantity of an existing line by delta and removes
// the line when it drops to zero or below. After the kitchen ticket is printed
// a negative delta is refused with a PolicyViolationError.
func (o *Order) ChangeQuantity(productID kernel.UUID, delta int, at time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if o.kitchenTicketPrinted && delta < 0 {
		return errs.NewPolicyViolationError("items cannot be removed after the kitchen ticket was printed")
	}

	i := o.indexOf(productID)
	if i < 0 {
		return errs.NewObjectNotFoundError("product", productID.String())
	}
	if delta == 0 {
		return nil
	}

	if q := o.items[i].quantity + delta; q <= 0 {
		o.items = slices.Delete(o.items, i, i+1)
	} else {
		o.items[i] = o.items[i].withQuantity(q)
	}

	o.touch(at)
	return nil
}

// MarkKitchenTicketPrinted records that the kitchen was notified. From then
// on items can only be added. Marking twice is a no-op.
func (o *Order) MarkKitchenTicketPrinted(at time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if o.kitchenTicketPrinted {
		return nil
	}
	o.kitchenTicketPrinted = true
	o.touch(at)
	return nil
}

// TransitionTo moves the order along the state machine. Entering Completed
// marks the order paid and stamps the completion time. Stock and location side
// effects belong to the lifecycle service, not to the aggregate.
func (o *Order) TransitionTo(target Status, at time.Time) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	if next == Completed {
		o.isPaid = true
		completedAt := at
		o.completedAt = &completedAt
	}
	o.touch(at)
	return nil
}

// ValidateTransition checks an edge without changing the order.
func (o *Order) ValidateTransition(target Status) error {
	_, err := o.status.TransitionTo(target)
	return err
}

func (o *Order) ensureMutable() error {
	if o.status.IsTerminal() {
		return errs.NewPolicyViolationError(fmt.Sprintf("order is %s and can no longer change", o.status))
	}
	return nil
}

func (o *Order) indexOf(productID kernel.UUID) int {
	return slices.IndexFunc(o.items, func(it LineItem) bool {
		return it.productID.IsEqual(productID)
	})
}

func (o *Order) touch(at time.Time) {
	o.updatedAt = at
	o.recomputeTotals()
}

func (o *Order) recomputeTotals() {
	subtotal := kernel.ZeroMoney()
	for _, it := range o.items {
		subtotal = subtotal.Add(it.Subtotal())
	}
	o.subtotal = subtotal
	o.tax = subtotal.MulRate(o.taxRate)
	o.total = subtotal.Add(o.tax)
}
