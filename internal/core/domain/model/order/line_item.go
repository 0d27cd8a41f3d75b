package order

import (
	"errors"
	"strings"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via RestoreLineItem constructor")

// LineItem is one product row of an order. Name and unit price are captured
// when the product is first added, so later catalog edits do not reprice it.
type LineItem struct {
	productID kernel.UUID
	name      string
	unitPrice kernel.Money
	quantity  int
	guard     guard.ConstructorGuard
}

// RestoreLineItem rebuilds a line item from storage. Quantity must be at least 1.
func RestoreLineItem(productID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	var nameErr, qtyErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("item name")
	}
	if quantity < 1 {
		qtyErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if err := errors.Join(productID.Validate(), unitPrice.Validate(), nameErr, qtyErr); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		productID: productID,
		name:      name,
		unitPrice: unitPrice,
		quantity:  quantity,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li LineItem) ProductID() kernel.UUID  { return li.productID }
func (li LineItem) Name() string            { return li.name }
func (li LineItem) UnitPrice() kernel.Money { return li.unitPrice }
func (li LineItem) Quantity() int           { return li.quantity }

// Subtotal is quantity × unit price.
func (li LineItem) Subtotal() kernel.Money {
	return li.unitPrice.Mul(li.quantity)
}

func (li LineItem) withQuantity(q int) LineItem {
	li.quantity = q
	return li
}
