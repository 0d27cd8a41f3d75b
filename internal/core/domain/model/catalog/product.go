package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

// DefaultLowStockThreshold is the stock level at or below which a product is
// reported as low on the dashboard.
const DefaultLowStockThreshold = 10

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")

// Product is a sellable item. Stock is an integer count that only the order
// completion flow and the catalog editor change.
//
// Stock is non-negative when a product is created or edited; it may go below
// zero afterwards when completion is allowed to oversell.
type Product struct {
	id          kernel.UUID
	name        string
	categoryID  kernel.UUID
	price       kernel.Money
	stock       int
	description string
	createdAt   time.Time

	isConstructed bool
}

// NewProduct creates a product with a fresh identifier.
func NewProduct(
	name string,
	categoryID kernel.UUID,
	price kernel.Money,
	stock int,
	description string,
	createdAt time.Time,
) (*Product, error) {
	p := &Product{
		id:            kernel.NewUUID(),
		description:   strings.TrimSpace(description),
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setName(name),
		p.setCategory(categoryID),
		p.setPrice(price),
		p.setStock(stock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct rebuilds a product from storage. Negative stock is accepted
// because a completed sale may have oversold it.
func RestoreProduct(
	id kernel.UUID,
	name string,
	categoryID kernel.UUID,
	price kernel.Money,
	stock int,
	description string,
	createdAt time.Time,
) (*Product, error) {
	p := &Product{
		stock:         stock,
		description:   description,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		p.setName(name),
		p.setCategory(categoryID),
		p.setPrice(price),
	); err != nil {
		return nil, err
	}
	p.id = id

	return p, nil
}

func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID         { return p.id }
func (p *Product) Name() string            { return p.name }
func (p *Product) CategoryID() kernel.UUID { return p.categoryID }
func (p *Product) Price() kernel.Money     { return p.price }
func (p *Product) Stock() int              { return p.stock }
func (p *Product) Description() string     { return p.description }
func (p *Product) CreatedAt() time.Time    { return p.createdAt }

// IsAvailable reports whether the product can be added to an order.
func (p *Product) IsAvailable() bool {
	return p.stock > 0
}

// IsLowStock reports whether stock is at or below threshold.
func (p *Product) IsLowStock(threshold int) bool {
	return p.stock <= threshold
}

// Update replaces the editable attributes. Either all changes apply or none.
func (p *Product) Update(name string, categoryID kernel.UUID, price kernel.Money, stock int, description string) error {
	next := *p
	if err := errors.Join(
		next.setName(name),
		next.setCategory(categoryID),
		next.setPrice(price),
		next.setStock(stock),
	); err != nil {
		return err
	}
	next.description = strings.TrimSpace(description)

	*p = next
	return nil
}

// CanDecreaseStock checks whether qty units can be taken. With allowNegative
// the check always passes.
func (p *Product) CanDecreaseStock(qty int, allowNegative bool) error {
	if qty <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, "unbounded")
	}
	if !allowNegative && p.stock < qty {
		return errs.NewPolicyViolationErrorWithCause(
			"insufficient stock",
			fmt.Errorf("%s has %d, %d requested", p.name, p.stock, qty),
		)
	}
	return nil
}

// DecreaseStock takes qty units, subject to CanDecreaseStock.
func (p *Product) DecreaseStock(qty int, allowNegative bool) error {
	if err := p.CanDecreaseStock(qty, allowNegative); err != nil {
		return err
	}
	p.stock -= qty
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setCategory(categoryID kernel.UUID) error {
	if err := categoryID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("category", err)
	}
	p.categoryID = categoryID
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded")
	}
	p.stock = stock
	return nil
}
