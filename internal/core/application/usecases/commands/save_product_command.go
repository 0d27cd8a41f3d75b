package commands

import (
	"errors"
	"strings"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrSaveProductCommandIsNotConstructed = errors.New(
	"SaveProductCommand must be created via NewSaveProductCommand constructor",
)

// SaveProductCommand creates a product when ID is nil and edits the stored
// one otherwise.
type SaveProductCommand struct { //nolint:recvcheck //using for validation
	id          *kernel.UUID
	name        string
	categoryID  kernel.UUID
	price       kernel.Money
	stock       int
	description string
	at          time.Time

	guard guard.ConstructorGuard
}

func NewSaveProductCommand(
	id *kernel.UUID,
	name string,
	categoryID kernel.UUID,
	price kernel.Money,
	stock int,
	description string,
	at time.Time,
) (SaveProductCommand, error) {
	cmd := SaveProductCommand{
		description: strings.TrimSpace(description),
		at:          at,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setID(id),
		cmd.setName(name),
		cmd.setCategoryID(categoryID),
		cmd.setPrice(price),
		cmd.setStock(stock),
	); err != nil {
		return SaveProductCommand{}, err
	}

	return cmd, nil
}

func (c SaveProductCommand) Validate() error {
	return c.guard.Validate(ErrSaveProductCommandIsNotConstructed)
}

// ID returns the product to edit, or false for a new product.
func (c SaveProductCommand) ID() (kernel.UUID, bool) {
	if c.id == nil {
		return kernel.UUID{}, false
	}
	return *c.id, true
}

func (c SaveProductCommand) Name() string            { return c.name }
func (c SaveProductCommand) CategoryID() kernel.UUID { return c.categoryID }
func (c SaveProductCommand) Price() kernel.Money     { return c.price }
func (c SaveProductCommand) Stock() int              { return c.stock }
func (c SaveProductCommand) Description() string     { return c.description }
func (c SaveProductCommand) At() time.Time           { return c.at }

func (c *SaveProductCommand) setID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *SaveProductCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *SaveProductCommand) setCategoryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("category", err)
	}
	c.categoryID = id
	return nil
}

func (c *SaveProductCommand) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	c.price = price
	return nil
}

func (c *SaveProductCommand) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded")
	}
	c.stock = stock
	return nil
}
