package commands

import (
	"errors"

	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"
	"pos/internal/pkg/guard"
)

var ErrSaveOrderCommandIsNotConstructed = errors.New(
	"SaveOrderCommand must be created via NewSaveOrderCommand constructor",
)

// SaveOrderCommand persists the order being edited at a terminal.
//
// Example:
//
//	cmd, err := NewSaveOrderCommand(o)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("save order: %w", err)
//	}
type SaveOrderCommand struct { //nolint:recvcheck //using for validation
	order *order.Order

	guard guard.ConstructorGuard
}

// NewSaveOrderCommand rejects orders without items.
func NewSaveOrderCommand(o *order.Order) (SaveOrderCommand, error) {
	cmd := SaveOrderCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setOrder(o); err != nil {
		return SaveOrderCommand{}, err
	}
	return cmd, nil
}

func (c SaveOrderCommand) Validate() error {
	return c.guard.Validate(ErrSaveOrderCommandIsNotConstructed)
}

func (c SaveOrderCommand) Order() *order.Order { return c.order }

func (c *SaveOrderCommand) setOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.IsEmpty() {
		return errs.NewValueIsRequiredError("order items")
	}
	c.order = o
	return nil
}
