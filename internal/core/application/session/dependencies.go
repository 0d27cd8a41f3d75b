// Package session holds the working state of one billing terminal: the order
// being edited and the occupancy of service locations.
//
// A Session replaces process-wide "current order" and "occupied locations"
// variables with one object that is passed to whoever drives the terminal.
// Every operation runs under the session lock, so two requests for the same
// terminal cannot interleave.
package session

import (
	"context"
	"errors"
	"time"

	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/location"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"
)

// ErrNoOrderSelected is returned by operations that need a current order.
var ErrNoOrderSelected = errs.NewPolicyViolationError("no order selected")

type (
	// OrderReader reads stored orders.
	OrderReader interface {
		Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
		GetAll(ctx context.Context) ([]*order.Order, error)
		GetActiveByLocation(ctx context.Context, loc kernel.Location) (*order.Order, error)
	}

	// ProductLookup resolves catalog products.
	ProductLookup interface {
		Product(ctx context.Context, id kernel.UUID) (*catalog.Product, error)
	}

	OrderSaver interface {
		Handle(ctx context.Context, cmd commands.SaveOrderCommand) (kernel.UUID, error)
	}

	OrderTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (order.Snapshot, error)
	}
)

// Dependencies are the collaborators a Session drives. All are required.
type Dependencies struct {
	Registry     *location.Registry
	Orders       OrderReader
	Catalog      ProductLookup
	Saver        OrderSaver
	Transitioner OrderTransitioner
	Kitchen      ports.KitchenTicketSender
	Receipts     ports.ReceiptPrinter
}

func (d Dependencies) validate() error {
	var missing []error
	if d.Registry == nil {
		missing = append(missing, errs.NewValueIsRequiredError("registry"))
	}
	if d.Orders == nil {
		missing = append(missing, errs.NewValueIsRequiredError("order reader"))
	}
	if d.Catalog == nil {
		missing = append(missing, errs.NewValueIsRequiredError("catalog"))
	}
	if d.Saver == nil {
		missing = append(missing, errs.NewValueIsRequiredError("order saver"))
	}
	if d.Transitioner == nil {
		missing = append(missing, errs.NewValueIsRequiredError("order transitioner"))
	}
	if d.Kitchen == nil {
		missing = append(missing, errs.NewValueIsRequiredError("kitchen ticket sender"))
	}
	if d.Receipts == nil {
		missing = append(missing, errs.NewValueIsRequiredError("receipt printer"))
	}
	return errors.Join(missing...)
}

// Config holds the terminal settings.
type Config struct {
	// TaxRate is applied to orders created by this session.
	TaxRate kernel.TaxRate
	// MaxLocations is the highest index offered per location type.
	MaxLocations int
	// Now defaults to time.Now.
	Now func() time.Time
}
