package services

import (
	"errors"
	"time"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
)

// StockPolicy decides whether completing an order may drive stock below zero.
type StockPolicy struct {
	AllowNegative bool
}

// DefaultStockPolicy allows overselling: stock is decremented without a floor.
func DefaultStockPolicy() StockPolicy {
	return StockPolicy{AllowNegative: true}
}

// TransitionResult describes what a status change touched.
type TransitionResult struct {
	// Products whose stock changed and must be persisted with the order.
	ChangedProducts []*catalog.Product
	// MissingProducts are line items whose product is no longer in the catalog;
	// their stock is not adjusted.
	MissingProducts []kernel.UUID
	// FreedLocation is set when the order left the active statuses and its
	// location must be released.
	FreedLocation *kernel.Location
}

// OrderLifecycle is the domain service that moves an order along the state
// machine together with its stock side effects.
//
// Business rules:
//   - only edges of order.Status are legal
//   - entering completed decrements each line's product stock by its quantity,
//     marks the order paid and stamps completion time
//   - entering completed or cancelled frees the order's location
//   - preparing and ready change only the status and updated time
//   - every check runs before any mutation, so a failure changes nothing
//
// Example usage:
//
//	lifecycle := services.NewOrderLifecycle(services.DefaultStockPolicy())
//	res, err := lifecycle.Transition(o, order.Completed, products, time.Now())
//	if err != nil {
//	    return err
//	}
//	// persist o and res.ChangedProducts atomically, then free res.FreedLocation
type OrderLifecycle struct {
	policy StockPolicy
}

func NewOrderLifecycle(policy StockPolicy) OrderLifecycle {
	return OrderLifecycle{policy: policy}
}

func (l OrderLifecycle) Policy() StockPolicy {
	return l.policy
}

// Transition applies target to o. products is the catalog slice used to
// resolve line items on completion; it may contain unrelated products.
func (l OrderLifecycle) Transition(
	o *order.Order,
	target order.Status,
	products []*catalog.Product,
	at time.Time,
) (TransitionResult, error) {
	if err := o.Validate(); err != nil {
		return TransitionResult{}, err
	}
	if err := o.ValidateTransition(target); err != nil {
		return TransitionResult{}, err
	}

	var (
		res     TransitionResult
		touched []stockChange
	)
	if target == order.Completed {
		var err error
		touched, res.MissingProducts, err = l.planStock(o, products)
		if err != nil {
			return TransitionResult{}, err
		}
	}

	if err := o.TransitionTo(target, at); err != nil {
		return TransitionResult{}, err
	}

	for _, c := range touched {
		if err := c.product.DecreaseStock(c.qty, l.policy.AllowNegative); err != nil {
			return TransitionResult{}, err
		}
		res.ChangedProducts = append(res.ChangedProducts, c.product)
	}

	if target.IsTerminal() {
		if loc, ok := o.Location(); ok {
			res.FreedLocation = &loc
		}
	}

	return res, nil
}

type stockChange struct {
	product *catalog.Product
	qty     int
}

func (l OrderLifecycle) planStock(
	o *order.Order,
	products []*catalog.Product,
) ([]stockChange, []kernel.UUID, error) {
	byID := make(map[kernel.UUID]*catalog.Product, len(products))
	for _, p := range products {
		if p.Validate() != nil {
			continue
		}
		byID[p.ID()] = p
	}

	var (
		changes []stockChange
		missing []kernel.UUID
		errs    []error
	)
	for _, it := range o.Items() {
		p, ok := byID[it.ProductID()]
		if !ok {
			missing = append(missing, it.ProductID())
			continue
		}
		if err := p.CanDecreaseStock(it.Quantity(), l.policy.AllowNegative); err != nil {
			errs = append(errs, err)
			continue
		}
		changes = append(changes, stockChange{product: p, qty: it.Quantity()})
	}

	if err := errors.Join(errs...); err != nil {
		return nil, nil, err
	}
	return changes, missing, nil
}
