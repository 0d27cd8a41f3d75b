package commands

import (
	"context"
	"log/slog"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/order"
	"pos/internal/core/domain/services"
	"pos/internal/core/ports"
)

// TransitionOrderCommandHandler runs the order lifecycle against stored data.
// The order and every product whose stock changed are written in one unit of
// work. After the commit the order's location is released when the order
// became terminal, and a status-changed event is published.
//
// Example:
//
//	handler := NewTransitionOrderCommandHandler(uowFactory, lifecycle, registry, publisher, logger)
//	cmd, _ := NewTransitionOrderCommand(orderID, order.Completed, time.Now())
//	snapshot, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // the order is not ready yet
//	case errors.Is(err, errs.ErrPolicyViolation):
//	    // not enough stock under a strict policy
//	}
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.OrderLifecycle
	locations  LocationReleaser
	events     ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler builds the handler. events may be nil.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	lifecycle services.OrderLifecycle,
	locations LocationReleaser,
	events ports.OrderEventPublisher,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		locations:  locations,
		events:     events,
		logger:     logger.With("component", "TransitionOrderCommandHandler"),
	}
}

// Handle returns the order as stored after the transition.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}
	from := o.Status()

	var products []*catalog.Product
	if cmd.Target() == order.Completed {
		if products, err = productRepo.GetAll(ctx); err != nil {
			return order.Snapshot{}, err
		}
	}

	res, err := h.lifecycle.Transition(o, cmd.Target(), products, cmd.At())
	if err != nil {
		return order.Snapshot{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return order.Snapshot{}, err
	}
	for _, p := range res.ChangedProducts {
		if err = productRepo.Update(ctx, p); err != nil {
			return order.Snapshot{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	if res.FreedLocation != nil {
		h.locations.MarkFree(*res.FreedLocation)
	}
	if len(res.MissingProducts) > 0 {
		h.logger.Warn("completed order references products missing from the catalog",
			"order_id", o.ID().String(), "missing", len(res.MissingProducts))
	}

	snapshot := o.Snapshot()
	h.publish(ctx, ports.OrderStatusChanged{Order: snapshot, From: from, To: o.Status(), OccurredAt: cmd.At()})
	return snapshot, nil
}

func (h TransitionOrderCommandHandler) publish(ctx context.Context, event ports.OrderStatusChanged) {
	if h.events == nil {
		return
	}
	if err := h.events.PublishStatusChanged(ctx, event); err != nil {
		h.logger.Error("failed to publish status change",
			"order_id", event.Order.ID.String(), "status", event.To.String(), "error", err)
	}
}
