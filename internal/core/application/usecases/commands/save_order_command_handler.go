package commands

import (
	"context"
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

// SaveOrderCommandHandler stores an order. The first save assigns the
// identifier; later saves replace the stored copy.
type SaveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSaveOrderCommandHandler(uowFactory OrderUoWFactory) SaveOrderCommandHandler {
	return SaveOrderCommandHandler{uowFactory: uowFactory}
}

// Handle returns the identifier the order is stored under. A new order gets
// its identifier only once the commit succeeded.
func (h SaveOrderCommandHandler) Handle(ctx context.Context, cmd SaveOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	o := cmd.Order()
	isNew := !o.IsPersisted()

	stored := o
	if isNew {
		var err error
		if stored, err = o.WithID(kernel.NewUUID()); err != nil {
			return kernel.UUID{}, err
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	var err error
	if isNew {
		err = repo.Add(ctx, stored)
	} else {
		_, err = repo.Get(ctx, o.ID())
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			err = repo.Add(ctx, o)
		case err == nil:
			err = repo.Update(ctx, o)
		}
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	if isNew {
		if err := o.AssignID(stored.ID()); err != nil {
			return kernel.UUID{}, err
		}
	}
	return o.ID(), nil
}
