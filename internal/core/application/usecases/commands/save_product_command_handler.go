package commands

import (
	"context"

	"pos/internal/core/domain/model/catalog"
)

// SaveProductCommandHandler creates or edits a catalog product.
type SaveProductCommandHandler struct {
	uowFactory ProductUoWFactory
}

func NewSaveProductCommandHandler(uowFactory ProductUoWFactory) SaveProductCommandHandler {
	return SaveProductCommandHandler{uowFactory: uowFactory}
}

// Handle returns the stored product. Editing an unknown id fails with
// ObjectNotFound.
func (h SaveProductCommandHandler) Handle(ctx context.Context, cmd SaveProductCommand) (*catalog.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProductRepository()

	var product *catalog.Product
	if id, ok := cmd.ID(); ok {
		p, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err = p.Update(cmd.Name(), cmd.CategoryID(), cmd.Price(), cmd.Stock(), cmd.Description()); err != nil {
			return nil, err
		}
		if err = repo.Update(ctx, p); err != nil {
			return nil, err
		}
		product = p
	} else {
		p, err := catalog.NewProduct(cmd.Name(), cmd.CategoryID(), cmd.Price(), cmd.Stock(), cmd.Description(), cmd.At())
		if err != nil {
			return nil, err
		}
		if err = repo.Add(ctx, p); err != nil {
			return nil, err
		}
		product = p
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return product, nil
}
