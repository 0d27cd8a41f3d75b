package redisstore

import (
	"context"

	"pos/internal/adapters/out/records"
	"pos/internal/core/ports"
)

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

type UnitOfWork struct {
	store  *Store
	staged *records.Staged
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.staged == nil {
		uow.staged = records.NewStaged(uow.store)
	}
	return nil
}

// Commit sends the staged writes as one MULTI/EXEC. On failure nothing was
// applied and the transaction is closed.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if uow.staged == nil {
		return records.ErrNoTransaction
	}
	writes, deletes := uow.staged.Changes()
	uow.staged = nil
	return uow.store.Apply(ctx, writes, deletes)
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.staged == nil {
		return records.ErrNoTransaction
	}
	uow.staged = nil
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return records.NewOrderRepository(uow.current())
}

func (uow *UnitOfWork) ProductRepository() ports.ProductRepository {
	return records.NewProductRepository(uow.current())
}

func (uow *UnitOfWork) CategoryRepository() ports.CategoryRepository {
	return records.NewCategoryRepository(uow.current())
}

func (uow *UnitOfWork) current() ports.RecordStore {
	if uow.staged != nil {
		return uow.staged
	}
	return uow.store
}
