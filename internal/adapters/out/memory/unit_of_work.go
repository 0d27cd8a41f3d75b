package memory

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

// UnitOfWork stages writes between Begin and Commit and applies them under
// the store lock.
type UnitOfWork struct {
	store  *Store
	staged *records.Staged
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.staged != nil {
		return nil
	}
	uow.staged = records.NewStaged(uow.store)
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.staged == nil {
		return records.ErrNoTransaction
	}
	uow.store.Apply(uow.staged.Changes())
	uow.staged = nil
	return nil
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
