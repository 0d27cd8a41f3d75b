// Package postgres stores records in a PostgreSQL table through GORM and
// implements the unit of work as one SQL transaction.
//
// Usage:
//
//	factory := postgres.NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.ProductRepository().Update(ctx, p); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin use the plain connection and write
// through immediately. Each UnitOfWork instance owns its own transaction, so
// concurrent callers must not share one.
package postgres

import (
	"context"

	"pos/internal/adapters/out/records"
	"pos/internal/core/ports"
	"pos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork wraps a GORM transaction. Record writes of the order and
// product repositories land in the same transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling it again while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return errs.NewPersistenceFailureError("begin transaction", err)
	}

	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return errs.NewPersistenceFailureError("commit transaction", err)
	}
	return nil
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	if err != nil {
		return errs.NewPersistenceFailureError("rollback transaction", err)
	}
	return nil
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return records.NewOrderRepository(uow.store())
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return records.NewProductRepository(uow.store())
}

func (uow *GormUnitOfWork) CategoryRepository() ports.CategoryRepository {
	return records.NewCategoryRepository(uow.store())
}

func (uow *GormUnitOfWork) store() *GormRecordStore {
	if uow.tx != nil {
		return &GormRecordStore{db: uow.tx, forUpdate: true}
	}
	return NewGormRecordStore(uow.db)
}
