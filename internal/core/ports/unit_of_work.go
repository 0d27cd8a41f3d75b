package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Writes made through
// its repositories between Begin and Commit become visible together or not at
// all. Without Begin, repositories write through immediately.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active or the write fails.
	Commit(ctx context.Context) error

	// Rollback discards staged writes. Returns an error if no transaction is
	// active.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ProductRepository() ProductRepository
	CategoryRepository() CategoryRepository
}
