// Package commands holds the write side of the point of sale: saving orders,
// moving them through their statuses and editing the catalog. A handler
// validates its command, opens a unit of work, mutates aggregates and commits.
package commands

import (
	"context"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/ports"
)

// Each handler asks only for the unit of work it writes through.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory exposes the order repository bound to the open transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory exposes the product repository bound to the open transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderUoW is enough for saving an order without touching stock.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ProductUoW manages transactions for catalog operations.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
	}

	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// UoW spans orders and products. Completing an order writes the order and
	// the decremented stock in one commit:
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer uow.Rollback(ctx)
	//	// load and save through uow.OrderRepository() and uow.ProductRepository()
	//	return uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
	}

	// UoWFactory creates order and product units of work.
	UoWFactory interface {
		Create() UoW
	}

	// LocationReleaser frees a location once its order left the active statuses.
	LocationReleaser interface {
		MarkFree(loc kernel.Location)
	}
)
