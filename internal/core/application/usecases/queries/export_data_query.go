package queries

import (
	"context"
	"errors"
	"time"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/guard"
)

var ErrExportDataQueryIsNotConstructed = errors.New(
	"ExportDataQuery must be created via NewExportDataQuery constructor",
)

type ExportDataQuery struct {
	at    time.Time
	guard guard.ConstructorGuard
}

// NewExportDataQuery stamps the export with at.
func NewExportDataQuery(at time.Time) ExportDataQuery {
	return ExportDataQuery{at: at, guard: guard.NewConstructorGuard()}
}

func (q ExportDataQuery) Validate() error {
	return q.guard.Validate(ErrExportDataQueryIsNotConstructed)
}

// ExportData is a full copy of the catalog and the order history.
type ExportData struct {
	Products   []*catalog.Product
	Orders     []order.Snapshot
	Categories []catalog.Category
	ExportDate time.Time
}

type ExportDataQueryHandler struct {
	orders     OrderReader
	products   ProductReader
	categories CategoryReader
}

func NewExportDataQueryHandler(orders OrderReader, products ProductReader, categories CategoryReader) ExportDataQueryHandler {
	return ExportDataQueryHandler{orders: orders, products: products, categories: categories}
}

func (h ExportDataQueryHandler) Handle(ctx context.Context, q ExportDataQuery) (ExportData, error) {
	if err := q.Validate(); err != nil {
		return ExportData{}, err
	}

	products, err := h.products.GetAll(ctx)
	if err != nil {
		return ExportData{}, err
	}
	orders, err := h.orders.GetAll(ctx)
	if err != nil {
		return ExportData{}, err
	}
	categories, err := h.categories.GetAll(ctx)
	if err != nil {
		return ExportData{}, err
	}

	snapshots := make([]order.Snapshot, 0, len(orders))
	for _, o := range orders {
		snapshots = append(snapshots, o.Snapshot())
	}
	return ExportData{
		Products:   products,
		Orders:     snapshots,
		Categories: categories,
		ExportDate: q.at,
	}, nil
}
