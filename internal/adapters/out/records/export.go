package records

import (
	"time"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/order"
)

// ExportDocument is the backup file layout: every record plus the time the
// copy was taken.
type ExportDocument struct {
	Products   []ProductRecord  `json:"products"`
	Orders     []OrderRecord    `json:"orders"`
	Categories []CategoryRecord `json:"categories"`
	ExportDate string           `json:"exportDate"`
}

func NewExportDocument(
	products []*catalog.Product,
	orders []order.Snapshot,
	categories []catalog.Category,
	exportDate time.Time,
) ExportDocument {
	doc := ExportDocument{
		Products:   make([]ProductRecord, 0, len(products)),
		Orders:     make([]OrderRecord, 0, len(orders)),
		Categories: make([]CategoryRecord, 0, len(categories)),
		ExportDate: exportDate.Format(time.RFC3339),
	}
	for _, p := range products {
		doc.Products = append(doc.Products, ProductFromDomain(p))
	}
	for _, o := range orders {
		doc.Orders = append(doc.Orders, OrderFromSnapshot(o))
	}
	for _, c := range categories {
		doc.Categories = append(doc.Categories, CategoryFromDomain(c))
	}
	return doc
}

// ExportFileName is the timestamped name offered for download.
func ExportFileName(at time.Time) string {
	return "pos-backup-" + at.Format("2006-01-02-150405") + ".json"
}
