package queries

import (
	"cmp"
	"slices"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
)

// ProductSales aggregates the lines of completed orders for one product.
type ProductSales struct {
	ProductID kernel.UUID
	Name      string
	Quantity  int
	Revenue   kernel.Money
}

// rankProducts sums quantities per product over completed orders and returns
// the top limit by quantity, ties broken by name. limit <= 0 returns all.
func rankProducts(orders []*order.Order, limit int) []ProductSales {
	byID := make(map[kernel.UUID]*ProductSales)
	for _, o := range orders {
		if o.Status() != order.Completed {
			continue
		}
		for _, it := range o.Items() {
			ps, ok := byID[it.ProductID()]
			if !ok {
				ps = &ProductSales{ProductID: it.ProductID(), Name: it.Name(), Revenue: kernel.ZeroMoney()}
				byID[it.ProductID()] = ps
			}
			ps.Quantity += it.Quantity()
			ps.Revenue = ps.Revenue.Add(it.Subtotal())
		}
	}

	out := make([]ProductSales, 0, len(byID))
	for _, ps := range byID {
		out = append(out, *ps)
	}
	slices.SortFunc(out, func(a, b ProductSales) int {
		if c := cmp.Compare(b.Quantity, a.Quantity); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
