// Package records maps catalog and order aggregates to JSON records and
// implements the repositories on top of any ports.RecordStore.
//
// Each record key holds a JSON array: "products", "orders" and "categories".
// The field names follow the layout the billing terminal has always written,
// so exported files and existing stores stay readable.
package records

import (
	"encoding/json"
	"fmt"
	"time"

	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeLayout is the timestamp format used in records, in local time.
const TimeLayout = "2006-01-02 15:04:05"

// ProductRecord is the stored form of catalog.Product.
type ProductRecord struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	CategoryID  string      `json:"categoryId"`
	Price       json.Number `json:"price"`
	Stock       int         `json:"stock"`
	Description string      `json:"description,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
}

// CategoryRecord is the stored form of catalog.Category.
type CategoryRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// ItemRecord is one order line.
type ItemRecord struct {
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Quantity  int         `json:"quantity"`
	Subtotal  json.Number `json:"subtotal"`
}

// OrderRecord is the stored form of order.Order. Location fields are empty
// for orders taken before locations existed.
type OrderRecord struct {
	ID                   string       `json:"id"`
	Items                []ItemRecord `json:"items"`
	Subtotal             json.Number  `json:"subtotal"`
	Tax                  json.Number  `json:"tax"`
	Total                json.Number  `json:"total"`
	TaxRate              json.Number  `json:"taxRate,omitempty"`
	Status               string       `json:"status"`
	Location             string       `json:"location,omitempty"`
	LocationType         string       `json:"locationType,omitempty"`
	LocationDisplay      string       `json:"locationDisplay,omitempty"`
	CreatedAt            string       `json:"createdAt"`
	UpdatedAt            string       `json:"updatedAt,omitempty"`
	CompletedAt          string       `json:"completedAt,omitempty"`
	KitchenTicketPrinted bool         `json:"kitchenTicketPrinted"`
	IsPaid               bool         `json:"isPaid"`
}

// ParseID accepts a UUID or a legacy identifier such as "1001". Legacy
// identifiers map to a stable name-derived UUID so references between records
// keep matching.
func ParseID(s string) (kernel.UUID, error) {
	if s == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("id")
	}
	if _, err := uuid.Parse(s); err == nil {
		return kernel.UUIDFromString(s)
	}
	return kernel.UUIDFromName("legacy:" + s), nil
}

func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(TimeLayout)
}

// ParseTime reads TimeLayout in local time and falls back to RFC 3339.
// The empty string yields the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(TimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("timestamp", err)
	}
	return t, nil
}

func number(m kernel.Money) json.Number {
	return json.Number(m.String())
}

func money(field string, n json.Number) (kernel.Money, error) {
	if n == "" {
		return kernel.ZeroMoney(), nil
	}
	m, err := kernel.MoneyFromString(n.String())
	if err != nil {
		return kernel.Money{}, fmt.Errorf("%s: %w", field, err)
	}
	return m, nil
}

// ProductFromDomain maps a product to its record.
func ProductFromDomain(p *catalog.Product) ProductRecord {
	return ProductRecord{
		ID:          p.ID().String(),
		Name:        p.Name(),
		CategoryID:  p.CategoryID().String(),
		Price:       number(p.Price()),
		Stock:       p.Stock(),
		Description: p.Description(),
		CreatedAt:   FormatTime(p.CreatedAt()),
	}
}

func productToDomain(r ProductRecord) (*catalog.Product, error) {
	id, err := ParseID(r.ID)
	if err != nil {
		return nil, err
	}
	categoryID, err := ParseID(r.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("product %s category: %w", r.ID, err)
	}
	price, err := money("price", r.Price)
	if err != nil {
		return nil, err
	}
	createdAt, err := ParseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return catalog.RestoreProduct(id, r.Name, categoryID, price, r.Stock, r.Description, createdAt)
}

// CategoryFromDomain maps a category to its record.
func CategoryFromDomain(c catalog.Category) CategoryRecord {
	return CategoryRecord{
		ID:    c.ID().String(),
		Name:  c.Name(),
		Color: c.Color(),
		Icon:  c.Icon(),
	}
}

func categoryToDomain(r CategoryRecord) (catalog.Category, error) {
	id, err := ParseID(r.ID)
	if err != nil {
		return catalog.Category{}, err
	}
	return catalog.RestoreCategory(id, r.Name, r.Color, r.Icon)
}

// OrderFromSnapshot maps an order to its record. Totals are written for
// readers of exported files; they are recomputed on load.
func OrderFromSnapshot(s order.Snapshot) OrderRecord {
	items := make([]ItemRecord, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, ItemRecord{
			ProductID: it.ProductID.String(),
			Name:      it.Name,
			Price:     number(it.UnitPrice),
			Quantity:  it.Quantity,
			Subtotal:  number(it.Subtotal),
		})
	}

	rec := OrderRecord{
		ID:                   s.ID.String(),
		Items:                items,
		Subtotal:             number(s.Subtotal),
		Tax:                  number(s.Tax),
		Total:                number(s.Total),
		TaxRate:              json.Number(s.TaxRate.String()),
		Status:               s.Status.String(),
		CreatedAt:            FormatTime(s.CreatedAt),
		UpdatedAt:            FormatTime(s.UpdatedAt),
		KitchenTicketPrinted: s.KitchenTicketPrinted,
		IsPaid:               s.IsPaid,
	}
	if s.Location != nil {
		rec.Location = s.Location.ID()
		rec.LocationType = s.Location.Type().String()
		rec.LocationDisplay = s.Location.DisplayName()
	}
	if s.CompletedAt != nil {
		rec.CompletedAt = FormatTime(*s.CompletedAt)
	}
	return rec
}

func orderToDomain(r OrderRecord) (*order.Order, error) {
	id, err := ParseID(r.ID)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(r.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", r.ID, err)
	}

	items := make([]order.LineItem, 0, len(r.Items))
	for _, ir := range r.Items {
		productID, err := ParseID(ir.ProductID)
		if err != nil {
			return nil, fmt.Errorf("order %s item: %w", r.ID, err)
		}
		price, err := money("item price", ir.Price)
		if err != nil {
			return nil, err
		}
		it, err := order.RestoreLineItem(productID, ir.Name, price, ir.Quantity)
		if err != nil {
			return nil, fmt.Errorf("order %s item %s: %w", r.ID, ir.ProductID, err)
		}
		items = append(items, it)
	}

	var loc *kernel.Location
	if r.Location != "" {
		l, err := kernel.ParseLocationID(r.Location)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", r.ID, err)
		}
		loc = &l
	}

	taxRate, err := taxRateOf(r)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", r.ID, err)
	}

	createdAt, err := ParseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := ParseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	var completedAt *time.Time
	if r.CompletedAt != "" {
		c, err := ParseTime(r.CompletedAt)
		if err != nil {
			return nil, err
		}
		completedAt = &c
	}

	return order.RestoreOrder(id, items, status, loc, taxRate, createdAt, updatedAt, completedAt,
		r.KitchenTicketPrinted, r.IsPaid)
}

// taxRateOf reads the stored rate. Records written without one carry only the
// tax amount; the rate is derived from it so totals survive the reload.
func taxRateOf(r OrderRecord) (kernel.TaxRate, error) {
	if r.TaxRate != "" {
		return kernel.TaxRateFromString(r.TaxRate.String())
	}

	subtotal, err1 := decimal.NewFromString(r.Subtotal.String())
	tax, err2 := decimal.NewFromString(r.Tax.String())
	if err1 != nil || err2 != nil || subtotal.IsZero() {
		return kernel.ZeroTaxRate(), nil
	}
	rate, err := kernel.NewTaxRate(tax.Div(subtotal).Round(4))
	if err != nil {
		return kernel.ZeroTaxRate(), nil //nolint:nilerr // an unusable legacy amount means no tax
	}
	return rate, nil
}
