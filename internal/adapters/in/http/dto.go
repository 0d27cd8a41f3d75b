package http

import (
	"encoding/json"
	"time"

	"pos/internal/adapters/out/records"
	"pos/internal/core/application/session"
	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/catalog"
	"pos/internal/core/domain/model/order"
)

// Orders and products are rendered in their record layout so API clients and
// export files read the same fields.

type OrderResponse struct {
	records.OrderRecord
	Saved bool `json:"saved"`
}

func newOrderResponse(s order.Snapshot) OrderResponse {
	r := OrderResponse{OrderRecord: records.OrderFromSnapshot(s), Saved: s.Persisted}
	if !s.Persisted {
		r.ID = ""
	}
	return r
}

func newOrderResponses(list []order.Snapshot) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, s := range list {
		out = append(out, newOrderResponse(s))
	}
	return out
}

type ProductResponse struct {
	records.ProductRecord
	Available bool `json:"available"`
	LowStock  bool `json:"lowStock"`
}

func newProductResponses(list []*catalog.Product, lowStockThreshold int) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, newProductResponse(p, lowStockThreshold))
	}
	return out
}

func newProductResponse(p *catalog.Product, lowStockThreshold int) ProductResponse {
	return ProductResponse{
		ProductRecord: records.ProductFromDomain(p),
		Available:     p.IsAvailable(),
		LowStock:      p.IsLowStock(lowStockThreshold),
	}
}

type LocationResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Index       int    `json:"index"`
	DisplayName string `json:"displayName"`
	Occupied    bool   `json:"occupied"`
	Current     bool   `json:"current"`
}

func newLocationResponses(board []session.LocationStatus) []LocationResponse {
	out := make([]LocationResponse, 0, len(board))
	for _, b := range board {
		out = append(out, LocationResponse{
			ID:          b.Location.ID(),
			Type:        b.Location.Type().String(),
			Index:       b.Location.Index(),
			DisplayName: b.Location.DisplayName(),
			Occupied:    b.Occupied,
			Current:     b.Current,
		})
	}
	return out
}

type ProductSalesResponse struct {
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	Revenue   json.Number `json:"revenue"`
}

func newProductSales(list []queries.ProductSales) []ProductSalesResponse {
	out := make([]ProductSalesResponse, 0, len(list))
	for _, ps := range list {
		out = append(out, ProductSalesResponse{
			ProductID: ps.ProductID.String(),
			Name:      ps.Name,
			Quantity:  ps.Quantity,
			Revenue:   json.Number(ps.Revenue.String()),
		})
	}
	return out
}

// DashboardResponse leaves out the catalog figures for cashiers.
type DashboardResponse struct {
	Day             string                 `json:"day"`
	OrdersToday     int                    `json:"ordersToday"`
	RevenueToday    json.Number            `json:"revenueToday"`
	ProductCount    *int                   `json:"productCount,omitempty"`
	LowStockCount   *int                   `json:"lowStockCount,omitempty"`
	RecentSales     []OrderResponse        `json:"recentSales"`
	PopularProducts []ProductSalesResponse `json:"popularProducts"`
}

func newDashboardResponse(d queries.Dashboard, role Role) DashboardResponse {
	r := DashboardResponse{
		Day:             d.Day.Format(time.DateOnly),
		OrdersToday:     d.OrdersToday,
		RevenueToday:    json.Number(d.RevenueToday.String()),
		RecentSales:     newOrderResponses(d.RecentSales),
		PopularProducts: newProductSales(d.PopularProducts),
	}
	if role == RoleAdmin {
		r.ProductCount = &d.ProductCount
		r.LowStockCount = &d.LowStockCount
	}
	return r
}

type SalesReportResponse struct {
	From          string                 `json:"from"`
	To            string                 `json:"to"`
	Count         int                    `json:"count"`
	Revenue       json.Number            `json:"revenue"`
	AverageTicket json.Number            `json:"averageTicket"`
	Orders        []OrderResponse        `json:"orders"`
	TopProducts   []ProductSalesResponse `json:"topProducts"`
}

func newSalesReportResponse(r queries.SalesReport) SalesReportResponse {
	return SalesReportResponse{
		From:          r.From.Format(time.DateOnly),
		To:            r.To.Format(time.DateOnly),
		Count:         r.Count,
		Revenue:       json.Number(r.Revenue.String()),
		AverageTicket: json.Number(r.AverageTicket.String()),
		Orders:        newOrderResponses(r.Orders),
		TopProducts:   newProductSales(r.TopProducts),
	}
}

type SelectLocationRequest struct {
	Location string `json:"location"`
}

type AddItemRequest struct {
	ProductID string `json:"productId"`
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ProductRequest struct {
	Name        string      `json:"name"`
	CategoryID  string      `json:"categoryId"`
	Price       json.Number `json:"price"`
	Stock       int         `json:"stock"`
	Description string      `json:"description"`
}
