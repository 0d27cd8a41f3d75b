package http

import (
	"net/http"

	"pos/internal/adapters/out/records"
	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetProducts handles GET /api/v1/products?categoryId=&search=.
func (s *Server) GetProducts(c echo.Context) error {
	var category *kernel.UUID
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return s.fail(c, err)
		}
		category = &id
	}

	query, err := queries.NewGetProductsQuery(category, c.QueryParam("search"))
	if err != nil {
		return s.fail(c, err)
	}
	products, err := s.h.Catalog.Products(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newProductResponses(products, s.opts.LowStockThreshold))
}

// GetCategories handles GET /api/v1/categories.
func (s *Server) GetCategories(c echo.Context) error {
	categories, err := s.h.Catalog.Categories(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	response := make([]records.CategoryRecord, 0, len(categories))
	for _, cat := range categories {
		response = append(response, records.CategoryFromDomain(cat))
	}
	return c.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /api/v1/products.
func (s *Server) CreateProduct(c echo.Context) error {
	cmd, err := s.bindProduct(c, nil)
	if err != nil {
		return s.fail(c, err)
	}
	p, err := s.h.SaveProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, newProductResponse(p, s.opts.LowStockThreshold))
}

// UpdateProduct handles PUT /api/v1/products/:id.
func (s *Server) UpdateProduct(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := s.bindProduct(c, &id)
	if err != nil {
		return s.fail(c, err)
	}
	p, err := s.h.SaveProduct.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newProductResponse(p, s.opts.LowStockThreshold))
}

// DeleteProduct handles DELETE /api/v1/products/:id.
func (s *Server) DeleteProduct(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteProductCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.h.DeleteProduct.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) bindProduct(c echo.Context, id *kernel.UUID) (commands.SaveProductCommand, error) {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return commands.SaveProductCommand{}, badRequest("Invalid request body")
	}
	category, err := kernel.UUIDFromString(req.CategoryID)
	if err != nil {
		return commands.SaveProductCommand{}, err
	}
	price, err := kernel.MoneyFromString(req.Price.String())
	if err != nil {
		return commands.SaveProductCommand{}, err
	}
	return commands.NewSaveProductCommand(id, req.Name, category, price, req.Stock, req.Description, s.opts.Now())
}
