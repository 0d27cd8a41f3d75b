package http

import (
	"net/http"
	"strconv"
	"time"

	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// GetOrders handles GET /api/v1/orders?status=&date=&active= - order history,
// newest first.
func (s *Server) GetOrders(c echo.Context) error {
	var filter queries.OrdersFilter
	if raw := c.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return s.fail(c, err)
		}
		filter.Status = status
	}
	if raw := c.QueryParam("date"); raw != "" {
		day, err := parseDay(raw)
		if err != nil {
			return s.fail(c, err)
		}
		filter.Day = day
	}
	if raw := c.QueryParam("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return s.fail(c, badRequest("active must be true or false"))
		}
		filter.ActiveOnly = active
	}

	query, err := queries.NewGetOrdersQuery(filter)
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.h.GetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponses(orders))
}

// TransitionOrder handles POST /api/v1/orders/:id/status - moves a stored
// order along its lifecycle.
func (s *Server) TransitionOrder(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	target, err := bindStatus(c)
	if err != nil {
		return s.fail(c, err)
	}
	snapshot, err := s.h.Session.Transition(c.Request().Context(), id, target)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(snapshot))
}

// GetOrderQRCode handles GET /api/v1/orders/:id/qrcode - a PNG linking to
// the order.
func (s *Server) GetOrderQRCode(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	if _, err = s.h.Orders.Get(c.Request().Context(), id); err != nil {
		return s.fail(c, err)
	}
	png, err := s.opts.QR.Generate(id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func parseDay(raw string) (time.Time, error) {
	day, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return time.Time{}, badRequest("dates use the YYYY-MM-DD format")
	}
	return day, nil
}
