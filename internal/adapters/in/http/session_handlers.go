package http

import (
	"net/http"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// GetLocations handles GET /api/v1/locations?type= - the location board. An
// empty type lists every type.
func (s *Server) GetLocations(c echo.Context) error {
	types := kernel.LocationTypes()
	if raw := c.QueryParam("type"); raw != "" {
		typ, err := kernel.LocationTypeFromString(raw)
		if err != nil {
			return s.fail(c, err)
		}
		types = []kernel.LocationType{typ}
	}

	response := make([]LocationResponse, 0)
	for _, typ := range types {
		board, err := s.h.Session.Locations(typ)
		if err != nil {
			return s.fail(c, err)
		}
		response = append(response, newLocationResponses(board)...)
	}
	return c.JSON(http.StatusOK, response)
}

// SelectLocation handles POST /api/v1/session/location - opens the order at
// a location, resuming the stored one if any.
func (s *Server) SelectLocation(c echo.Context) error {
	loc, err := bindLocation(c)
	if err != nil {
		return s.fail(c, err)
	}
	snapshot, err := s.h.Session.SelectLocation(c.Request().Context(), loc)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(snapshot))
}

// StartNewOrder handles POST /api/v1/session/orders - starts a new order on a
// free location.
func (s *Server) StartNewOrder(c echo.Context) error {
	loc, err := bindLocation(c)
	if err != nil {
		return s.fail(c, err)
	}
	snapshot, err := s.h.Session.StartNewOrder(c.Request().Context(), loc)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, newOrderResponse(snapshot))
}

// GetCurrentOrder handles GET /api/v1/session/order.
func (s *Server) GetCurrentOrder(c echo.Context) error {
	snapshot, ok := s.h.Session.Current()
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, newOrderResponse(snapshot))
}

// ClearCurrentOrder handles DELETE /api/v1/session/order.
func (s *Server) ClearCurrentOrder(c echo.Context) error {
	s.h.Session.Clear(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// AddItem handles POST /api/v1/session/items.
func (s *Server) AddItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, badRequest("Invalid request body"))
	}
	id, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return s.fail(c, err)
	}
	snapshot, err := s.h.Session.AddItem(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(snapshot))
}

// ChangeQuantity handles PATCH /api/v1/session/items/:productId.
func (s *Server) ChangeQuantity(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("productId"))
	if err != nil {
		return s.fail(c, err)
	}
	var req ChangeQuantityRequest
	if err = c.Bind(&req); err != nil {
		return s.fail(c, badRequest("Invalid request body"))
	}
	snapshot, err := s.h.Session.ChangeQuantity(c.Request().Context(), id, req.Delta)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(snapshot))
}

// SaveCurrentOrder handles POST /api/v1/session/save.
func (s *Server) SaveCurrentOrder(c echo.Context) error {
	snapshot, err := s.h.Session.Save(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(snapshot))
}

// TransitionCurrentOrder handles POST /api/v1/session/status.
func (s *Server) TransitionCurrentOrder(c echo.Context) error {
	target, err := bindStatus(c)
	if err != nil {
		return s.fail(c, err)
	}
	snapshot, err := s.h.Session.TransitionCurrent(c.Request().Context(), target)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(snapshot))
}

// PrintKitchenTicket handles POST /api/v1/session/kitchen-ticket.
func (s *Server) PrintKitchenTicket(c echo.Context) error {
	snapshot, err := s.h.Session.PrintKitchenTicket(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(snapshot))
}

// PrintReceipt handles POST /api/v1/session/receipt.
func (s *Server) PrintReceipt(c echo.Context) error {
	if err := s.h.Session.PrintReceipt(c.Request().Context()); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RebuildOccupancy handles POST /api/v1/occupancy/rebuild.
func (s *Server) RebuildOccupancy(c echo.Context) error {
	occupied, err := s.h.Session.RebuildOccupancy(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	ids := make([]string, 0, len(occupied))
	for _, loc := range occupied {
		ids = append(ids, loc.ID())
	}
	return c.JSON(http.StatusOK, map[string][]string{"occupied": ids})
}

func bindLocation(c echo.Context) (kernel.Location, error) {
	var req SelectLocationRequest
	if err := c.Bind(&req); err != nil {
		return kernel.Location{}, badRequest("Invalid request body")
	}
	return kernel.ParseLocationID(req.Location)
}

func bindStatus(c echo.Context) (order.Status, error) {
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return order.Unknown, badRequest("Invalid request body")
	}
	return order.StatusFromString(req.Status)
}
