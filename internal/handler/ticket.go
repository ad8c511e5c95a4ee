package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// TicketLister reads the buyer's tickets.
type TicketLister interface {
	ListByUser(ctx context.Context, userID string) ([]model.TicketView, error)
}

// TicketHandler serves the buyer's ticket list.
type TicketHandler struct {
	tickets TicketLister
}

// NewTicketHandler constructs a TicketHandler and panics if tickets is nil.
func NewTicketHandler(tickets TicketLister) *TicketHandler {
	if tickets == nil {
		panic("nil repository passed to NewTicketHandler")
	}
	return &TicketHandler{tickets: tickets}
}

// ListTickets handles GET /v1/tickets?userId=U.  Rows are ordered by event
// date, soonest first.
func (h *TicketHandler) ListTickets(c echo.Context) error {
	userID, ok := resolveUser(c, c.QueryParam("userId"))
	if !ok {
		return forbiddenUser(c)
	}
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId is required"})
	}
	rows, err := h.tickets.ListByUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "service temporarily unavailable, retry the request"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": rows})
}
