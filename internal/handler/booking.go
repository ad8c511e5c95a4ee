package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/service"
)

// BookingService is the booking use-case surface the handlers depend on.
type BookingService interface {
	BookSeats(ctx context.Context, req service.BookingRequest) (*service.BookingResult, error)
	Quote(ctx context.Context, req service.BookingRequest) (*service.Quote, error)
}

// BookingHandler turns seat selections into tickets.
type BookingHandler struct {
	svc BookingService
}

// NewBookingHandler constructs a BookingHandler and panics if svc is nil.
func NewBookingHandler(svc BookingService) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{svc: svc}
}

type claimRequest struct {
	UserID     string   `json:"userId" validate:"max=128"`
	SeatIDs    []uint64 `json:"seatIds" validate:"required,min=1,dive,gt=0"`
	PaymentRef string   `json:"paymentRef" validate:"max=255"`
}

// bindClaim parses the path and body shared by claim and quote.  A non-nil
// response error means the request has already been answered.
func bindClaim(c echo.Context) (service.BookingRequest, bool, error) {
	eventID, ok := parseID(c, "id")
	if !ok {
		return service.BookingRequest{}, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var body claimRequest
	if err := c.Bind(&body); err != nil {
		return service.BookingRequest{}, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&body); err != nil {
		return service.BookingRequest{}, false, c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, ok := resolveUser(c, body.UserID)
	if !ok {
		return service.BookingRequest{}, false, forbiddenUser(c)
	}
	return service.BookingRequest{
		EventID:    eventID,
		UserID:     userID,
		SeatIDs:    body.SeatIDs,
		PaymentRef: body.PaymentRef,
	}, true, nil
}

// Claim handles POST /v1/events/:id/seats:claim.  All requested seats
// become the buyer's with one ticket each, or nothing changes and 409 is
// returned.
func (h *BookingHandler) Claim(c echo.Context) error {
	req, ok, err := bindClaim(c)
	if !ok {
		return err
	}
	res, err := h.svc.BookSeats(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "reserved",
		"booked":      res.Booked,
		"total_cents": res.TotalCents,
		"tickets":     res.Tickets,
		"seats":       res.Seats,
	})
}

// Quote handles POST /v1/events/:id/seats:quote and prices the selection
// without claiming it.
func (h *BookingHandler) Quote(c echo.Context) error {
	req, ok, err := bindClaim(c)
	if !ok {
		return err
	}
	q, err := h.svc.Quote(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}
