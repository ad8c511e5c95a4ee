package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// EventService is the event use-case surface the handlers depend on.
type EventService interface {
	CreateEvent(ctx context.Context, in service.CreateEventInput) (*model.Event, error)
	GetEvent(ctx context.Context, id uint64) (*service.EventDetail, error)
	ListEvents(ctx context.Context, limit, offset int) ([]model.Event, error)
	DeleteEvent(ctx context.Context, id uint64, userID string) error
}

// EventHandler serves event creation, browsing and deletion.
type EventHandler struct {
	svc EventService
}

// NewEventHandler constructs an EventHandler and panics if svc is nil.
func NewEventHandler(svc EventService) *EventHandler {
	if svc == nil {
		panic("nil service passed to NewEventHandler")
	}
	return &EventHandler{svc: svc}
}

type createEventRequest struct {
	Name       string   `json:"name" validate:"required,max=255"`
	Location   string   `json:"location" validate:"max=255"`
	Link       string   `json:"link" validate:"omitempty,url,max=512"`
	BannerURL  string   `json:"banner_url" validate:"omitempty,url,max=1024"`
	EventDate  string   `json:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime  string   `json:"event_time" validate:"omitempty,datetime=15:04"`
	Category   string   `json:"category" validate:"max=64"`
	PriceCents int64    `json:"price_cents" validate:"gte=0"`
	TotalSeats int      `json:"total_seats" validate:"gte=0"`
	Lat        *float64 `json:"lat" validate:"omitempty,latitude"`
	Lon        *float64 `json:"lon" validate:"omitempty,longitude"`
	CreatedBy  string   `json:"created_by"`
}

// CreateEvent handles POST /v1/events.  The event and its seat map are
// created together; the response is 201 with the stored event.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	creator, ok := resolveUser(c, req.CreatedBy)
	if !ok {
		return forbiddenUser(c)
	}
	if creator == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "created_by is required"})
	}

	e, err := h.svc.CreateEvent(c.Request().Context(), service.CreateEventInput{
		Name:       req.Name,
		Location:   req.Location,
		Link:       req.Link,
		BannerURL:  req.BannerURL,
		EventDate:  req.EventDate,
		EventTime:  req.EventTime,
		Category:   req.Category,
		PriceCents: req.PriceCents,
		TotalSeats: req.TotalSeats,
		Lat:        req.Lat,
		Lon:        req.Lon,
		CreatedBy:  creator,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

// GetEvent handles GET /v1/events/:id and returns the event with its seats
// in label order.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	d, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// ListEvents handles GET /v1/events?limit=&offset=.
func (h *EventHandler) ListEvents(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	events, err := h.svc.ListEvents(c.Request().Context(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// DeleteEvent handles DELETE /v1/events/:id.  Only the creator may delete;
// seats and tickets are removed with the event.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	userID, ok := resolveUser(c, c.QueryParam("userId"))
	if !ok {
		return forbiddenUser(c)
	}
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.svc.DeleteEvent(c.Request().Context(), id, userID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
