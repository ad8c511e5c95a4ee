package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/service"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

type stubEvents struct{}

func (stubEvents) CreateEvent(_ context.Context, in service.CreateEventInput) (*model.Event, error) {
	return &model.Event{ID: 1, Name: in.Name}, nil
}
func (stubEvents) GetEvent(_ context.Context, id uint64) (*service.EventDetail, error) {
	return &service.EventDetail{Event: model.Event{ID: id}}, nil
}
func (stubEvents) ListEvents(context.Context, int, int) ([]model.Event, error) { return nil, nil }
func (stubEvents) DeleteEvent(context.Context, uint64, string) error          { return nil }

type stubBookings struct{ claims, quotes int }

func (s *stubBookings) BookSeats(context.Context, service.BookingRequest) (*service.BookingResult, error) {
	s.claims++
	return &service.BookingResult{Booked: 1}, nil
}
func (s *stubBookings) Quote(context.Context, service.BookingRequest) (*service.Quote, error) {
	s.quotes++
	return &service.Quote{Count: 1}, nil
}

type stubTickets struct{}

func (stubTickets) ListByUser(context.Context, string) ([]model.TicketView, error) {
	return []model.TicketView{}, nil
}

const secret = "router-secret"

func newServer(t *testing.T, jwtSecret string) (*echo.Echo, *stubBookings) {
	t.Helper()
	b := &stubBookings{}
	e := echo.New()
	e.Validator = handler.NewValidator()
	RegisterRoutes(e, Deps{
		Events:    handler.NewEventHandler(stubEvents{}),
		Bookings:  handler.NewBookingHandler(b),
		Tickets:   handler.NewTicketHandler(stubTickets{}),
		JWTSecret: jwtSecret,
	})
	return e, b
}

func token(t *testing.T, sub, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, sub, role, time.Hour)
	require.NoError(t, err)
	return tok.Token
}

func call(e *echo.Echo, method, path, body, tok string) int {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestColonRoutes(t *testing.T) {
	e, b := newServer(t, "")
	body := `{"userId":"u-1","seatIds":[1]}`

	assert.Equal(t, http.StatusOK, call(e, http.MethodPost, "/v1/events/5/seats:claim", body, ""))
	assert.Equal(t, http.StatusOK, call(e, http.MethodPost, "/v1/events/5/seats/claim", body, ""))
	assert.Equal(t, 2, b.claims)

	assert.Equal(t, http.StatusOK, call(e, http.MethodPost, "/v1/events/5/seats:quote", body, ""))
	assert.Equal(t, http.StatusOK, call(e, http.MethodPost, "/v1/events/5/seats/quote", body, ""))
	assert.Equal(t, 2, b.quotes)
	assert.Equal(t, 2, b.claims, "quote never claims")
}

func TestPublicRoutes(t *testing.T) {
	e, _ := newServer(t, secret)
	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/healthz", "", ""))
	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/v1/events", "", ""))
	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/v1/events/3", "", ""))
}

func TestAuthWiring(t *testing.T) {
	e, _ := newServer(t, secret)
	body := `{"seatIds":[1]}`

	assert.Equal(t, http.StatusUnauthorized, call(e, http.MethodPost, "/v1/events/5/seats:claim", body, ""))
	assert.Equal(t, http.StatusOK, call(e, http.MethodPost, "/v1/events/5/seats:claim", body, token(t, "u-1", "BUYER")))
	assert.Equal(t, http.StatusUnauthorized, call(e, http.MethodGet, "/v1/tickets", "", ""))
	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/v1/tickets", "", token(t, "u-1", "BUYER")))

	create := `{"name":"Jazz","event_date":"2026-10-01"}`
	assert.Equal(t, http.StatusForbidden, call(e, http.MethodPost, "/v1/events", create, token(t, "u-1", "BUYER")))
	assert.Equal(t, http.StatusCreated, call(e, http.MethodPost, "/v1/events", create, token(t, "o-1", middleware.RoleOrganizer)))
	assert.Equal(t, http.StatusNoContent, call(e, http.MethodDelete, "/v1/events/5", "", token(t, "o-1", middleware.RoleOrganizer)))
}
