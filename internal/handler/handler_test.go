package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/service"
)

type fakeEvents struct {
	created *service.CreateEventInput
	deleted string
	err     error
}

func (f *fakeEvents) CreateEvent(_ context.Context, in service.CreateEventInput) (*model.Event, error) {
	f.created = &in
	if f.err != nil {
		return nil, f.err
	}
	return &model.Event{ID: 1, Name: in.Name, TotalSeats: in.TotalSeats, CreatedBy: in.CreatedBy}, nil
}

func (f *fakeEvents) GetEvent(_ context.Context, id uint64) (*service.EventDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	owner := "u-9"
	return &service.EventDetail{
		Event: model.Event{ID: id, Name: "Jazz"},
		Seats: []model.Seat{{ID: 1, SeatNumber: "A1"}, {ID: 2, SeatNumber: "A2", UserID: &owner}},
	}, nil
}

func (f *fakeEvents) ListEvents(context.Context, int, int) ([]model.Event, error) {
	return []model.Event{{ID: 2}, {ID: 1}}, f.err
}

func (f *fakeEvents) DeleteEvent(_ context.Context, _ uint64, userID string) error {
	f.deleted = userID
	return f.err
}

type fakeBookings struct {
	got service.BookingRequest
	err error
}

func (f *fakeBookings) BookSeats(_ context.Context, req service.BookingRequest) (*service.BookingResult, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &service.BookingResult{Booked: 2, TotalCents: 3000, Tickets: []string{"c1", "c2"}, Seats: []string{"A1", "A2"}}, nil
}

func (f *fakeBookings) Quote(_ context.Context, req service.BookingRequest) (*service.Quote, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &service.Quote{Count: len(req.SeatIDs), UnitCents: 100, TotalCents: int64(100 * len(req.SeatIDs))}, nil
}

type fakeTickets struct {
	rows []model.TicketView
	err  error
}

func (f *fakeTickets) ListByUser(context.Context, string) ([]model.TicketView, error) {
	return f.rows, f.err
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

// withSubject simulates JWTAuth having run.
func withSubject(sub string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", sub)
			return next(c)
		}
	}
}

func TestClaimSuccess(t *testing.T) {
	svc := &fakeBookings{}
	e := newEcho()
	e.POST("/events/:id/claim", NewBookingHandler(svc).Claim)

	rec := do(e, http.MethodPost, "/events/7/claim", `{"userId":"u-1","seatIds":[1,2],"paymentRef":"pi_1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "reserved", body["message"])
	assert.EqualValues(t, 2, body["booked"])
	assert.EqualValues(t, 3000, body["total_cents"])
	assert.Equal(t, []any{"A1", "A2"}, body["seats"])
	assert.Equal(t, service.BookingRequest{EventID: 7, UserID: "u-1", SeatIDs: []uint64{1, 2}, PaymentRef: "pi_1"}, svc.got)
}

func TestClaimErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: one or more seats are already taken", service.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: seat not found for event", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: too many", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: timeout", service.ErrTransient), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		e := newEcho()
		e.POST("/events/:id/claim", NewBookingHandler(&fakeBookings{err: tc.err}).Claim)
		rec := do(e, http.MethodPost, "/events/7/claim", `{"userId":"u-1","seatIds":[1]}`)
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
		assert.Contains(t, decode(t, rec), "error")
	}
}

func TestClaimConflictMessage(t *testing.T) {
	e := newEcho()
	err := fmt.Errorf("%w: one or more seats are already taken", service.ErrConflict)
	e.POST("/events/:id/claim", NewBookingHandler(&fakeBookings{err: err}).Claim)
	rec := do(e, http.MethodPost, "/events/7/claim", `{"userId":"u-1","seatIds":[1]}`)
	assert.Contains(t, decode(t, rec)["error"], "one or more seats are already taken")
}

func TestClaimRejectsBadInput(t *testing.T) {
	svc := &fakeBookings{}
	e := newEcho()
	e.POST("/events/:id/claim", NewBookingHandler(svc).Claim)

	for name, tc := range map[string]struct{ path, body string }{
		"bad id":        {"/events/abc/claim", `{"userId":"u","seatIds":[1]}`},
		"zero id":       {"/events/0/claim", `{"userId":"u","seatIds":[1]}`},
		"no seats":      {"/events/1/claim", `{"userId":"u","seatIds":[]}`},
		"zero seat id":  {"/events/1/claim", `{"userId":"u","seatIds":[0]}`},
		"malformed":     {"/events/1/claim", `{"userId":`},
		"negative seat": {"/events/1/claim", `{"userId":"u","seatIds":[-1]}`},
	} {
		rec := do(e, http.MethodPost, tc.path, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
	assert.Zero(t, svc.got.EventID, "service never called")
}

func TestClaimUsesTokenSubject(t *testing.T) {
	svc := &fakeBookings{}
	e := newEcho()
	e.POST("/events/:id/claim", NewBookingHandler(svc).Claim, withSubject("u-1"))

	rec := do(e, http.MethodPost, "/events/7/claim", `{"seatIds":[3]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", svc.got.UserID)

	rec = do(e, http.MethodPost, "/events/7/claim", `{"userId":"someone-else","seatIds":[3]}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestQuote(t *testing.T) {
	e := newEcho()
	e.POST("/events/:id/quote", NewBookingHandler(&fakeBookings{}).Quote)

	rec := do(e, http.MethodPost, "/events/7/quote", `{"userId":"u-1","seatIds":[1,2,3]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 3, body["count"])
	assert.EqualValues(t, 300, body["total_cents"])
}

func TestCreateEvent(t *testing.T) {
	svc := &fakeEvents{}
	e := newEcho()
	e.POST("/events", NewEventHandler(svc).CreateEvent, withSubject("org-1"))

	rec := do(e, http.MethodPost, "/events",
		`{"name":"Jazz","event_date":"2026-10-01","event_time":"20:00","price_cents":1500,"total_seats":8,"banner_url":"https://cdn.example.com/b.png"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "org-1", svc.created.CreatedBy)
	assert.Equal(t, 8, svc.created.TotalSeats)
}

func TestCreateEventValidation(t *testing.T) {
	e := newEcho()
	e.POST("/events", NewEventHandler(&fakeEvents{}).CreateEvent, withSubject("org-1"))

	for _, body := range []string{
		`{"event_date":"2026-10-01"}`,
		`{"name":"x","event_date":"10/01/2026"}`,
		`{"name":"x","event_date":"2026-10-01","total_seats":-1}`,
		`{"name":"x","event_date":"2026-10-01","banner_url":"not a url"}`,
		`{"name":"x","event_date":"2026-10-01","lat":123.0}`,
	} {
		rec := do(e, http.MethodPost, "/events", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestCreateEventNeedsCreator(t *testing.T) {
	e := newEcho()
	e.POST("/events", NewEventHandler(&fakeEvents{}).CreateEvent)
	rec := do(e, http.MethodPost, "/events", `{"name":"x","event_date":"2026-10-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEvent(t *testing.T) {
	e := newEcho()
	e.GET("/events/:id", NewEventHandler(&fakeEvents{}).GetEvent)

	rec := do(e, http.MethodGet, "/events/4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	seats := body["seats"].([]any)
	require.Len(t, seats, 2)
	assert.Nil(t, seats[0].(map[string]any)["user_id"])
	assert.Equal(t, "u-9", seats[1].(map[string]any)["user_id"])

	e2 := newEcho()
	e2.GET("/events/:id", NewEventHandler(&fakeEvents{err: fmt.Errorf("%w: event not found", service.ErrNotFound)}).GetEvent)
	assert.Equal(t, http.StatusNotFound, do(e2, http.MethodGet, "/events/4", "").Code)
}

func TestDeleteEvent(t *testing.T) {
	svc := &fakeEvents{}
	e := newEcho()
	e.DELETE("/events/:id", NewEventHandler(svc).DeleteEvent, withSubject("org-1"))

	assert.Equal(t, http.StatusNoContent, do(e, http.MethodDelete, "/events/3", "").Code)
	assert.Equal(t, "org-1", svc.deleted)

	svc.err = fmt.Errorf("%w: not yours", service.ErrForbidden)
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodDelete, "/events/3", "").Code)
}

func TestListTickets(t *testing.T) {
	rows := []model.TicketView{{TicketID: 1, Seat: "A1"}, {TicketID: 2, Seat: model.GeneralAdmission}}
	e := newEcho()
	e.GET("/tickets", NewTicketHandler(&fakeTickets{rows: rows}).ListTickets)

	rec := do(e, http.MethodGet, "/tickets?userId=u-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	tickets := decode(t, rec)["tickets"].([]any)
	require.Len(t, tickets, 2)
	assert.Equal(t, "General", tickets[1].(map[string]any)["seat"])

	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/tickets", "").Code)
}

func TestListTicketsEmptyIsArray(t *testing.T) {
	e := newEcho()
	e.GET("/tickets", NewTicketHandler(&fakeTickets{rows: []model.TicketView{}}).ListTickets)
	rec := do(e, http.MethodGet, "/tickets?userId=u-1", "")
	assert.JSONEq(t, `{"tickets":[]}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	e := newEcho()
	e.GET("/healthz", Health)
	rec := do(e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
