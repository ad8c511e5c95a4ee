package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
)

// Deps carries the handlers and the optional middleware RegisterRoutes
// wires.  A nil RateLimit or Cache leaves the route unwrapped; an empty
// JWTSecret leaves every route unauthenticated.
type Deps struct {
	Events    *handler.EventHandler
	Bookings  *handler.BookingHandler
	Tickets   *handler.TicketHandler
	JWTSecret string
	RateLimit echo.MiddlewareFunc
	Cache     echo.MiddlewareFunc
}

// RegisterRoutes registers the health check and every /v1 route on e.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	var auth, organizer []echo.MiddlewareFunc
	if d.JWTSecret != "" {
		auth = []echo.MiddlewareFunc{middleware.JWTAuth(d.JWTSecret)}
		organizer = []echo.MiddlewareFunc{
			middleware.JWTAuth(d.JWTSecret),
			middleware.RequireRole(middleware.RoleOrganizer),
		}
	}
	claim := auth
	if d.RateLimit != nil {
		claim = append(append([]echo.MiddlewareFunc{}, auth...), d.RateLimit)
	}
	var list []echo.MiddlewareFunc
	if d.Cache != nil {
		list = append(list, d.Cache)
	}

	// Public browse endpoints.
	v1 := e.Group("/v1")
	v1.GET("/events", d.Events.ListEvents, list...)
	v1.GET("/events/:id", d.Events.GetEvent)
	v1.POST("/events/:id/seats\\:quote", d.Bookings.Quote)
	v1.POST("/events/:id/seats/quote", d.Bookings.Quote)

	// Buyer endpoints.  The escaped colon keeps ":claim" a literal suffix.
	v1.POST("/events/:id/seats\\:claim", d.Bookings.Claim, claim...)
	v1.POST("/events/:id/seats/claim", d.Bookings.Claim, claim...)
	v1.GET("/tickets", d.Tickets.ListTickets, auth...)

	// Organizer endpoints.
	v1.POST("/events", d.Events.CreateEvent, organizer...)
	v1.DELETE("/events/:id", d.Events.DeleteEvent, organizer...)
}
