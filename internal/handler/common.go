package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/middleware"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// resolveUser picks the acting user.  An authenticated subject always wins
// and ok is false when the claimed id names someone else.  Without
// authentication the claimed id is trusted as is.
func resolveUser(c echo.Context, claimed string) (userID string, ok bool) {
	if sub, authed := middleware.UserID(c); authed {
		if claimed != "" && claimed != sub {
			return "", false
		}
		return sub, true
	}
	return claimed, true
}

func forbiddenUser(c echo.Context) error {
	return c.JSON(http.StatusForbidden, echo.Map{"error": "userId does not match token subject"})
}

// writeError maps a service error onto an HTTP status and JSON body.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, service.ErrTransient):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "service temporarily unavailable, retry the request"})
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
