package middleware

// identity.go holds the helpers that read the authenticated caller back out
// of the Echo context.

import "github.com/labstack/echo/v4"

// UserID returns the subject stored by JWTAuth.  ok is false when the
// request was not authenticated.
func UserID(c echo.Context) (string, bool) {
	s, ok := c.Get(ctxUserID).(string)
	return s, ok && s != ""
}

// currentUserID is UserID with an "anon" fallback, used for rate-limit and
// cache keys.
func currentUserID(c echo.Context) string {
	if s, ok := UserID(c); ok {
		return s
	}
	return "anon"
}
