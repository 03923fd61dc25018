package middleware

// identity.go holds helpers shared across middleware files. The rate
// limiter uses currentUserID for per-user keying; "anon" is returned
// for unauthenticated requests so guests share one bucket per IP.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user id from context as a
// string, or "anon" when the request carries no identity.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64:
		return fmt.Sprintf("%d", t)
	}
	return "anon"
}
