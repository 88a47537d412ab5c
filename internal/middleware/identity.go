package middleware

// identity.go holds the helper that turns whatever JWTAuth stored under
// "user_id" into a string for rate-limit key building. Unauthenticated
// requests key as "anon".

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

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
	case int64:
		return fmt.Sprintf("%d", t)
	}
	return "anon"
}
