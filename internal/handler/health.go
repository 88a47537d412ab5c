package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a health-check endpoint for load balancers and monitoring. It
// returns a plain "ok" with HTTP 200.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
