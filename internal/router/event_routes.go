package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/handler"
	"github.com/mentorhub/backend/internal/middleware"
)

// RegisterEvents registers the authenticated event surface: event lifecycle,
// interest registrations, attendance reconciliation, proximity search and
// category administration. Role checks beyond "any authenticated user" live
// in the policy package, not here, because most rules depend on ownership of
// the target row.
func RegisterEvents(
	e *echo.Echo,
	ev *handler.EventHandler,
	reg *handler.RegistrationHandler,
	att *handler.AttendanceHandler,
	q *handler.QueryHandler,
	cat *handler.CategoryHandler,
	jwtSecret string,
) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ORG", "MENTOR"),
	)

	g.POST("/events", ev.Create)
	g.PUT("/events/:id", ev.Update)
	g.DELETE("/events/:id", ev.Delete)

	g.GET("/events/location/:kms", q.Nearby)

	g.POST("/events/:id/responses", reg.Register)
	g.DELETE("/events/:id/responses", reg.Withdraw)

	g.GET("/events/:id/attendance", att.Get)
	g.PUT("/events/:id/attendance", att.Mark)

	g.POST("/events/categories", cat.Create)
	g.PUT("/events/categories/:name", cat.Update)
	g.DELETE("/events/categories/:name", cat.Delete)
}
