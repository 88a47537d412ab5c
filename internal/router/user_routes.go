package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/handler"
	"github.com/mentorhub/backend/internal/middleware"
)

// RegisterUsers registers the authenticated account and profile mutations.
// Every route here is owner-only; the handlers enforce that against the
// target username.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, p *handler.ProfileHandler, jwtSecret string) {
	g := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ORG", "MENTOR"),
	)

	g.PUT("/users/:username", u.Update)
	g.DELETE("/users/:username", u.Delete)
	g.PUT("/users/:username/update-password", u.UpdatePassword)

	g.PUT("/users/mentor/:username/profile", p.UpdateMentor)
	g.PUT("/users/org/:username/profile", p.UpdateOrg)
}
