// Package router registers the HTTP routes for the API. Routes are grouped
// by audience: unauthenticated browse routes, the auth flow, and the
// JWT-protected mutation surface.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/handler"
	"github.com/mentorhub/backend/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication and no
// database: currently only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the registration/login/refresh/logout flow and the
// authenticated /v1/me endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a bearer token (revokes every session) or a
	// refresh_token body (revokes one), so it stays outside the JWT group.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ORG", "MENTOR"),
	)
	auth.GET("/me", a.Me)
}
