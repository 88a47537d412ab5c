package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/handler"
)

// PublicHandlers carries the handlers that serve the unauthenticated browse
// surface into RegisterPublic.
type PublicHandlers struct {
	Events        *handler.EventHandler
	Registrations *handler.RegistrationHandler
	Categories    *handler.CategoryHandler
	Queries       *handler.QueryHandler
	Users         *handler.UserHandler
	Profiles      *handler.ProfileHandler
}

// RegisterPublic registers every guest-readable endpoint. The optional cache
// middleware is applied to the whole group; a nil slice disables caching.
func RegisterPublic(e *echo.Echo, h PublicHandlers, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)

	// Static segments (most-popular, categories, search) are registered
	// alongside /events/:id; Echo resolves static paths before params.
	g.GET("/events", h.Events.ListOpen)
	g.GET("/events/most-popular", h.Queries.Popular)
	g.GET("/events/most-popular/short-list", h.Queries.PopularShort)
	g.GET("/events/search", h.Queries.Search)
	g.GET("/events/categories", h.Categories.List)
	g.GET("/events/categories/:name", h.Categories.Get)
	g.GET("/events/categories/:name/events", h.Queries.ByCategory)
	g.GET("/events/categories/:name/events/short-list", h.Queries.ByCategoryShort)
	g.GET("/events/:id", h.Events.Get)
	g.GET("/events/:id/responses", h.Registrations.ListResponses)

	g.GET("/users", h.Users.List)
	g.GET("/users/mentor/:username/profile", h.Profiles.GetMentor)
	g.GET("/users/org/:username/profile", h.Profiles.GetOrg)
	g.GET("/users/:username", h.Users.Get)
	g.GET("/users/:username/events-hosted", h.Queries.EventsHosted)
	g.GET("/users/:username/mentor-attendance", h.Registrations.MentorHistory)
}
