package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/repository"
)

// QueryHandler serves the discovery surface: popularity ranking, category
// filters, free-text search, proximity search and per-organiser listings.
type QueryHandler struct {
	Users    *repository.UserRepo
	Events   *repository.EventRepo
	Profiles *repository.ProfileRepo
}

func NewQueryHandler(u *repository.UserRepo, e *repository.EventRepo, p *repository.ProfileRepo) *QueryHandler {
	if u == nil || e == nil || p == nil {
		panic("nil repository passed to NewQueryHandler")
	}
	return &QueryHandler{Users: u, Events: e, Profiles: p}
}

func (h *QueryHandler) respondRows(c echo.Context, rows []repository.EventRow, err error) error {
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if rows == nil {
		rows = []repository.EventRow{}
	}
	return c.JSON(http.StatusOK, rows)
}

// Popular handles GET /v1/events/most-popular: open events ordered by
// response count, ties broken by id.
func (h *QueryHandler) Popular(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Events.Popular(ctx, false)
	return h.respondRows(c, rows, err)
}

// PopularShort handles GET /v1/events/most-popular/short-list and caps the
// list for landing-page widgets.
func (h *QueryHandler) PopularShort(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Events.Popular(ctx, true)
	return h.respondRows(c, rows, err)
}

// ByCategory handles GET /v1/events/categories/:name/events. An unknown
// category is not an error; it simply matches nothing.
func (h *QueryHandler) ByCategory(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Events.ByCategory(ctx, c.Param("name"), false)
	return h.respondRows(c, rows, err)
}

// ByCategoryShort handles GET /v1/events/categories/:name/events/short-list.
func (h *QueryHandler) ByCategoryShort(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Events.ByCategory(ctx, c.Param("name"), true)
	return h.respondRows(c, rows, err)
}

// Search handles GET /v1/events/search?q=term, matching the term against
// event fields, category names, and organiser identity.
func (h *QueryHandler) Search(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("q"))
	if term == "" {
		return validationError(c, map[string]string{"q": "required"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	rows, err := h.Events.Search(ctx, term)
	return h.respondRows(c, rows, err)
}

// Nearby handles GET /v1/events/location/:kms. The search centre comes from
// the calling mentor's stored coordinates, so the route requires a mentor
// account with a profile.
func (h *QueryHandler) Nearby(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	kms, err := strconv.ParseFloat(c.Param("kms"), 64)
	if err != nil || kms < 0 {
		return validationError(c, map[string]string{"kms": "must be a non-negative number"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	profile, err := h.Profiles.MentorByUserID(ctx, actor.ID)
	if err != nil {
		return writeError(c, err)
	}
	rows, err := h.Events.Nearby(ctx, profile.Latitude, profile.Longitude, kms)
	return h.respondRows(c, rows, err)
}

// EventsHosted handles GET /v1/users/:username/events-hosted. Unknown
// usernames answer 404; a known organiser with no events answers an empty
// list.
func (h *QueryHandler) EventsHosted(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		return writeError(c, err)
	}
	rows, err := h.Events.ListHostedBy(ctx, u.ID)
	return h.respondRows(c, rows, err)
}
