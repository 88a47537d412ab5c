package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/model"
	"github.com/mentorhub/backend/internal/policy"
	"github.com/mentorhub/backend/internal/repository"
)

// EventHandler serves the event registry: the open-event listing, creation
// (organisations only), detail, owner-only partial update and owner-only
// delete.
type EventHandler struct {
	Users         *repository.UserRepo
	Events        *repository.EventRepo
	Registrations *repository.RegistrationRepo
}

func NewEventHandler(u *repository.UserRepo, e *repository.EventRepo, r *repository.RegistrationRepo) *EventHandler {
	if u == nil || e == nil || r == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{Users: u, Events: e, Registrations: r}
}

// Field size limits shared by create and update.
const (
	maxEventName        = 120
	maxEventDescription = 500
	maxEventImageURL    = 120
	maxEventLocation    = 300
)

type eventDetailResp struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	IsOpen      bool     `json:"is_open"`
	DateCreated string   `json:"date_created"`
	StartsAt    string   `json:"starts_at"`
	EndsAt      string   `json:"ends_at"`
	Location    string   `json:"location"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Organiser   string   `json:"organiser"`
	Categories  []string `json:"categories"`
	Responses   int      `json:"responses"`
}

const wireTime = "2006-01-02 15:04:05"

func (h *EventHandler) detailResp(c echo.Context, e model.Event, categories []string) (eventDetailResp, error) {
	ctx, cancel := dbCtx(c)
	defer cancel()

	organiser, err := h.Users.GetByID(ctx, e.OrganiserID)
	if err != nil {
		return eventDetailResp{}, err
	}
	regs, err := h.Registrations.ListByEvent(ctx, e.ID)
	if err != nil {
		return eventDetailResp{}, err
	}
	return eventDetailResp{
		ID: e.ID, Name: e.Name, Description: e.Description, ImageURL: e.ImageURL,
		IsOpen: e.IsOpen, DateCreated: e.DateCreated.UTC().Format(wireTime),
		StartsAt: e.StartsAt.UTC().Format(wireTime), EndsAt: e.EndsAt.UTC().Format(wireTime),
		Location: e.Location, Latitude: e.Latitude, Longitude: e.Longitude,
		Organiser: organiser.Username, Categories: categories, Responses: len(regs),
	}, nil
}

// ListOpen handles GET /v1/events and returns open events in stable order.
func (h *EventHandler) ListOpen(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	rows, err := h.Events.ListOpen(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Create handles POST /v1/events. Only organisations may create events; the
// caller becomes the organiser.
func (h *EventHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := policy.OrganisationOnly(policy.ActionWrite, actor); err != nil {
		return writeError(c, err)
	}

	var body struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		ImageURL    string   `json:"image_url"`
		IsOpen      *bool    `json:"is_open"`
		StartsAt    string   `json:"starts_at"`
		EndsAt      string   `json:"ends_at"`
		Location    string   `json:"location"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		Categories  []string `json:"categories"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	fields := map[string]string{}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		fields["name"] = "required"
	} else if len(name) > maxEventName {
		fields["name"] = "must be at most 120 characters"
	}
	if len(body.Description) > maxEventDescription {
		fields["description"] = "must be at most 500 characters"
	}
	if len(body.ImageURL) > maxEventImageURL {
		fields["image_url"] = "must be at most 120 characters"
	}
	if len(body.Location) > maxEventLocation {
		fields["location"] = "must be at most 300 characters"
	}
	startsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(body.StartsAt))
	if err != nil {
		fields["starts_at"] = "invalid RFC3339 timestamp"
	}
	endsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(body.EndsAt))
	if err != nil {
		fields["ends_at"] = "invalid RFC3339 timestamp"
	} else if fields["starts_at"] == "" && !endsAt.After(startsAt) {
		fields["ends_at"] = "must be after starts_at"
	}
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	e := model.Event{
		Name:        name,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		IsOpen:      true,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Location:    model.DefaultLocation,
		Latitude:    model.DefaultLatitude,
		Longitude:   model.DefaultLongitude,
		OrganiserID: actor.ID,
	}
	if body.IsOpen != nil {
		e.IsOpen = *body.IsOpen
	}
	if loc := strings.TrimSpace(body.Location); loc != "" {
		e.Location = loc
	}
	if body.Latitude != nil {
		e.Latitude = *body.Latitude
	}
	if body.Longitude != nil {
		e.Longitude = *body.Longitude
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	stored, err := h.Events.Create(ctx, e, body.Categories)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := h.detailResp(c, stored, normalizeCategories(body.Categories))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	return c.JSON(http.StatusCreated, resp)
}

func normalizeCategories(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, strings.TrimSpace(n))
	}
	return out
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	e, cats, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := h.detailResp(c, e, cats)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PUT /v1/events/:id. Only supplied fields overwrite stored
// values; a categories field replaces the full set.
func (h *EventHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	e, _, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if err := policy.All(
		policy.OrganisationOnly(policy.ActionWrite, actor),
		policy.OwnerOnly(policy.ActionWrite, actor, e.OrganiserID),
	); err != nil {
		return writeError(c, err)
	}

	var body struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		ImageURL    *string   `json:"image_url"`
		IsOpen      *bool     `json:"is_open"`
		StartsAt    *string   `json:"starts_at"`
		EndsAt      *string   `json:"ends_at"`
		Location    *string   `json:"location"`
		Latitude    *float64  `json:"latitude"`
		Longitude   *float64  `json:"longitude"`
		Categories  *[]string `json:"categories"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	fields := map[string]string{}
	patch := repository.EventPatch{
		Description: body.Description,
		ImageURL:    body.ImageURL,
		IsOpen:      body.IsOpen,
		Location:    body.Location,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		Categories:  body.Categories,
	}
	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" {
			fields["name"] = "must not be empty"
		} else if len(name) > maxEventName {
			fields["name"] = "must be at most 120 characters"
		}
		patch.Name = &name
	}
	if body.Description != nil && len(*body.Description) > maxEventDescription {
		fields["description"] = "must be at most 500 characters"
	}
	if body.ImageURL != nil && len(*body.ImageURL) > maxEventImageURL {
		fields["image_url"] = "must be at most 120 characters"
	}
	if body.Location != nil && len(*body.Location) > maxEventLocation {
		fields["location"] = "must be at most 300 characters"
	}
	starts := e.StartsAt
	if body.StartsAt != nil {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(*body.StartsAt))
		if err != nil {
			fields["starts_at"] = "invalid RFC3339 timestamp"
		} else {
			starts = t
			patch.StartsAt = &t
		}
	}
	ends := e.EndsAt
	if body.EndsAt != nil {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(*body.EndsAt))
		if err != nil {
			fields["ends_at"] = "invalid RFC3339 timestamp"
		} else {
			ends = t
			patch.EndsAt = &t
		}
	}
	if fields["starts_at"] == "" && fields["ends_at"] == "" && !ends.After(starts) {
		fields["ends_at"] = "must be after starts_at"
	}
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	if err := h.Events.Update(ctx, id, patch); err != nil {
		return writeError(c, err)
	}
	fresh, cats, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := h.detailResp(c, fresh, cats)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load event failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /v1/events/:id and cascades over registrations and
// category links.
func (h *EventHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	e, _, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if err := policy.All(
		policy.OrganisationOnly(policy.ActionWrite, actor),
		policy.OwnerOnly(policy.ActionWrite, actor, e.OrganiserID),
	); err != nil {
		return writeError(c, err)
	}
	if err := h.Events.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
