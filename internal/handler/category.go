package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/policy"
	"github.com/mentorhub/backend/internal/repository"
)

// CategoryHandler serves the category catalog. Reads are public; every
// mutation requires a superuser.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(cat *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: cat}
}

type categoryResp struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// List handles GET /v1/events/categories.
func (h *CategoryHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]categoryResp, 0, len(cats))
	for _, cat := range cats {
		out = append(out, categoryResp{ID: cat.ID, Name: cat.Name})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/events/categories/:name.
func (h *CategoryHandler) Get(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	cat, err := h.Categories.GetByName(ctx, c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categoryResp{ID: cat.ID, Name: cat.Name})
}

// Create handles POST /v1/events/categories (superuser only).
func (h *CategoryHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := policy.SuperuserOnly(policy.ActionWrite, actor); err != nil {
		return writeError(c, err)
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return validationError(c, map[string]string{"name": "required"})
	}
	if len(name) > 100 {
		return validationError(c, map[string]string{"name": "must be at most 100 characters"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cat, err := h.Categories.Create(ctx, name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, categoryResp{ID: cat.ID, Name: cat.Name})
}

// Update handles PUT /v1/events/categories/:name (superuser only, rename).
func (h *CategoryHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := policy.SuperuserOnly(policy.ActionWrite, actor); err != nil {
		return writeError(c, err)
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return validationError(c, map[string]string{"name": "required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	cat, err := h.Categories.Rename(ctx, c.Param("name"), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, categoryResp{ID: cat.ID, Name: cat.Name})
}

// Delete handles DELETE /v1/events/categories/:name (superuser only). Join
// rows cascade; tagged events survive.
func (h *CategoryHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := policy.SuperuserOnly(policy.ActionWrite, actor); err != nil {
		return writeError(c, err)
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Categories.Delete(ctx, c.Param("name")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
