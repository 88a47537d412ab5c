package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/config"
	"github.com/mentorhub/backend/internal/policy"
	"github.com/mentorhub/backend/internal/repository"
	"github.com/mentorhub/backend/internal/utils"
)

// UserHandler serves the user directory: listing, detail, partial update,
// password change and deletion. Mutations are owner-only.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u}
}

// List handles GET /v1/users and returns public fields of all users.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role()})
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/users/:username.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role()})
}

// Update handles PUT /v1/users/:username. Only the email is mutable; the
// username, role and profile link are fixed at creation.
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		return writeError(c, err)
	}
	if err := policy.OwnerOnly(policy.ActionWrite, actor, u.ID); err != nil {
		return writeError(c, err)
	}

	var body struct {
		Email *string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.Email != nil {
		email := strings.TrimSpace(*body.Email)
		if email == "" {
			return validationError(c, map[string]string{"email": "must not be empty"})
		}
		if err := h.Users.UpdateEmail(ctx, u.ID, email); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
		u.Email = strings.ToLower(email)
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role()})
}

// Delete handles DELETE /v1/users/:username and cascades over everything
// the user owns.
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		return writeError(c, err)
	}
	if err := policy.OwnerOnly(policy.ActionWrite, actor, u.ID); err != nil {
		return writeError(c, err)
	}
	if err := h.Users.Delete(ctx, u.ID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdatePassword handles PUT /v1/users/:username/update-password. The old
// password must verify and the two new password fields must match.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		return writeError(c, err)
	}
	if err := policy.OwnerOnly(policy.ActionWrite, actor, u.ID); err != nil {
		return writeError(c, err)
	}

	var body struct {
		OldPassword string `json:"old_password"`
		Password    string `json:"password"`
		Password2   string `json:"password2"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	fields := map[string]string{}
	if body.Password == "" || body.Password2 == "" {
		fields["password"] = "enter a password and confirm it"
	} else if body.Password != body.Password2 {
		fields["password2"] = "passwords do not match"
	}
	if len(fields) > 0 {
		return validationError(c, fields)
	}
	if !utils.VerifyPassword(u.PasswordHash, body.OldPassword) {
		return validationError(c, map[string]string{"old_password": "incorrect password"})
	}
	if err := h.Users.UpdatePassword(ctx, u.ID, body.Password, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "password updated"})
}
