// Package handler implements the HTTP layer: binding, validation, policy
// checks and the mapping from repository errors to status codes.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/model"
	"github.com/mentorhub/backend/internal/policy"
	"github.com/mentorhub/backend/internal/repository"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// getUserID extracts the user_id claim from echo.Context as uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// actorFrom rebuilds the acting user from JWT claims. The policy predicates
// only need the id, the org flag and the superuser flag, all of which ride
// in the token, so no user lookup is required per request.
func actorFrom(c echo.Context) (model.User, error) {
	uid, err := getUserID(c)
	if err != nil {
		return model.User{}, err
	}
	role, _ := c.Get("role").(string)
	su, _ := c.Get("su").(bool)
	return model.User{ID: uid, IsOrg: role == model.RoleOrg, IsSuperuser: su}, nil
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// writeError maps policy denials and repository sentinels to the response
// the client should see. Anything unrecognized becomes a 500 with a generic
// message.
func writeError(c echo.Context, err error) error {
	var denial *policy.Denial
	if errors.As(err, &denial) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": denial.Reason})
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "already registered for this event"})
	case errors.Is(err, repository.ErrUsernameExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
	case errors.Is(err, repository.ErrCategoryExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "category already exists"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, repository.ErrUnknownCategory):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": map[string]string{"categories": "unknown category name"},
		})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// validationError renders a 400 with field-level messages.
func validationError(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": fields})
}
