package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/policy"
	"github.com/mentorhub/backend/internal/queue"
	"github.com/mentorhub/backend/internal/repository"
	qp "github.com/mentorhub/backend/internal/service"
)

// RegistrationHandler covers interest registrations: an event's response
// list, mentor register/withdraw, and a mentor's attendance history.
type RegistrationHandler struct {
	Users         *repository.UserRepo
	Events        *repository.EventRepo
	Registrations *repository.RegistrationRepo
}

func NewRegistrationHandler(u *repository.UserRepo, e *repository.EventRepo, r *repository.RegistrationRepo) *RegistrationHandler {
	if u == nil || e == nil || r == nil {
		panic("nil repository passed to NewRegistrationHandler")
	}
	return &RegistrationHandler{Users: u, Events: e, Registrations: r}
}

// ListResponses handles GET /v1/events/:id/responses.
func (h *RegistrationHandler) ListResponses(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, _, err := h.Events.GetByID(ctx, id); err != nil {
		return writeError(c, err)
	}
	rows, err := h.Registrations.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Register handles POST /v1/events/:id/responses. Mentors only; a second
// registration for the same event is refused.
func (h *RegistrationHandler) Register(c echo.Context) error {
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

	event, _, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	exists, err := h.Registrations.Exists(ctx, id, actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := policy.NotAlreadyRegistered(policy.ActionWrite, actor, exists); err != nil {
		return writeError(c, err)
	}

	reg, err := h.Registrations.Register(ctx, id, actor.ID)
	if err != nil {
		return writeError(c, err)
	}

	mentor, merr := h.Users.GetByID(ctx, actor.ID)
	organiser, oerr := h.Users.GetByID(ctx, event.OrganiserID)
	if merr == nil && oerr == nil {
		msg := queue.RegistrationCreatedEvent{
			RegistrationID: reg.ID,
			EventID:        event.ID,
			EventName:      event.Name,
			MentorID:       mentor.ID,
			Mentor:         mentor.Username,
			Organiser:      organiser.Username,
			RegisteredAt:   reg.DateRegistered.UTC().Format(wireTime),
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = qp.PublishRegistrationCreated(pubCtx, msg)
		}()
	}

	rows, err := h.Registrations.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	for _, row := range rows {
		if row.ID == reg.ID {
			return c.JSON(http.StatusCreated, row)
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": reg.ID, "event_id": reg.EventID, "mentor_id": reg.MentorID})
}

// Withdraw handles DELETE /v1/events/:id/responses. Removing an existing
// registration answers 200; withdrawing when none exists is a 204 no-op.
func (h *RegistrationHandler) Withdraw(c echo.Context) error {
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

	if _, _, err := h.Events.GetByID(ctx, id); err != nil {
		return writeError(c, err)
	}
	removed, err := h.Registrations.Withdraw(ctx, id, actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "withdraw failed"})
	}
	if !removed {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "registration withdrawn"})
}

// MentorHistory handles GET /v1/users/:username/mentor-attendance and lists
// every registration the named mentor holds, attended or not.
func (h *RegistrationHandler) MentorHistory(c echo.Context) error {
	username := c.Param("username")
	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		return writeError(c, err)
	}
	rows, err := h.Registrations.ListByMentor(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rows)
}
