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

// AttendanceHandler exposes an event's attendance sheet to its organiser and
// applies bulk attendance reconciliations.
type AttendanceHandler struct {
	Users         *repository.UserRepo
	Events        *repository.EventRepo
	Registrations *repository.RegistrationRepo
}

func NewAttendanceHandler(u *repository.UserRepo, e *repository.EventRepo, r *repository.RegistrationRepo) *AttendanceHandler {
	if u == nil || e == nil || r == nil {
		panic("nil repository passed to NewAttendanceHandler")
	}
	return &AttendanceHandler{Users: u, Events: e, Registrations: r}
}

// Get handles GET /v1/events/:id/attendance. Only the organiser may view the
// sheet.
func (h *AttendanceHandler) Get(c echo.Context) error {
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
	if err := policy.All(
		policy.OrganisationOnly(policy.ActionWrite, actor),
		policy.OwnerOnly(policy.ActionWrite, actor, event.OrganiserID),
	); err != nil {
		return writeError(c, err)
	}
	rows, err := h.Registrations.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Mark handles PUT /v1/events/:id/attendance. Each entry names a mentor and
// the attended flag to store; entries for mentors with no registration on the
// event are skipped rather than refused.
func (h *AttendanceHandler) Mark(c echo.Context) error {
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
	if err := policy.All(
		policy.OrganisationOnly(policy.ActionWrite, actor),
		policy.OwnerOnly(policy.ActionWrite, actor, event.OrganiserID),
	); err != nil {
		return writeError(c, err)
	}

	var body struct {
		Responses []repository.AttendanceEntry `json:"responses"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.Responses == nil {
		return validationError(c, map[string]string{"responses": "required"})
	}

	if err := h.Registrations.BulkMarkAttendance(ctx, id, body.Responses); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "attendance update failed"})
	}

	if organiser, oerr := h.Users.GetByID(ctx, event.OrganiserID); oerr == nil {
		msg := queue.AttendanceConfirmedEvent{
			EventID:     event.ID,
			EventName:   event.Name,
			Organiser:   organiser.Username,
			Entries:     len(body.Responses),
			ConfirmedAt: time.Now().UTC().Format(wireTime),
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = qp.PublishAttendanceConfirmed(pubCtx, msg)
		}()
	}

	rows, err := h.Registrations.ListByEvent(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rows)
}
