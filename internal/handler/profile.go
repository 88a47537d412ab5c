package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/policy"
	"github.com/mentorhub/backend/internal/repository"
)

// ProfileHandler serves the mentor and org profile variants addressed by
// the owning user's username. Updates are owner-only and sparse: absent
// fields keep their stored value, skills replace the full set when present.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
}

func NewProfileHandler(p *repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

type mentorProfileResp struct {
	ID        uint64   `json:"id"`
	User      string   `json:"user"`
	Name      string   `json:"name"`
	Bio       string   `json:"bio"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Skills    []string `json:"skills"`
}

type orgProfileResp struct {
	ID          uint64 `json:"id"`
	User        string `json:"user"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	OrgBio      string `json:"org_bio"`
}

// GetMentor handles GET /v1/users/mentor/:username/profile.
func (h *ProfileHandler) GetMentor(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	username := c.Param("username")
	p, skills, err := h.Profiles.MentorByUsername(ctx, username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, mentorProfileResp{
		ID: p.ID, User: username, Name: p.Name, Bio: p.Bio,
		Latitude: p.Latitude, Longitude: p.Longitude, Skills: skills,
	})
}

// UpdateMentor handles PUT /v1/users/mentor/:username/profile.
func (h *ProfileHandler) UpdateMentor(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	username := c.Param("username")
	p, _, err := h.Profiles.MentorByUsername(ctx, username)
	if err != nil {
		return writeError(c, err)
	}
	if err := policy.OwnerOnly(policy.ActionWrite, actor, p.UserID); err != nil {
		return writeError(c, err)
	}

	var body struct {
		Name      *string   `json:"name"`
		Bio       *string   `json:"bio"`
		Latitude  *float64  `json:"latitude"`
		Longitude *float64  `json:"longitude"`
		Skills    *[]string `json:"skills"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	patch := repository.MentorProfilePatch{
		Name: body.Name, Bio: body.Bio,
		Latitude: body.Latitude, Longitude: body.Longitude,
		Skills: body.Skills,
	}
	if err := h.Profiles.UpdateMentor(ctx, p.ID, patch); err != nil {
		return writeError(c, err)
	}
	fresh, skills, err := h.Profiles.MentorByUsername(ctx, username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, mentorProfileResp{
		ID: fresh.ID, User: username, Name: fresh.Name, Bio: fresh.Bio,
		Latitude: fresh.Latitude, Longitude: fresh.Longitude, Skills: skills,
	})
}

// GetOrg handles GET /v1/users/org/:username/profile.
func (h *ProfileHandler) GetOrg(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	username := c.Param("username")
	p, err := h.Profiles.OrgByUsername(ctx, username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orgProfileResp{
		ID: p.ID, User: username, CompanyName: p.CompanyName,
		ContactName: p.ContactName, OrgBio: p.OrgBio,
	})
}

// UpdateOrg handles PUT /v1/users/org/:username/profile.
func (h *ProfileHandler) UpdateOrg(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	username := c.Param("username")
	p, err := h.Profiles.OrgByUsername(ctx, username)
	if err != nil {
		return writeError(c, err)
	}
	if err := policy.OwnerOnly(policy.ActionWrite, actor, p.UserID); err != nil {
		return writeError(c, err)
	}

	var body struct {
		CompanyName *string `json:"company_name"`
		ContactName *string `json:"contact_name"`
		OrgBio      *string `json:"org_bio"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	patch := repository.OrgProfilePatch{
		CompanyName: body.CompanyName, ContactName: body.ContactName, OrgBio: body.OrgBio,
	}
	if err := h.Profiles.UpdateOrg(ctx, p.ID, patch); err != nil {
		return writeError(c, err)
	}
	fresh, err := h.Profiles.OrgByUsername(ctx, username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orgProfileResp{
		ID: fresh.ID, User: username, CompanyName: fresh.CompanyName,
		ContactName: fresh.ContactName, OrgBio: fresh.OrgBio,
	})
}
