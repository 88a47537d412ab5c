package policy

import (
	"testing"

	"github.com/mentorhub/backend/internal/model"
)

var (
	org    = model.User{ID: 1, Username: "acme", IsOrg: true}
	mentor = model.User{ID: 2, Username: "jess"}
	admin  = model.User{ID: 3, Username: "root", IsSuperuser: true}
)

func TestOwnerOnly(t *testing.T) {
	if err := OwnerOnly(ActionWrite, org, org.ID); err != nil {
		t.Errorf("owner write denied: %v", err)
	}
	if err := OwnerOnly(ActionWrite, mentor, org.ID); err != ErrNotOwner {
		t.Errorf("non-owner write: got %v, want ErrNotOwner", err)
	}
	if err := OwnerOnly(ActionRead, mentor, org.ID); err != nil {
		t.Errorf("read denied: %v", err)
	}
}

func TestOrganisationOnly(t *testing.T) {
	if err := OrganisationOnly(ActionWrite, org); err != nil {
		t.Errorf("org write denied: %v", err)
	}
	if err := OrganisationOnly(ActionWrite, mentor); err != ErrNotOrganisation {
		t.Errorf("mentor write: got %v, want ErrNotOrganisation", err)
	}
	if err := OrganisationOnly(ActionRead, mentor); err != nil {
		t.Errorf("read denied: %v", err)
	}
}

func TestSuperuserOnly(t *testing.T) {
	if err := SuperuserOnly(ActionWrite, admin); err != nil {
		t.Errorf("superuser write denied: %v", err)
	}
	if err := SuperuserOnly(ActionWrite, org); err != ErrNotSuperuser {
		t.Errorf("plain user write: got %v, want ErrNotSuperuser", err)
	}
}

func TestNotAlreadyRegistered(t *testing.T) {
	cases := []struct {
		name    string
		actor   model.User
		already bool
		want    error
	}{
		{"fresh mentor", mentor, false, nil},
		{"duplicate", mentor, true, ErrAlreadyRegistered},
		{"organisation", org, false, ErrOrgCannotRegister},
		// An org that somehow has a row still gets the role denial first.
		{"organisation with row", org, true, ErrOrgCannotRegister},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := NotAlreadyRegistered(ActionWrite, tc.actor, tc.already); err != tc.want {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestAllFirstDenialWins(t *testing.T) {
	err := All(
		OrganisationOnly(ActionWrite, mentor),
		OwnerOnly(ActionWrite, mentor, org.ID),
	)
	if err != ErrNotOrganisation {
		t.Errorf("got %v, want ErrNotOrganisation", err)
	}
	if err := All(OrganisationOnly(ActionWrite, org), OwnerOnly(ActionWrite, org, org.ID)); err != nil {
		t.Errorf("all-pass composition denied: %v", err)
	}
}
