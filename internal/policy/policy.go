// Package policy implements the per-action authorization rules consulted by
// every mutating handler. Each rule is a stateless predicate over the
// authenticated actor and, where relevant, the target entity's owner. Rules
// return nil to allow and a *Denial to refuse; handlers translate a Denial
// into an HTTP 403. Read actions always pass, mirroring the platform's
// anyone-can-browse model.
package policy

import "github.com/mentorhub/backend/internal/model"

// Action distinguishes reads from mutations. Every rule allows reads
// unconditionally; only writes are gated.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
)

// Denial is a refused policy check. The Reason is safe to return to the
// client.
type Denial struct {
	Reason string
}

func (d *Denial) Error() string { return d.Reason }

// Pre-built denials so callers can compare with errors.Is if needed.
var (
	ErrNotOwner          = &Denial{Reason: "only the owner may modify this resource"}
	ErrNotOrganisation   = &Denial{Reason: "only organisations may create events"}
	ErrNotSuperuser      = &Denial{Reason: "only superusers may modify categories"}
	ErrAlreadyRegistered = &Denial{Reason: "already registered for this event"}
	ErrOrgCannotRegister = &Denial{Reason: "organisations cannot register for events"}
)

// OwnerOnly allows mutation only when the actor owns the target. ownerID is
// the organiser of an event or the user behind a profile.
func OwnerOnly(action Action, actor model.User, ownerID uint64) error {
	if action == ActionRead {
		return nil
	}
	if actor.ID != ownerID {
		return ErrNotOwner
	}
	return nil
}

// OrganisationOnly allows mutation of the event collection only for
// organisation users.
func OrganisationOnly(action Action, actor model.User) error {
	if action == ActionRead {
		return nil
	}
	if !actor.IsOrg {
		return ErrNotOrganisation
	}
	return nil
}

// SuperuserOnly gates category mutations.
func SuperuserOnly(action Action, actor model.User) error {
	if action == ActionRead {
		return nil
	}
	if !actor.IsSuperuser {
		return ErrNotSuperuser
	}
	return nil
}

// NotAlreadyRegistered allows creating a registration only when the actor is
// a mentor with no existing row for the event. The caller supplies the
// existence check result; the register path re-checks inside its transaction
// so a concurrent duplicate still cannot slip through.
func NotAlreadyRegistered(action Action, actor model.User, alreadyRegistered bool) error {
	if action == ActionRead {
		return nil
	}
	if actor.IsOrg {
		return ErrOrgCannotRegister
	}
	if alreadyRegistered {
		return ErrAlreadyRegistered
	}
	return nil
}

// All composes predicates with logical AND: the first denial wins.
func All(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
