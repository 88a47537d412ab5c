package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mentorhub/backend/internal/model"
)

// ProfileRepo loads and updates the two profile variants. Lookups go by the
// owning user's username since profiles are addressed that way in URLs.
type ProfileRepo struct{ DB *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{DB: db} }

// MentorByUsername returns the mentor profile of the named user together
// with the skill category names attached to it.
func (r *ProfileRepo) MentorByUsername(ctx context.Context, username string) (model.MentorProfile, []string, error) {
	var p model.MentorProfile
	err := r.DB.QueryRowContext(ctx,
		`SELECT p.id, p.user_id, p.name, p.bio, p.latitude, p.longitude
		 FROM mentor_profiles p JOIN users u ON u.id = p.user_id
		 WHERE u.username=? LIMIT 1`, username).
		Scan(&p.ID, &p.UserID, &p.Name, &p.Bio, &p.Latitude, &p.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MentorProfile{}, nil, ErrNotFound
	}
	if err != nil {
		return model.MentorProfile{}, nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.name FROM categories c
		 JOIN mentor_skills ms ON ms.category_id = c.id
		 WHERE ms.mentor_profile_id=? ORDER BY c.name`, p.ID)
	if err != nil {
		return model.MentorProfile{}, nil, err
	}
	defer rows.Close()

	skills := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return model.MentorProfile{}, nil, err
		}
		skills = append(skills, s)
	}
	return p, skills, rows.Err()
}

// MentorByUserID returns the mentor profile belonging to a user id. Used by
// the proximity search to locate the caller.
func (r *ProfileRepo) MentorByUserID(ctx context.Context, userID uint64) (model.MentorProfile, error) {
	var p model.MentorProfile
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, name, bio, latitude, longitude FROM mentor_profiles WHERE user_id=? LIMIT 1",
		userID).Scan(&p.ID, &p.UserID, &p.Name, &p.Bio, &p.Latitude, &p.Longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return model.MentorProfile{}, ErrNotFound
	}
	return p, err
}

// MentorProfilePatch carries the sparse fields of a mentor profile update.
// Nil pointers keep the stored value; Skills, when non-nil, replaces the
// whole skill set.
type MentorProfilePatch struct {
	Name      *string
	Bio       *string
	Latitude  *float64
	Longitude *float64
	Skills    *[]string
}

// UpdateMentor applies a sparse update to a mentor profile. When the patch
// includes skills the join rows are cleared and rewritten inside the same
// transaction (full replace, not merge).
func (r *ProfileRepo) UpdateMentor(ctx context.Context, profileID uint64, patch MentorProfilePatch) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if patch.Name != nil {
		if _, err := tx.ExecContext(ctx, "UPDATE mentor_profiles SET name=? WHERE id=?", *patch.Name, profileID); err != nil {
			return err
		}
	}
	if patch.Bio != nil {
		if _, err := tx.ExecContext(ctx, "UPDATE mentor_profiles SET bio=? WHERE id=?", *patch.Bio, profileID); err != nil {
			return err
		}
	}
	if patch.Latitude != nil {
		if _, err := tx.ExecContext(ctx, "UPDATE mentor_profiles SET latitude=? WHERE id=?", *patch.Latitude, profileID); err != nil {
			return err
		}
	}
	if patch.Longitude != nil {
		if _, err := tx.ExecContext(ctx, "UPDATE mentor_profiles SET longitude=? WHERE id=?", *patch.Longitude, profileID); err != nil {
			return err
		}
	}
	if patch.Skills != nil {
		ids, err := categoryIDsByName(ctx, tx, *patch.Skills)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM mentor_skills WHERE mentor_profile_id=?", profileID); err != nil {
			return err
		}
		for _, cid := range ids {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO mentor_skills (mentor_profile_id, category_id) VALUES (?,?)", profileID, cid); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// OrgByUsername returns the org profile of the named user.
func (r *ProfileRepo) OrgByUsername(ctx context.Context, username string) (model.OrgProfile, error) {
	var p model.OrgProfile
	err := r.DB.QueryRowContext(ctx,
		`SELECT p.id, p.user_id, p.company_name, p.contact_name, p.org_bio
		 FROM org_profiles p JOIN users u ON u.id = p.user_id
		 WHERE u.username=? LIMIT 1`, username).
		Scan(&p.ID, &p.UserID, &p.CompanyName, &p.ContactName, &p.OrgBio)
	if errors.Is(err, sql.ErrNoRows) {
		return model.OrgProfile{}, ErrNotFound
	}
	return p, err
}

// OrgProfilePatch carries the sparse fields of an org profile update.
type OrgProfilePatch struct {
	CompanyName *string
	ContactName *string
	OrgBio      *string
}

// UpdateOrg applies a sparse update to an org profile.
func (r *ProfileRepo) UpdateOrg(ctx context.Context, profileID uint64, patch OrgProfilePatch) error {
	sets := []string{}
	args := []any{}
	if patch.CompanyName != nil {
		sets = append(sets, "company_name=?")
		args = append(args, *patch.CompanyName)
	}
	if patch.ContactName != nil {
		sets = append(sets, "contact_name=?")
		args = append(args, *patch.ContactName)
	}
	if patch.OrgBio != nil {
		sets = append(sets, "org_bio=?")
		args = append(args, *patch.OrgBio)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, profileID)
	q := "UPDATE org_profiles SET " + joinSets(sets) + " WHERE id=?"
	_, err := r.DB.ExecContext(ctx, q, args...)
	return err
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}
