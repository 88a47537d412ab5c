package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mentorhub/backend/internal/model"
	"github.com/mentorhub/backend/internal/utils"
)

// UserRepo persists users and their profile variant. User creation is the
// two-branch factory described in the design notes: the user row and exactly
// one of mentor_profiles/org_profiles are inserted in a single transaction so
// a user can never exist without its profile.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,username,email,password_hash,is_org,is_superuser,created_at,updated_at"

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsOrg, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a user plus its profile variant and returns the new ID.
// The profile branch follows the is_org flag: organisations get an org
// profile seeded with their username as company name, mentors get a mentor
// profile at the default city-center coordinates.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, isOrg bool, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, is_org) VALUES (?,?,?,?)",
		username, email, hash, isOrg)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	uid := uint64(id)

	if isOrg {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO org_profiles (user_id, company_name, contact_name, org_bio) VALUES (?,?,'','')",
			uid, username)
	} else {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO mentor_profiles (user_id, name, bio, latitude, longitude) VALUES (?,?,'',?,?)",
			uid, username, model.DefaultLatitude, model.DefaultLongitude)
	}
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uid, nil
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateEmail replaces the user's email. Other identity fields are
// immutable after creation.
func (r *UserRepo) UpdateEmail(ctx context.Context, id uint64, email string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=? WHERE id=?", strings.ToLower(strings.TrimSpace(email)), id)
	if isDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

// UpdatePassword stores a new bcrypt hash for the user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "UPDATE users SET password_hash=? WHERE id=?", hash, id)
	return err
}

// Delete removes a user and everything hanging off it: profile rows,
// refresh tokens, owned events (with their registrations and category
// links) and the user's own registrations.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	steps := []string{
		"DELETE FROM registrations WHERE mentor_id=?",
		"DELETE FROM registrations WHERE event_id IN (SELECT id FROM events WHERE organiser_id=?)",
		"DELETE FROM event_categories WHERE event_id IN (SELECT id FROM events WHERE organiser_id=?)",
		"DELETE FROM events WHERE organiser_id=?",
		"DELETE FROM mentor_skills WHERE mentor_profile_id IN (SELECT id FROM mentor_profiles WHERE user_id=?)",
		"DELETE FROM mentor_profiles WHERE user_id=?",
		"DELETE FROM org_profiles WHERE user_id=?",
		"DELETE FROM refresh_tokens WHERE user_id=?",
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// isDuplicateKey reports whether err is a MySQL 1062 duplicate-entry error.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
