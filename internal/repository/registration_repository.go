package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mentorhub/backend/internal/model"
)

// RegistrationRepo persists mentor-to-event interest records. The register
// path wraps the existence check and the insert in one transaction, and the
// table carries a unique key on (event_id, mentor_id), so a concurrent
// duplicate surfaces as ErrAlreadyRegistered instead of a second row.
type RegistrationRepo struct{ DB *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{DB: db} }

// RegistrationRow is the transport shape for registration listings,
// carrying the mentor's username alongside the raw ids.
type RegistrationRow struct {
	ID             uint64 `json:"id"`
	EventID        uint64 `json:"event_id"`
	MentorID       uint64 `json:"mentor_id"`
	Mentor         string `json:"mentor"`
	DateRegistered string `json:"date_registered"`
	Attended       bool   `json:"attended"`
}

const registrationRowSelect = `SELECT
		r.id, r.event_id, r.mentor_id, u.username,
		DATE_FORMAT(r.date_registered, '%Y-%m-%d %T') AS date_registered,
		r.attended
	FROM registrations r
	JOIN users u ON u.id = r.mentor_id`

func (r *RegistrationRepo) queryRows(ctx context.Context, q string, args ...any) ([]RegistrationRow, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RegistrationRow{}
	for rows.Next() {
		var d RegistrationRow
		if err := rows.Scan(&d.ID, &d.EventID, &d.MentorID, &d.Mentor, &d.DateRegistered, &d.Attended); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByEvent returns all registrations for one event in insertion order.
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID uint64) ([]RegistrationRow, error) {
	return r.queryRows(ctx, registrationRowSelect+" WHERE r.event_id=? ORDER BY r.id ASC", eventID)
}

// ListByMentor returns a mentor's registrations across all events.
func (r *RegistrationRepo) ListByMentor(ctx context.Context, mentorID uint64) ([]RegistrationRow, error) {
	return r.queryRows(ctx, registrationRowSelect+" WHERE r.mentor_id=? ORDER BY r.id ASC", mentorID)
}

// Exists reports whether the mentor already holds a registration for the
// event. Used by the policy check before the transactional register.
func (r *RegistrationRepo) Exists(ctx context.Context, eventID, mentorID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM registrations WHERE event_id=? AND mentor_id=? LIMIT 1", eventID, mentorID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Register creates a registration with attended=false. The check and the
// insert share a transaction; losing a race to the unique key still maps to
// ErrAlreadyRegistered.
func (r *RegistrationRepo) Register(ctx context.Context, eventID, mentorID uint64) (model.Registration, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Registration{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var one int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM registrations WHERE event_id=? AND mentor_id=? LIMIT 1", eventID, mentorID).Scan(&one)
	if err == nil {
		return model.Registration{}, ErrAlreadyRegistered
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.Registration{}, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO registrations (event_id, mentor_id) VALUES (?,?)", eventID, mentorID)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Registration{}, ErrAlreadyRegistered
		}
		return model.Registration{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Registration{}, err
	}

	var reg model.Registration
	err = tx.QueryRowContext(ctx,
		"SELECT id, event_id, mentor_id, date_registered, attended FROM registrations WHERE id=?", id).
		Scan(&reg.ID, &reg.EventID, &reg.MentorID, &reg.DateRegistered, &reg.Attended)
	if err != nil {
		return model.Registration{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Registration{}, err
	}
	return reg, nil
}

// Withdraw deletes the mentor's registration for the event. The returned
// bool distinguishes "removed" from "nothing to remove"; both are success.
func (r *RegistrationRepo) Withdraw(ctx context.Context, eventID, mentorID uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM registrations WHERE event_id=? AND mentor_id=?", eventID, mentorID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AttendanceEntry is one element of a bulk attendance update.
type AttendanceEntry struct {
	MentorID uint64 `json:"mentor"`
	Attended bool   `json:"attended"`
}

// BulkMarkAttendance sets the attended flag for each entry's registration
// inside one transaction. Entries whose mentor holds no registration for the
// event are skipped without creating a row; this no-create-on-update
// semantic is deliberate.
func (r *RegistrationRepo) BulkMarkAttendance(ctx context.Context, eventID uint64, entries []AttendanceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			"UPDATE registrations SET attended=? WHERE event_id=? AND mentor_id=?",
			e.Attended, eventID, e.MentorID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
