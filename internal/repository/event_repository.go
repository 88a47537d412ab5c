package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mentorhub/backend/internal/model"
)

// Page size shared by every capped event listing.
const eventPageSize = 30

// EventRepo persists events and their category links. Categories are a full
// replace on every write that touches them: the join rows are cleared and
// rewritten inside the surrounding transaction.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = "id,name,description,image_url,is_open,date_created,starts_at,ends_at,location,latitude,longitude,organiser_id"

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.ImageURL, &e.IsOpen, &e.DateCreated,
		&e.StartsAt, &e.EndsAt, &e.Location, &e.Latitude, &e.Longitude, &e.OrganiserID)
	return e, err
}

// Create inserts an event and its category links in one transaction and
// returns the stored row. Unknown category names fail the whole insert with
// ErrUnknownCategory.
func (r *EventRepo) Create(ctx context.Context, e model.Event, categories []string) (model.Event, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Event{}, err
	}
	defer func() { _ = tx.Rollback() }()

	catIDs, err := categoryIDsByName(ctx, tx, categories)
	if err != nil {
		return model.Event{}, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO events (name, description, image_url, is_open, starts_at, ends_at, location, latitude, longitude, organiser_id)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		e.Name, e.Description, e.ImageURL, e.IsOpen, e.StartsAt.UTC(), e.EndsAt.UTC(),
		e.Location, e.Latitude, e.Longitude, e.OrganiserID)
	if err != nil {
		return model.Event{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Event{}, err
	}
	e.ID = uint64(id)

	for _, cid := range catIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO event_categories (event_id, category_id) VALUES (?,?)", e.ID, cid); err != nil {
			return model.Event{}, err
		}
	}

	// Read back to pick up date_created and column defaults.
	stored, err := scanEvent(tx.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id=?", e.ID))
	if err != nil {
		return model.Event{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Event{}, err
	}
	return stored, nil
}

// GetByID fetches an event and its category names.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, []string, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, nil, ErrNotFound
	}
	if err != nil {
		return model.Event{}, nil, err
	}
	cats, err := r.categoriesFor(ctx, id)
	if err != nil {
		return model.Event{}, nil, err
	}
	return e, cats, nil
}

func (r *EventRepo) categoriesFor(ctx context.Context, eventID uint64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.name FROM categories c
		 JOIN event_categories ec ON ec.category_id = c.id
		 WHERE ec.event_id=? ORDER BY c.name`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// EventPatch carries the sparse fields of an event update. Nil pointers
// keep the stored value. Categories, when non-nil, replaces the full set —
// an empty slice clears all links. DateCreated and the organiser are
// immutable and have no patch field.
type EventPatch struct {
	Name        *string
	Description *string
	ImageURL    *string
	IsOpen      *bool
	StartsAt    *time.Time
	EndsAt      *time.Time
	Location    *string
	Latitude    *float64
	Longitude   *float64
	Categories  *[]string
}

// Update applies a sparse update to an event inside one transaction.
func (r *EventRepo) Update(ctx context.Context, id uint64, patch EventPatch) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	sets := []string{}
	args := []any{}
	add := func(col string, v any) {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.IsOpen != nil {
		add("is_open", *patch.IsOpen)
	}
	if patch.StartsAt != nil {
		add("starts_at", patch.StartsAt.UTC())
	}
	if patch.EndsAt != nil {
		add("ends_at", patch.EndsAt.UTC())
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.Latitude != nil {
		add("latitude", *patch.Latitude)
	}
	if patch.Longitude != nil {
		add("longitude", *patch.Longitude)
	}
	if len(sets) > 0 {
		args = append(args, id)
		if _, err := tx.ExecContext(ctx, "UPDATE events SET "+joinSets(sets)+" WHERE id=?", args...); err != nil {
			return err
		}
	}

	if patch.Categories != nil {
		catIDs, err := categoryIDsByName(ctx, tx, *patch.Categories)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM event_categories WHERE event_id=?", id); err != nil {
			return err
		}
		for _, cid := range catIDs {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO event_categories (event_id, category_id) VALUES (?,?)", id, cid); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// Delete removes an event, cascading over its registrations and category
// links.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM registrations WHERE event_id=?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM event_categories WHERE event_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
