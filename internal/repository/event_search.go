package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/mentorhub/backend/internal/geo"
)

// Short-form listings (most-popular/short-list etc.) cap at six rows.
const shortListSize = 6

// EventRow is the transport shape for event listings. It joins in the
// organiser's username and the registration count so list endpoints need a
// single query plus one category batch load.
type EventRow struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	IsOpen      bool     `json:"is_open"`
	DateCreated string   `json:"date_created"`
	StartsAt    string   `json:"starts_at"`
	EndsAt      string   `json:"ends_at"`
	Location    string   `json:"location"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Organiser   string   `json:"organiser"`
	Categories  []string `json:"categories"`
	Responses   uint64   `json:"responses"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
}

const eventRowSelect = `SELECT
		e.id, e.name, e.description, e.image_url, e.is_open,
		DATE_FORMAT(e.date_created, '%Y-%m-%d %T') AS date_created,
		DATE_FORMAT(e.starts_at, '%Y-%m-%d %T') AS starts_at,
		DATE_FORMAT(e.ends_at, '%Y-%m-%d %T') AS ends_at,
		e.location, e.latitude, e.longitude,
		u.username AS organiser,
		(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id) AS responses
	FROM events e
	JOIN users u ON u.id = e.organiser_id`

func (r *EventRepo) queryRows(ctx context.Context, q string, args ...any) ([]EventRow, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []EventRow{}
	for rows.Next() {
		var d EventRow
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.ImageURL, &d.IsOpen,
			&d.DateCreated, &d.StartsAt, &d.EndsAt, &d.Location, &d.Latitude, &d.Longitude,
			&d.Organiser, &d.Responses); err != nil {
			return nil, err
		}
		d.Categories = []string{}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachCategories(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachCategories batch-loads category names for the listed events.
func (r *EventRepo) attachCategories(ctx context.Context, events []EventRow) error {
	if len(events) == 0 {
		return nil
	}
	idx := make(map[uint64]int, len(events))
	placeholders := make([]string, 0, len(events))
	args := make([]any, 0, len(events))
	for i, e := range events {
		idx[e.ID] = i
		placeholders = append(placeholders, "?")
		args = append(args, e.ID)
	}
	q := `SELECT ec.event_id, c.name FROM event_categories ec
		JOIN categories c ON c.id = ec.category_id
		WHERE ec.event_id IN (` + strings.Join(placeholders, ",") + `) ORDER BY c.name`
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventID uint64
			name    string
		)
		if err := rows.Scan(&eventID, &name); err != nil {
			return err
		}
		if i, ok := idx[eventID]; ok {
			events[i].Categories = append(events[i].Categories, name)
		}
	}
	return rows.Err()
}

// ListOpen returns open events in stable id order, capped at the page size.
func (r *EventRepo) ListOpen(ctx context.Context) ([]EventRow, error) {
	return r.queryRows(ctx, eventRowSelect+" WHERE e.is_open = 1 ORDER BY e.id ASC LIMIT ?", eventPageSize)
}

// ListHostedBy returns every event, open or closed, of one organiser.
func (r *EventRepo) ListHostedBy(ctx context.Context, organiserID uint64) ([]EventRow, error) {
	return r.queryRows(ctx, eventRowSelect+" WHERE e.organiser_id = ? ORDER BY e.id ASC", organiserID)
}

// Popular returns events by descending registration count with ascending id
// as the tiebreak. short switches to the six-row short list.
func (r *EventRepo) Popular(ctx context.Context, short bool) ([]EventRow, error) {
	limit := eventPageSize
	if short {
		limit = shortListSize
	}
	return r.queryRows(ctx, eventRowSelect+" ORDER BY responses DESC, e.id ASC LIMIT ?", limit)
}

// ByCategory returns events tagged with the named category. An unknown
// category simply yields an empty list.
func (r *EventRepo) ByCategory(ctx context.Context, category string, short bool) ([]EventRow, error) {
	limit := eventPageSize
	if short {
		limit = shortListSize
	}
	q := eventRowSelect + `
		JOIN event_categories ec ON ec.event_id = e.id
		JOIN categories c ON c.id = ec.category_id
		WHERE c.name = ? ORDER BY e.id ASC LIMIT ?`
	return r.queryRows(ctx, q, strings.TrimSpace(category), limit)
}

// Search runs a case-insensitive substring match across event name,
// description, location, category names, organiser username and the
// organiser's company name. Matches are deduplicated and ordered by newest
// first.
func (r *EventRepo) Search(ctx context.Context, term string) ([]EventRow, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	q := eventRowSelect + `
		LEFT JOIN org_profiles op ON op.user_id = u.id
		LEFT JOIN event_categories ec ON ec.event_id = e.id
		LEFT JOIN categories c ON c.id = ec.category_id
		WHERE LOWER(e.name) LIKE ?
		   OR LOWER(e.description) LIKE ?
		   OR LOWER(e.location) LIKE ?
		   OR LOWER(c.name) LIKE ?
		   OR LOWER(u.username) LIKE ?
		   OR LOWER(op.company_name) LIKE ?
		GROUP BY e.id
		ORDER BY e.date_created DESC, e.id DESC
		LIMIT ?`
	return r.queryRows(ctx, q, like, like, like, like, like, like, eventPageSize)
}

// Nearby returns events within radiusKm of the given coordinates, closest
// first, capped at the page size. The distance runs over all events in Go so
// the haversine math stays in one place.
func (r *EventRepo) Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]EventRow, error) {
	all, err := r.queryRows(ctx, eventRowSelect+" ORDER BY e.id ASC")
	if err != nil {
		return nil, err
	}
	return FilterByDistance(all, lat, lon, radiusKm, eventPageSize), nil
}

// FilterByDistance computes each event's great-circle distance from
// (lat, lon), keeps those within radiusKm and sorts ascending by distance
// with id as the tiebreak. The limit is applied after sorting; a limit of
// zero or less means no cap.
func FilterByDistance(events []EventRow, lat, lon, radiusKm float64, limit int) []EventRow {
	out := []EventRow{}
	for _, e := range events {
		d := geo.DistanceKm(lat, lon, e.Latitude, e.Longitude)
		if d <= radiusKm {
			e.DistanceKm = &d
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if *out[i].DistanceKm != *out[j].DistanceKm {
			return *out[i].DistanceKm < *out[j].DistanceKm
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
