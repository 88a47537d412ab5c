package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var eventListCols = []string{
	"id", "name", "description", "image_url", "is_open", "date_created",
	"starts_at", "ends_at", "location", "latitude", "longitude",
	"organiser", "responses",
}

func listRow(rows *sqlmock.Rows, id uint64, name string, responses uint64) *sqlmock.Rows {
	return rows.AddRow(id, name, "", "", true, "2026-08-30 12:00:00",
		"2026-09-10 09:00:00", "2026-09-10 17:00:00",
		"Perth, WA, Australia", -31.95351, 115.85705, "acme", responses)
}

func TestListOpenFiltersOnOpenFlag(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepo(db)

	rows := sqlmock.NewRows(eventListCols)
	listRow(rows, 1, "Go Meetup", 3)
	listRow(rows, 4, "Career Night", 0)
	mock.ExpectQuery(`WHERE e\.is_open = 1 ORDER BY e\.id ASC LIMIT \?`).
		WithArgs(eventPageSize).
		WillReturnRows(rows)
	mock.ExpectQuery("FROM event_categories ec").
		WithArgs(uint64(1), uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "name"}).
			AddRow(1, "tech"))

	got, err := repo.ListOpen(context.Background())
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 4 {
		t.Fatalf("row order not preserved: %d, %d", got[0].ID, got[1].ID)
	}
	if len(got[0].Categories) != 1 || got[0].Categories[0] != "tech" {
		t.Fatalf("categories not attached to event 1: %v", got[0].Categories)
	}
	if len(got[1].Categories) != 0 {
		t.Fatalf("event 4 should have no categories, got %v", got[1].Categories)
	}
	expectationsMet(t, mock)
}

func TestPopularOrdersByResponsesWithIDTiebreak(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepo(db)

	rows := sqlmock.NewRows(eventListCols)
	listRow(rows, 2, "Busy", 5)
	listRow(rows, 1, "Tied A", 2)
	listRow(rows, 3, "Tied B", 2)
	mock.ExpectQuery(`ORDER BY responses DESC, e\.id ASC LIMIT \?`).
		WithArgs(eventPageSize).
		WillReturnRows(rows)
	mock.ExpectQuery("FROM event_categories ec").
		WithArgs(uint64(2), uint64(1), uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"event_id", "name"}))

	got, err := repo.Popular(context.Background(), false)
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if len(got) != 3 || got[0].ID != 2 || got[1].ID != 1 || got[2].ID != 3 {
		t.Fatalf("ordering lost in transport: %+v", got)
	}
	expectationsMet(t, mock)
}

func TestPopularShortListCapsAtSix(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepo(db)

	mock.ExpectQuery(`ORDER BY responses DESC, e\.id ASC LIMIT \?`).
		WithArgs(shortListSize).
		WillReturnRows(sqlmock.NewRows(eventListCols))

	got, err := repo.Popular(context.Background(), true)
	if err != nil {
		t.Fatalf("popular short: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty list, got %d rows", len(got))
	}
	expectationsMet(t, mock)
}
