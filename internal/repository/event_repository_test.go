package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpdateReplacesCategorySet(t *testing.T) {
	// A categories field clears every join row and rewrites the supplied
	// set, all inside the update's transaction.
	db, mock := newMockDB(t)
	repo := NewEventRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM categories WHERE name=").
		WithArgs("tech").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery("SELECT id FROM categories WHERE name=").
		WithArgs("mentoring").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectExec("DELETE FROM event_categories WHERE event_id=").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO event_categories").
		WithArgs(uint64(42), uint64(3)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO event_categories").
		WithArgs(uint64(42), uint64(8)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	cats := []string{"tech", "mentoring"}
	if err := repo.Update(context.Background(), 42, EventPatch{Categories: &cats}); err != nil {
		t.Fatalf("update: %v", err)
	}
	expectationsMet(t, mock)
}

func TestUpdateClearsCategoriesOnEmptySet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM event_categories WHERE event_id=").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	empty := []string{}
	if err := repo.Update(context.Background(), 42, EventPatch{Categories: &empty}); err != nil {
		t.Fatalf("update: %v", err)
	}
	expectationsMet(t, mock)
}

func TestUpdateSparsePatchTouchesOnlySuppliedColumns(t *testing.T) {
	// A name-only patch must issue exactly one UPDATE naming only the name
	// column; absent fields and the category links stay untouched.
	db, mock := newMockDB(t)
	repo := NewEventRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE events SET name=? WHERE id=?")).
		WithArgs("Renamed", uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	name := "Renamed"
	if err := repo.Update(context.Background(), 42, EventPatch{Name: &name}); err != nil {
		t.Fatalf("update: %v", err)
	}
	expectationsMet(t, mock)
}

func TestUpdateUnknownCategoryFailsWholePatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM categories WHERE name=").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	cats := []string{"nope"}
	err := repo.Update(context.Background(), 42, EventPatch{Categories: &cats})
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("want ErrUnknownCategory, got %v", err)
	}
	expectationsMet(t, mock)
}
