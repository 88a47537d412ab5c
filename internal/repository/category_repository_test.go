package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCategoryDeleteLeavesTaggedEventsIntact(t *testing.T) {
	// Deleting a category removes the join rows, never the events or mentor
	// profiles behind them. The expectations pin the exact statements the
	// cascade is allowed to run.
	db, mock := newMockDB(t)
	repo := NewCategoryRepo(db)

	mock.ExpectQuery("SELECT id, name FROM categories WHERE name=").
		WithArgs("tech").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "tech"))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM event_categories WHERE category_id=").
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM mentor_skills WHERE category_id=").
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM categories WHERE id=").
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), "tech"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectationsMet(t, mock)
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepo(db)

	mock.ExpectExec("INSERT INTO categories").
		WithArgs("tech").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'tech' for key 'name'"))

	_, err := repo.Create(context.Background(), "tech")
	if !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("want ErrCategoryExists, got %v", err)
	}
	expectationsMet(t, mock)
}
