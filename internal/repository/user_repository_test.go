package repository

import (
	"context"
	"errors"
	"testing"
)

func TestUpdateEmailDuplicateMapsToConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("UPDATE users SET email=").
		WithArgs("taken@example.com", uint64(9)).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'taken@example.com' for key 'email'"))

	err := repo.UpdateEmail(context.Background(), 9, "Taken@Example.com")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
	expectationsMet(t, mock)
}
