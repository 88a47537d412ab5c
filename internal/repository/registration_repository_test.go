package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterRejectsExistingRegistration(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM registrations").
		WithArgs(uint64(42), uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), 42, 9)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("want ErrAlreadyRegistered, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestRegisterMapsDuplicateKeyRace(t *testing.T) {
	// A concurrent registration can slip between the check and the insert;
	// the unique key turns that into a 1062 which must map to the same
	// sentinel as the check.
	db, mock := newMockDB(t)
	repo := NewRegistrationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM registrations").
		WithArgs(uint64(42), uint64(9)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO registrations").
		WithArgs(uint64(42), uint64(9)).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '42-9' for key 'uq_event_mentor'"))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), 42, 9)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("want ErrAlreadyRegistered from duplicate key, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestRegisterReturnsStoredRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepo(db)

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM registrations").
		WithArgs(uint64(42), uint64(9)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO registrations").
		WithArgs(uint64(42), uint64(9)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT id, event_id, mentor_id, date_registered, attended FROM registrations").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "event_id", "mentor_id", "date_registered", "attended"}).
			AddRow(7, 42, 9, now, false))
	mock.ExpectCommit()

	reg, err := repo.Register(context.Background(), 42, 9)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.ID != 7 || reg.EventID != 42 || reg.MentorID != 9 {
		t.Fatalf("unexpected row: %+v", reg)
	}
	if reg.Attended {
		t.Fatal("new registration must start with attended=false")
	}
	expectationsMet(t, mock)
}

func TestWithdrawDistinguishesRemovalFromNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepo(db)

	mock.ExpectExec("DELETE FROM registrations").
		WithArgs(uint64(42), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	removed, err := repo.Withdraw(context.Background(), 42, 9)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if !removed {
		t.Fatal("deleting an existing registration must report removed=true")
	}

	mock.ExpectExec("DELETE FROM registrations").
		WithArgs(uint64(42), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	removed, err = repo.Withdraw(context.Background(), 42, 9)
	if err != nil {
		t.Fatalf("withdraw noop: %v", err)
	}
	if removed {
		t.Fatal("withdrawing with no registration must report removed=false")
	}
	expectationsMet(t, mock)
}

func TestBulkMarkAttendanceSkipsMissingRegistrations(t *testing.T) {
	// Entries for mentors without a registration update zero rows and must
	// neither create one nor fail the batch.
	db, mock := newMockDB(t)
	repo := NewRegistrationRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE registrations SET attended=").
		WithArgs(true, uint64(42), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE registrations SET attended=").
		WithArgs(false, uint64(42), uint64(777)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.BulkMarkAttendance(context.Background(), 42, []AttendanceEntry{
		{MentorID: 9, Attended: true},
		{MentorID: 777, Attended: false},
	})
	if err != nil {
		t.Fatalf("bulk attendance: %v", err)
	}
	expectationsMet(t, mock)
}

func TestBulkMarkAttendanceEmptyBatchTouchesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepo(db)

	if err := repo.BulkMarkAttendance(context.Background(), 42, nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
	expectationsMet(t, mock)
}
