package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/mentorhub/backend/internal/repository"
)

var eventCols = []string{
	"id", "name", "description", "image_url", "is_open", "date_created",
	"starts_at", "ends_at", "location", "latitude", "longitude", "organiser_id",
}

func eventRowFixture(id, organiserID uint64) *sqlmock.Rows {
	ts := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(eventCols).AddRow(
		id, "Go Meetup", "", "", true, ts, ts, ts.Add(8*time.Hour),
		"Perth, WA, Australia", -31.95351, 115.85705, organiserID)
}

func expectEventLookup(mock sqlmock.Sqlmock, eventID, organiserID uint64) {
	mock.ExpectQuery("FROM events WHERE id=").
		WithArgs(eventID).
		WillReturnRows(eventRowFixture(eventID, organiserID))
	mock.ExpectQuery("FROM categories c").
		WithArgs(eventID).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
}

func withdrawContext(t *testing.T, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/events/42/responses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")
	c.Set("user_id", userID)
	c.Set("role", "MENTOR")
	c.Set("su", false)
	return c, rec
}

func TestWithdrawRemovalAnswers200(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	h := NewRegistrationHandler(
		repository.NewUserRepo(db), repository.NewEventRepo(db), repository.NewRegistrationRepo(db))

	expectEventLookup(mock, 42, 5)
	mock.ExpectExec("DELETE FROM registrations").
		WithArgs(uint64(42), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := withdrawContext(t, 9)
	if err := h.Withdraw(c); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("removing an existing registration: want 200, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithdrawWithoutRegistrationAnswers204(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	h := NewRegistrationHandler(
		repository.NewUserRepo(db), repository.NewEventRepo(db), repository.NewRegistrationRepo(db))

	expectEventLookup(mock, 42, 5)
	mock.ExpectExec("DELETE FROM registrations").
		WithArgs(uint64(42), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := withdrawContext(t, 9)
	if err := h.Withdraw(c); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("withdrawing with nothing registered: want 204, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
