package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
)

func setupAuditMock(t *testing.T) (*PostgresAuditRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresAuditRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

const insertLoginEvent = `INSERT INTO login_events (id, station, outcome, prefix, occurred_at) VALUES ($1, $2, $3, $4, $5)`

func TestRecordLogin_GeneratesID(t *testing.T) {
	repo, mock, cleanup := setupAuditMock(t)
	defer cleanup()

	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(insertLoginEvent)).
		WithArgs(sqlmock.AnyArg(), "PACK-01", "success", "JN", at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	ev := models.LoginEvent{Station: "PACK-01", Outcome: models.Success, Prefix: "JN", OccurredAt: at}
	if err := repo.RecordLogin(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestRecordLogin_KeepsExistingID(t *testing.T) {
	repo, mock, cleanup := setupAuditMock(t)
	defer cleanup()

	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(insertLoginEvent)).
		WithArgs("ev-1", "PACK-01", "not_found", "", at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	ev := models.LoginEvent{ID: "ev-1", Station: "PACK-01", Outcome: models.LoginOutcome(models.NotFound), OccurredAt: at}
	if err := repo.RecordLogin(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestRecordLogin_Error(t *testing.T) {
	repo, mock, cleanup := setupAuditMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO login_events`)).
		WillReturnError(errors.New("insert failed"))

	err := repo.RecordLogin(context.Background(), models.LoginEvent{Outcome: models.Success})
	if err == nil || !regexp.MustCompile(`RecordLogin`).MatchString(err.Error()) {
		t.Errorf("expected RecordLogin error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListRecent_Success(t *testing.T) {
	repo, mock, cleanup := setupAuditMock(t)
	defer cleanup()

	t1 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "station", "outcome", "prefix", "occurred_at"}).
		AddRow("e2", "PACK-01", "not_found", "", t1).
		AddRow("e1", "PACK-01", "success", "JN", t2)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, station, outcome, prefix, occurred_at FROM login_events`)).
		WithArgs(10).
		WillReturnRows(rows)

	events, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "e2" || events[0].Outcome != models.LoginOutcome(models.NotFound) {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Prefix != "JN" || !events[1].OccurredAt.Equal(t2) {
		t.Errorf("unexpected second event: %+v", events[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListRecent_Error(t *testing.T) {
	repo, mock, cleanup := setupAuditMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, station, outcome, prefix, occurred_at FROM login_events`)).
		WithArgs(5).
		WillReturnError(errors.New("query failed"))

	if _, err := repo.ListRecent(context.Background(), 5); err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
