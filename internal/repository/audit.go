// Package repository provides persistence for the station: the credential
// file reader and PostgreSQL stores for login events and label records.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
)

// PostgresAuditRepository stores login events in a PostgreSQL database.
type PostgresAuditRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuditRepository creates a new PostgresAuditRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresAuditRepository(db *sql.DB) *PostgresAuditRepository {
	return &PostgresAuditRepository{DB: db}
}

// RecordLogin inserts a login event. An ID is generated when ev has none.
func (s *PostgresAuditRepository) RecordLogin(ctx context.Context, ev models.LoginEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO login_events (id, station, outcome, prefix, occurred_at) VALUES ($1, $2, $3, $4, $5)`,
		ev.ID, ev.Station, string(ev.Outcome), ev.Prefix, ev.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("RecordLogin: %w", err)
	}
	return nil
}

// ListRecent returns at most limit login events, newest first.
func (s *PostgresAuditRepository) ListRecent(ctx context.Context, limit int) ([]models.LoginEvent, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, station, outcome, prefix, occurred_at FROM login_events
		ORDER BY occurred_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer rows.Close()

	var events []models.LoginEvent
	for rows.Next() {
		var ev models.LoginEvent
		var outcome string
		if err := rows.Scan(&ev.ID, &ev.Station, &outcome, &ev.Prefix, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		ev.Outcome = models.LoginOutcome(outcome)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	return events, nil
}
