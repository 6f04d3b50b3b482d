// Package db opens the station's PostgreSQL database and maintains it.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS login_events (
    id UUID PRIMARY KEY,
    station TEXT NOT NULL,
    outcome TEXT NOT NULL,
    prefix TEXT NOT NULL DEFAULT '',
    occurred_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS login_events_occurred_at_idx ON login_events (occurred_at);

CREATE TABLE IF NOT EXISTS label_records (
    id UUID PRIMARY KEY,
    station TEXT NOT NULL,
    label_key TEXT NOT NULL,
    serial TEXT NOT NULL,
    prefix TEXT NOT NULL,
    printer TEXT NOT NULL,
    copies INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS label_records_serial_idx ON label_records (serial);
`

// InitPostgres opens the database at dsn, checks the connection and creates
// the station tables when they do not exist yet.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the station tables on db.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
