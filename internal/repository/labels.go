package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
)

// PostgresLabelRepository keeps a history of prepared labels in PostgreSQL.
type PostgresLabelRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresLabelRepository creates a new PostgresLabelRepository using the provided *sql.DB.
func NewPostgresLabelRepository(db *sql.DB) *PostgresLabelRepository {
	return &PostgresLabelRepository{DB: db}
}

// RecordLabels inserts one row per job within a single transaction.
//
//	ctx:     context for cancellation and deadlines
//	station: name of the packing station that prepared the jobs
//	jobs:    prepared label jobs
//
// Either all rows are stored or none.
func (s *PostgresLabelRepository) RecordLabels(ctx context.Context, station string, jobs []models.LabelJob) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, job := range jobs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO label_records (id, station, label_key, serial, prefix, printer, copies, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.NewString(), station, job.Key, job.Serial, job.Prefix, job.Printer, job.Copies, job.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert label record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListBySerials returns the label history of the given serial numbers, oldest first.
func (s *PostgresLabelRepository) ListBySerials(ctx context.Context, serials []string) ([]models.LabelJob, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT label_key, serial, prefix, printer, copies, created_at FROM label_records
		WHERE serial = ANY($1) ORDER BY created_at
	`, pq.Array(serials))
	if err != nil {
		return nil, fmt.Errorf("ListBySerials: %w", err)
	}
	defer rows.Close()

	var jobs []models.LabelJob
	for rows.Next() {
		var job models.LabelJob
		if err := rows.Scan(&job.Key, &job.Serial, &job.Prefix, &job.Printer, &job.Copies, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListBySerials: %w", err)
	}
	return jobs, nil
}
