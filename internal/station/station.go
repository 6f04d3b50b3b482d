// Package station wires the credential file, session, services and the
// optional PostgreSQL history into one packing station.
package station

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/config"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/db"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/repository"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/service"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/session"
)

// CleanupInterval is how often expired login events are purged.
const CleanupInterval = time.Hour

// Station is a fully wired packing station.
type Station struct {
	Session *session.Session
	Auth    *service.AuthService
	Labels  *service.LabelService
	Audit   *service.AuditService

	db *sql.DB
}

// New builds a Station from opts. When opts.DatabaseDSN is set, login events
// and prepared labels are stored in PostgreSQL and old login events are
// purged until ctx is done.
func New(ctx context.Context, opts *config.Options, log *zap.Logger) (*Station, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sess := session.New()
	creds := repository.NewFileCredentialRepository(opts.CredentialFile)

	s := &Station{
		Session: sess,
		Auth:    service.NewAuthService(creds, sess, log),
		Labels:  service.NewLabelService(opts.Labels, sess, log),
		Audit:   service.NewAuditService(nil),
	}
	if opts.DatabaseDSN == "" {
		log.Info("database not configured, login and label history disabled")
		return s, nil
	}

	pg, err := db.InitPostgres(opts.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	db.StartRetentionCleaner(ctx, pg, CleanupInterval, opts.Retention, log)

	auditRepo := repository.NewPostgresAuditRepository(pg)
	s.Auth.WithAudit(auditRepo, opts.Station)
	s.Labels.WithRecorder(repository.NewPostgresLabelRepository(pg), opts.Station)
	s.Audit = service.NewAuditService(auditRepo)
	s.db = pg
	return s, nil
}

// Close releases the database connection, if any.
func (s *Station) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
