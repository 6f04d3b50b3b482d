package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/labels"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/session"
)

// Errors returned by LabelService.
var (
	ErrEmptySerial         = errors.New("serial number is empty")
	ErrNoLabels            = errors.New("no labels configured")
	ErrNotAuthenticated    = errors.New("no operator logged in")
	ErrPersistenceDisabled = errors.New("persistence is not configured")
)

// LabelRecorder defines the persistence operations needed by the LabelService.
type LabelRecorder interface {
	// RecordLabels stores the prepared jobs for the given station.
	RecordLabels(ctx context.Context, station string, jobs []models.LabelJob) error
	// ListBySerials returns previously prepared jobs for the given serial numbers.
	ListBySerials(ctx context.Context, serials []string) ([]models.LabelJob, error)
}

// LabelService prepares label jobs for a serial number on behalf of the
// logged-in operator.
type LabelService struct {
	specs   []models.LabelSpec
	session *session.Session
	log     *zap.Logger
	repo    LabelRecorder
	station string
	now     func() time.Time
}

// NewLabelService constructs a LabelService for the configured label specs.
func NewLabelService(specs []models.LabelSpec, sess *session.Session, log *zap.Logger) *LabelService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LabelService{
		specs:   specs,
		session: sess,
		log:     log,
		now:     time.Now,
	}
}

// WithRecorder makes the service keep a history of prepared labels.
func (s *LabelService) WithRecorder(repo LabelRecorder, station string) *LabelService {
	s.repo = repo
	s.station = station
	return s
}

// Specs returns the configured label templates.
func (s *LabelService) Specs() []models.LabelSpec {
	return s.specs
}

// Prepare writes the record file of every configured label for serial and
// returns the jobs ready for the print engine. The serial is trimmed and
// upper-cased; the operator prefix comes from the session.
func (s *LabelService) Prepare(ctx context.Context, serial string) ([]models.LabelJob, error) {
	serial = normalizeSerial(serial)
	if serial == "" {
		return nil, ErrEmptySerial
	}
	user, ok := s.session.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if len(s.specs) == 0 {
		s.log.Warn("no labels configured")
		return nil, ErrNoLabels
	}

	now := s.now()
	jobs := make([]models.LabelJob, 0, len(s.specs))
	for _, spec := range s.specs {
		path, err := labels.WriteRecord(spec.Path, serial, user.Prefix, now)
		if err != nil {
			s.log.Error("failed to write label record",
				zap.String("label", spec.Key), zap.Error(err))
			return nil, fmt.Errorf("label %s: %w", spec.Key, err)
		}
		jobs = append(jobs, models.LabelJob{
			LabelSpec:  spec,
			Serial:     serial,
			Prefix:     user.Prefix,
			RecordPath: path,
			CreatedAt:  now,
		})
		s.log.Info("label prepared",
			zap.String("label", spec.Key),
			zap.String("serial", serial),
			zap.String("printer", spec.Printer),
			zap.Int("copies", spec.Copies))
	}

	if s.repo != nil {
		if err := s.repo.RecordLabels(ctx, s.station, jobs); err != nil {
			s.log.Warn("failed to store label history", zap.String("serial", serial), zap.Error(err))
		}
	}
	return jobs, nil
}

// History returns the stored jobs for the given serial numbers.
func (s *LabelService) History(ctx context.Context, serials []string) ([]models.LabelJob, error) {
	if s.repo == nil {
		return nil, ErrPersistenceDisabled
	}
	normalized := make([]string, 0, len(serials))
	for _, sn := range serials {
		if sn = normalizeSerial(sn); sn != "" {
			normalized = append(normalized, sn)
		}
	}
	if len(normalized) == 0 {
		return nil, ErrEmptySerial
	}
	return s.repo.ListBySerials(ctx, normalized)
}

func normalizeSerial(serial string) string {
	return strings.ToUpper(strings.TrimSpace(serial))
}
