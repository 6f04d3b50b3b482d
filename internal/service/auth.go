// Package service provides the station business logic: operator
// authentication against the credential file and label preparation.
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/credfile"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/session"
)

// minRecordFields is the number of comma-separated fields a record needs
// before surname, name and prefix can be read from positions 2, 3 and 4.
const minRecordFields = 5

// CredentialSource defines how the authentication service obtains the
// stored credential set. It is consulted on every attempt.
type CredentialSource interface {
	// LoadCredentials returns the decoded credential records in file order.
	LoadCredentials(ctx context.Context) ([]models.StoredCredential, error)
}

// AuditRecorder persists login attempts.
type AuditRecorder interface {
	// RecordLogin stores a single login event.
	RecordLogin(ctx context.Context, ev models.LoginEvent) error
}

// AuthError is returned by Authenticate for every rejected or failed attempt.
type AuthError struct {
	// Reason tells the caller which user-facing message to show.
	Reason models.AuthFailureReason
	// Err is the underlying error for FileUnavailable and DecodeError.
	Err error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed (%s)", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ReasonOf extracts the failure reason from an error returned by Authenticate.
func ReasonOf(err error) (models.AuthFailureReason, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Reason, true
	}
	return "", false
}

// AuthService verifies badge passwords and publishes the operator into the session.
type AuthService struct {
	source  CredentialSource
	session *session.Session
	log     *zap.Logger
	audit   AuditRecorder
	station string
	now     func() time.Time
}

// NewAuthService constructs an AuthService reading credentials from source
// and publishing successful logins into sess. A nil logger disables logging.
func NewAuthService(source CredentialSource, sess *session.Session, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		source:  source,
		session: sess,
		log:     log,
		now:     time.Now,
	}
}

// WithAudit makes the service record every attempt under the given station name.
func (s *AuthService) WithAudit(rec AuditRecorder, station string) *AuthService {
	s.audit = rec
	s.station = station
	return s
}

// Authenticate checks password against the credential file.
//
// The file is reloaded on every call and scanned in order; the first record
// whose password hash matches wins. On success the operator is stored in the
// session and returned. Every failure is an *AuthError.
func (s *AuthService) Authenticate(ctx context.Context, password string) (models.UserInfo, error) {
	creds, err := s.source.LoadCredentials(ctx)
	if err != nil {
		reason := models.DecodeError
		if errors.Is(err, credfile.ErrFileAccess) {
			reason = models.FileUnavailable
		}
		s.log.Error("failed to load credentials",
			zap.String("reason", string(reason)), zap.Error(err))
		s.record(ctx, models.LoginOutcome(reason), "")
		return models.UserInfo{}, &AuthError{Reason: reason, Err: err}
	}

	want := []byte(credfile.HashPassword(password))
	for _, c := range creds {
		if subtle.ConstantTimeCompare([]byte(c.PasswordHash), want) != 1 {
			continue
		}

		fields := strings.Split(c.RawLine, ",")
		if len(fields) < minRecordFields {
			s.log.Warn("credential record lacks operator fields",
				zap.Int("line", c.Line), zap.Int("fields", len(fields)))
			s.record(ctx, models.LoginOutcome(models.MalformedRecord), "")
			return models.UserInfo{}, &AuthError{Reason: models.MalformedRecord}
		}

		user := models.UserInfo{
			Surname: strings.TrimSpace(fields[2]),
			Name:    strings.TrimSpace(fields[3]),
			Prefix:  strings.TrimSpace(fields[4]),
		}
		if s.session != nil {
			s.session.Login(user)
		}
		s.log.Info("operator logged in",
			zap.String("surname", user.Surname),
			zap.String("name", user.Name),
			zap.String("prefix", user.Prefix))
		s.record(ctx, models.Success, user.Prefix)
		return user, nil
	}

	// The attempted password is part of the entry for tracing failed badge scans.
	s.log.Warn("password not found in credential file",
		zap.String("password", password), zap.Int("records", len(creds)))
	s.record(ctx, models.LoginOutcome(models.NotFound), "")
	return models.UserInfo{}, &AuthError{Reason: models.NotFound}
}

// Logout clears the session.
func (s *AuthService) Logout() {
	if s.session == nil {
		return
	}
	if u, ok := s.session.User(); ok {
		s.log.Info("operator logged out", zap.String("prefix", u.Prefix))
	}
	s.session.Logout()
}

func (s *AuthService) record(ctx context.Context, outcome models.LoginOutcome, prefix string) {
	if s.audit == nil {
		return
	}
	ev := models.LoginEvent{
		Station:    s.station,
		Outcome:    outcome,
		Prefix:     prefix,
		OccurredAt: s.now().UTC(),
	}
	if err := s.audit.RecordLogin(ctx, ev); err != nil {
		s.log.Warn("failed to record login event", zap.String("outcome", string(outcome)), zap.Error(err))
	}
}
