package service

import (
	"context"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
)

// Limits applied to AuditService.Recent.
const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

// AuditLister reads stored login events.
type AuditLister interface {
	// ListRecent returns at most limit events, newest first.
	ListRecent(ctx context.Context, limit int) ([]models.LoginEvent, error)
}

// AuditService exposes the login history.
type AuditService struct {
	repo AuditLister
}

// NewAuditService constructs an AuditService. A nil repo makes every call
// return ErrPersistenceDisabled.
func NewAuditService(repo AuditLister) *AuditService {
	return &AuditService{repo: repo}
}

// Recent returns the latest login events. Non-positive limits use
// DefaultAuditLimit; larger ones are capped at MaxAuditLimit.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.LoginEvent, error) {
	if s.repo == nil {
		return nil, ErrPersistenceDisabled
	}
	switch {
	case limit <= 0:
		limit = DefaultAuditLimit
	case limit > MaxAuditLimit:
		limit = MaxAuditLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
