package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/service"
)

// AuditService lists stored login events.
type AuditService interface {
	Recent(ctx context.Context, limit int) ([]models.LoginEvent, error)
}

// AuditHandler serves the login history.
type AuditHandler struct {
	AuditService AuditService
}

// EventsResponse wraps a list of login events.
type EventsResponse struct {
	Events []models.LoginEvent `json:"events"`
}

// Recent returns the latest login events. The optional ?limit= must be an integer.
func (h *AuditHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	events, err := h.AuditService.Recent(r.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrPersistenceDisabled) {
			http.Error(w, "history is not available", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.LoginEvent{}
	}
	writeJSON(w, http.StatusOK, EventsResponse{Events: events})
}
