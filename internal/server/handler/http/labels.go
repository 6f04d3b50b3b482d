package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/service"
)

// LabelService defines the label operations used by LabelHandler.
type LabelService interface {
	Prepare(ctx context.Context, serial string) ([]models.LabelJob, error)
	History(ctx context.Context, serials []string) ([]models.LabelJob, error)
}

// LabelHandler serves label preparation and label history.
type LabelHandler struct {
	LabelService LabelService
}

// PrepareRequest is the JSON body of POST /api/labels.
type PrepareRequest struct {
	Serial string `json:"serial"`
}

// JobsResponse wraps a list of label jobs.
type JobsResponse struct {
	Jobs []models.LabelJob `json:"jobs"`
}

// Prepare writes the label records for the serial number in the body and
// returns the jobs ready for printing.
func (h *LabelHandler) Prepare(w http.ResponseWriter, r *http.Request) {
	var req PrepareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	jobs, err := h.LabelService.Prepare(r.Context(), req.Serial)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, JobsResponse{Jobs: jobs})
	case errors.Is(err, service.ErrEmptySerial):
		http.Error(w, "serial number is required", http.StatusBadRequest)
	case errors.Is(err, service.ErrNotAuthenticated):
		http.Error(w, "not logged in", http.StatusUnauthorized)
	case errors.Is(err, service.ErrNoLabels):
		http.Error(w, "no labels configured", http.StatusUnprocessableEntity)
	default:
		http.Error(w, "failed to prepare labels", http.StatusInternalServerError)
	}
}

// History returns the stored jobs for every ?serial= query value.
func (h *LabelHandler) History(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.LabelService.History(r.Context(), r.URL.Query()["serial"])
	switch {
	case err == nil:
		if jobs == nil {
			jobs = []models.LabelJob{}
		}
		writeJSON(w, http.StatusOK, JobsResponse{Jobs: jobs})
	case errors.Is(err, service.ErrEmptySerial):
		http.Error(w, "serial number is required", http.StatusBadRequest)
	case errors.Is(err, service.ErrPersistenceDisabled):
		http.Error(w, "history is not available", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
