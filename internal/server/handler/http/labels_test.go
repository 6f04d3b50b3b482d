package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/service"
)

// fakeLabelService implements LabelService for testing.
type fakeLabelService struct {
	jobs    []models.LabelJob
	err     error
	serial  string
	serials []string
}

func (f *fakeLabelService) Prepare(ctx context.Context, serial string) ([]models.LabelJob, error) {
	f.serial = serial
	return f.jobs, f.err
}

func (f *fakeLabelService) History(ctx context.Context, serials []string) ([]models.LabelJob, error) {
	f.serials = serials
	return f.jobs, f.err
}

var sampleJob = models.LabelJob{
	LabelSpec: models.LabelSpec{Key: "label01", Path: "/l/item.btw", Printer: "ZD621", Copies: 1},
	Serial:    "SN1",
	Prefix:    "JN",
}

func TestLabelHandler_Prepare(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeLabelService
		expectedCode   int
		expectedSubstr string
	}{
		{"invalid JSON", `{`, &fakeLabelService{}, http.StatusBadRequest, "invalid request"},
		{"empty serial", `{"serial":""}`, &fakeLabelService{err: service.ErrEmptySerial}, http.StatusBadRequest, "serial number is required"},
		{"not logged in", `{"serial":"SN1"}`, &fakeLabelService{err: service.ErrNotAuthenticated}, http.StatusUnauthorized, "not logged in"},
		{"no labels", `{"serial":"SN1"}`, &fakeLabelService{err: service.ErrNoLabels}, http.StatusUnprocessableEntity, "no labels configured"},
		{"write failure", `{"serial":"SN1"}`, &fakeLabelService{err: fmt.Errorf("label label01: %w", errors.New("disk full"))}, http.StatusInternalServerError, "failed to prepare labels"},
		{"success", `{"serial":"sn1"}`, &fakeLabelService{jobs: []models.LabelJob{sampleJob}}, http.StatusOK, `"printer":"ZD621"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/labels", bytes.NewBufferString(tt.body))
			(&LabelHandler{LabelService: tt.service}).Prepare(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestLabelHandler_History(t *testing.T) {
	svc := &fakeLabelService{}
	rec := httptest.NewRecorder()
	(&LabelHandler{LabelService: svc}).History(rec, httptest.NewRequest("GET", "/api/labels?serial=SN1&serial=SN2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !reflect.DeepEqual(svc.serials, []string{"SN1", "SN2"}) {
		t.Errorf("unexpected serials %v", svc.serials)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"jobs":[]}` {
		t.Errorf("expected empty job list, got %q", rec.Body.String())
	}
}

func TestLabelHandler_HistoryErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{service.ErrEmptySerial, http.StatusBadRequest},
		{service.ErrPersistenceDisabled, http.StatusServiceUnavailable},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		(&LabelHandler{LabelService: &fakeLabelService{err: tt.err}}).History(rec, httptest.NewRequest("GET", "/api/labels", nil))
		if rec.Code != tt.code {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.code, rec.Code)
		}
	}
}
