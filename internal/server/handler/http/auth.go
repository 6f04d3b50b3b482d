// Package http provides the station's JSON API: operator login and logout,
// label preparation and the login history.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Authenticate checks a badge password and logs the operator in.
	Authenticate(ctx context.Context, password string) (models.UserInfo, error)
	// Logout clears the current session.
	Logout()
}

// SessionReader exposes the operator currently logged in.
type SessionReader interface {
	User() (models.UserInfo, bool)
}

// AuthHandler handles HTTP requests for operator login, logout and session lookup.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Session is read by WhoAmI.
	Session SessionReader
}

// LoginRequest represents the JSON payload for operator login.
type LoginRequest struct {
	// Password is the scanned badge password.
	Password string `json:"password"`
}

// Login authenticates the badge password from the request body.
//
//	200 UserInfo of the operator
//	400 undecodable body
//	401 password not found
//	403 matching record is malformed
//	500 credential file missing or undecodable
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Authenticate(r.Context(), req.Password)
	if err != nil {
		reason, _ := service.ReasonOf(err)
		switch reason {
		case models.NotFound:
			http.Error(w, string(models.NotFound), http.StatusUnauthorized)
		case models.MalformedRecord:
			http.Error(w, string(models.MalformedRecord), http.StatusForbidden)
		default:
			http.Error(w, "unexpected problem", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Logout ends the current session. It always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.AuthService.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// WhoAmI returns the operator currently logged in, or 401.
func (h *AuthHandler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Session.User()
	if !ok {
		http.Error(w, "not logged in", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
