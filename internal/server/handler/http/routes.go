package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/middleware"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/session"
)

// NewRouter constructs and returns an HTTP handler that serves the station API.
//
// Routes:
//
//	POST /api/login    → authHandler.Login
//	POST /api/logout   → authHandler.Logout
//	GET  /api/session  → authHandler.WhoAmI
//	POST /api/labels   → labelHandler.Prepare (session required)
//	GET  /api/labels   → labelHandler.History
//	GET  /api/audit    → auditHandler.Recent
//
// Middleware chain (applied in order):
//  1. RequestID and Recoverer from chi
//  2. AllowContentType("application/json") rejects non-JSON bodies
//  3. WithRequestLogging(logger) logs every request
func NewRouter(
	authHandler *AuthHandler,
	labelHandler *LabelHandler,
	auditHandler *AuditHandler,
	sess *session.Session,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/session", authHandler.WhoAmI)
		r.Get("/labels", labelHandler.History)
		r.Get("/audit", auditHandler.Recent)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sess))
			r.Post("/labels", labelHandler.Prepare)
		})
	})

	return r
}
