// Package middleware provides HTTP middlewares for session checks and logging.
package middleware

import (
	"context"
	"net/http"

	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/models"
	"github.com/MiloslavHradecky/PrintSingleSerialNumber/internal/session"
)

type ctxKey string

const userKey ctxKey = "user"

// RequireSession rejects requests with 401 while no operator is logged in at
// the station. Otherwise the current operator is stored in the request
// context for downstream handlers.
func RequireSession(sess *session.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := sess.User()
			if !ok {
				http.Error(w, "not logged in", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the operator stored by RequireSession.
func UserFromContext(ctx context.Context) (models.UserInfo, bool) {
	u, ok := ctx.Value(userKey).(models.UserInfo)
	return u, ok
}
