package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/jcruden/live-leaderboard/internal/api/apierr"
	"github.com/jcruden/live-leaderboard/internal/model"
	"github.com/jcruden/live-leaderboard/internal/services/session"
)

type contextKey string

const roleContextKey contextKey = "role"

// Session extracts and verifies the session token if present, storing the
// role in the request context. It never rejects: public routes run under it
// too, and role checks happen in RequireRole.
func Session(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token != "" {
				if role, err := sessions.Verify(token); err == nil {
					ctx := context.WithValue(r.Context(), roleContextKey, role)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole gates a handler to requests whose session carries one of the
// given roles: 401 without a session, 403 with the wrong one.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r.Context())
			if !ok {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			apierr.WriteError(w, apierr.NewForbiddenError())
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first (CLI clients)
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to the session cookie (browsers)
	cookie, err := r.Cookie(session.CookieName)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetRole returns the authenticated role from the request context
func GetRole(ctx context.Context) (model.Role, bool) {
	role, ok := ctx.Value(roleContextKey).(model.Role)
	return role, ok
}

// MustGetRole returns the authenticated role or panics
func MustGetRole(ctx context.Context) model.Role {
	role, ok := GetRole(ctx)
	if !ok {
		panic("no role in context - RequireRole middleware not applied?")
	}
	return role
}
