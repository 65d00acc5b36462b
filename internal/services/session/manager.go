// Package session issues and verifies the signed role token carried in the
// admin session cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jcruden/live-leaderboard/internal/dependencies/clock"
	"github.com/jcruden/live-leaderboard/internal/model"
)

// CookieName is the cookie that carries the session token
const CookieName = "admin_session"

// Sessions are strictly 12 hours with no renewal path; after expiry the
// holder must log in again.
const sessionTTL = 12 * time.Hour

// ErrNoSession covers every verification failure: missing token, bad
// signature, expiry, unknown role. Callers never learn which.
var ErrNoSession = errors.New("no valid session")

// Claims are the JWT claims embedded in a session token
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Manager issues, verifies and clears signed session tokens.
type Manager struct {
	secret        []byte
	clock         clock.Clock
	secureCookies bool
}

// NewManager creates a session manager. The signing secret is mandatory.
func NewManager(secret string, clk clock.Clock, secureCookies bool) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("session signing secret must be configured")
	}
	return &Manager{
		secret:        []byte(secret),
		clock:         clk,
		secureCookies: secureCookies,
	}, nil
}

// Issue creates a signed token embedding the role, expiring in 12 hours.
func (m *Manager) Issue(role model.Role) (string, error) {
	now := m.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
		Role: string(role),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded role.
// A role outside the known enum is treated as no session.
func (m *Manager) Verify(tokenString string) (model.Role, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.clock.Now))
	if err != nil || !token.Valid {
		return "", ErrNoSession
	}

	role := model.Role(claims.Role)
	if !role.Valid() {
		return "", ErrNoSession
	}
	return role, nil
}

// SetCookie stores the token as an HTTP-only, SameSite=Lax cookie whose
// max-age matches the token lifetime.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secureCookies,
	})
}

// ClearCookie overwrites the cookie with an immediately-expiring empty value.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.secureCookies,
	})
}
