package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jcruden/live-leaderboard/internal/api/apierr"
	"github.com/jcruden/live-leaderboard/internal/api/request"
	"github.com/jcruden/live-leaderboard/internal/api/response"
	"github.com/jcruden/live-leaderboard/internal/model"
	"github.com/jcruden/live-leaderboard/internal/services/passcode"
	"github.com/jcruden/live-leaderboard/internal/services/session"
)

// AuthHandler handles passcode login and logout
type AuthHandler struct {
	sessions     *session.Manager
	adminHash    string
	dictatorHash string
}

// NewAuthHandler creates a new auth handler. The hashes are the stored
// scrypt records for the admin and dictator passcodes.
func NewAuthHandler(sessions *session.Manager, adminHash, dictatorHash string) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		adminHash:    adminHash,
		dictatorHash: dictatorHash,
	}
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	pass := strings.TrimSpace(req.Passcode)
	if pass == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("passcode is required"))
		return
	}

	if h.adminHash == "" || h.dictatorHash == "" {
		apierr.WriteError(w, apierr.NewMisconfiguredError())
		return
	}

	// Dictator first: the roles could share a passcode and the stronger
	// one must win in that case.
	var role model.Role
	switch {
	case passcode.Verify(pass, h.dictatorHash):
		role = model.RoleDictator
	case passcode.Verify(pass, h.adminHash):
		role = model.RoleAdmin
	default:
		apierr.WriteError(w, apierr.NewUnauthorizedError())
		return
	}

	token, err := h.sessions.Issue(role)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.sessions.SetCookie(w, token)
	response.JSON(w, http.StatusOK, response.LoginResponse{Role: string(role)})
}

// Logout handles POST /api/admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	response.NoContent(w)
}
