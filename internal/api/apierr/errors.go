package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jcruden/live-leaderboard/internal/model"
	"github.com/jcruden/live-leaderboard/internal/services/session"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodePlayerNotFound = "PLAYER_NOT_FOUND"
	CodeScoringLocked  = "SCORING_LOCKED"
	CodeMisconfigured  = "MISCONFIGURED"
	CodeInternalError  = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrScoringLocked):
		return &httpError{http.StatusLocked, APIError{CodeScoringLocked, "Scoring is locked"}}
	case errors.Is(err, model.ErrInvalidDelta):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Delta must be -1, 1 or 10"}}
	case errors.Is(err, session.ErrNoSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "No valid session"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a wrong-role error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Insufficient role"}}
}

// NewMisconfiguredError signals missing server-side configuration
func NewMisconfiguredError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeMisconfigured, "Server misconfigured"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
