package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jcruden/live-leaderboard/internal/api/apierr"
	"github.com/jcruden/live-leaderboard/internal/api/middleware"
	"github.com/jcruden/live-leaderboard/internal/api/request"
	"github.com/jcruden/live-leaderboard/internal/api/response"
	"github.com/jcruden/live-leaderboard/internal/model"
	"github.com/jcruden/live-leaderboard/internal/services/score"
)

// ScoreHandler handles score mutations and lock state changes
type ScoreHandler struct {
	scores *score.Service
}

func NewScoreHandler(scores *score.Service) *ScoreHandler {
	return &ScoreHandler{scores: scores}
}

// Apply handles POST /api/score
func (h *ScoreHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req request.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if _, err := uuid.Parse(req.PlayerID); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("player_id must be a UUID"))
		return
	}

	player, err := h.scores.ApplyDelta(r.Context(), model.PlayerID(req.PlayerID), req.Delta)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreResponse{
		OK:     true,
		Player: response.PlayerFromModel(player),
	})
}

// CreatePlayer handles POST /api/players
func (h *ScoreHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("display_name is required"))
		return
	}

	player, err := h.scores.CreatePlayer(r.Context(), name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Lock handles POST /api/lock and POST /api/unlock. The locked flag is
// fixed per route; the acting role comes from the session middleware.
func (h *ScoreHandler) Lock(locked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := middleware.MustGetRole(r.Context())

		state, err := h.scores.SetLock(r.Context(), locked, role)
		if err != nil {
			apierr.WriteError(w, err)
			return
		}

		response.JSON(w, http.StatusOK, response.AppStateFromModel(state))
	}
}
