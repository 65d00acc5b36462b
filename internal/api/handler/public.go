package handler

import (
	"net/http"
	"strconv"

	"github.com/jcruden/live-leaderboard/internal/api/apierr"
	"github.com/jcruden/live-leaderboard/internal/api/response"
	"github.com/jcruden/live-leaderboard/internal/services/score"
)

// PublicHandler serves the unauthenticated read endpoints
type PublicHandler struct {
	scores *score.Service
}

func NewPublicHandler(scores *score.Service) *PublicHandler {
	return &PublicHandler{scores: scores}
}

// ListPlayers handles GET /api/players
func (h *PublicHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	players, err := h.scores.ListPlayers(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// GetState handles GET /api/state
func (h *PublicHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.scores.GetState(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AppStateFromModel(state))
}

// Health handles GET /api/health
func (h *PublicHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
