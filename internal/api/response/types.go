package response

import (
	"time"

	"github.com/jcruden/live-leaderboard/internal/model"
)

// Player represents a player in API responses
type Player struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	ScoreTotal  int       `json:"score_total"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		ScoreTotal:  p.ScoreTotal,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PlayersResponse is the public leaderboard payload
type PlayersResponse struct {
	Players []Player `json:"players"`
}

// PlayersFromModel converts a slice of model players
func PlayersFromModel(players []*model.Player) PlayersResponse {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return PlayersResponse{Players: out}
}

// AppState is the lock state payload
type AppState struct {
	IsLocked bool       `json:"is_locked"`
	LockedAt *time.Time `json:"locked_at"`
	LockedBy *string    `json:"locked_by"`
}

// AppStateFromModel converts model.AppState
func AppStateFromModel(s *model.AppState) AppState {
	state := AppState{
		IsLocked: s.IsLocked,
		LockedAt: s.LockedAt,
	}
	if s.LockedBy != nil {
		by := string(*s.LockedBy)
		state.LockedBy = &by
	}
	return state
}

// LoginResponse is returned on a successful passcode login
type LoginResponse struct {
	Role string `json:"role"`
}

// ScoreResponse is returned after a successful score delta
type ScoreResponse struct {
	OK     bool   `json:"ok"`
	Player Player `json:"player"`
}
