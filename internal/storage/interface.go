package storage

import (
	"context"

	"github.com/jcruden/live-leaderboard/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	// ListPlayers returns up to limit players ordered by score descending,
	// then most recently updated first.
	ListPlayers(ctx context.Context, limit int) ([]*model.Player, error)

	// App state singleton. GetAppState returns the unlocked zero state
	// until the first SaveAppState.
	GetAppState(ctx context.Context) (*model.AppState, error)
	SaveAppState(ctx context.Context, state *model.AppState) error

	// Score event audit log: append-only, insertion order preserved
	AppendScoreEvent(ctx context.Context, event *model.ScoreEvent) error
	ListScoreEvents(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreEvent, error)
}
