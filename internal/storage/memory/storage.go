package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jcruden/live-leaderboard/internal/model"
	"github.com/jcruden/live-leaderboard/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	state   model.AppState
	events  map[model.PlayerID][]*model.ScoreEvent
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
		events:  make(map[model.PlayerID][]*model.ScoreEvent),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *player
	s.players[player.ID] = &copied
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (s *Storage) ListPlayers(ctx context.Context, limit int) ([]*model.Player, error) {
	s.mu.RLock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		copied := *p
		players = append(players, &copied)
	}
	s.mu.RUnlock()

	sort.Slice(players, func(i, j int) bool {
		if players[i].ScoreTotal != players[j].ScoreTotal {
			return players[i].ScoreTotal > players[j].ScoreTotal
		}
		return players[i].UpdatedAt.After(players[j].UpdatedAt)
	})

	if limit > 0 && len(players) > limit {
		players = players[:limit]
	}
	return players, nil
}

// App state operations

func (s *Storage) GetAppState(ctx context.Context) (*model.AppState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copied := s.state
	return &copied, nil
}

func (s *Storage) SaveAppState(ctx context.Context, state *model.AppState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = *state
	return nil
}

// Score event operations

func (s *Storage) AppendScoreEvent(ctx context.Context, event *model.ScoreEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *event
	s.events[event.PlayerID] = append(s.events[event.PlayerID], &copied)
	return nil
}

func (s *Storage) ListScoreEvents(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]*model.ScoreEvent, 0, len(s.events[playerID]))
	for _, e := range s.events[playerID] {
		copied := *e
		events = append(events, &copied)
	}
	return events, nil
}
