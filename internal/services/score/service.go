// Package score holds the scorekeeping rules: delta application under the
// global lock, the audit trail, and leaderboard reads.
package score

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jcruden/live-leaderboard/internal/dependencies/clock"
	"github.com/jcruden/live-leaderboard/internal/model"
	"github.com/jcruden/live-leaderboard/internal/notify"
	"github.com/jcruden/live-leaderboard/internal/storage"
)

// MaxLeaderboardSize caps how many players a listing returns
const MaxLeaderboardSize = 50

// Service implements score mutations and leaderboard reads
type Service struct {
	storage  storage.Storage
	notifier notify.Publisher
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new score service
func New(store storage.Storage, notifier notify.Publisher, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:  store,
		notifier: notifier,
		clock:    clk,
		logger:   logger.With(slog.String("component", "score")),
	}
}

// ValidDelta reports whether a delta is one of the allowed increments
func ValidDelta(delta int) bool {
	return delta == -1 || delta == 1 || delta == 10
}

// ApplyDelta adds a delta to a player's score, subject to the global lock.
// Every attempt is recorded as a ScoreEvent whatever the outcome. The
// read-then-write of the score is not isolated from concurrent deltas to the
// same player: last write wins, and the audit log stays the ground truth.
func (s *Service) ApplyDelta(ctx context.Context, playerID model.PlayerID, delta int) (*model.Player, error) {
	if !ValidDelta(delta) {
		return nil, model.ErrInvalidDelta
	}

	state, err := s.storage.GetAppState(ctx)
	if err != nil {
		return nil, err
	}
	if state.IsLocked {
		s.recordEvent(ctx, playerID, delta, model.ResultBlockedLocked)
		return nil, model.ErrScoringLocked
	}

	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			s.recordEvent(ctx, playerID, delta, model.ResultInvalid)
		}
		return nil, err
	}

	player.ScoreTotal += delta
	player.UpdatedAt = s.clock.Now()
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.recordEvent(ctx, playerID, delta, model.ResultApplied)
	s.publish(ctx, notify.TopicPlayers)
	return player, nil
}

// SetLock unconditionally overwrites the AppState singleton. Role
// enforcement is the caller's job.
func (s *Service) SetLock(ctx context.Context, locked bool, by model.Role) (*model.AppState, error) {
	state := &model.AppState{IsLocked: locked}
	if locked {
		now := s.clock.Now()
		state.LockedAt = &now
		state.LockedBy = &by
	}

	if err := s.storage.SaveAppState(ctx, state); err != nil {
		return nil, err
	}

	s.publish(ctx, notify.TopicState)
	return state, nil
}

// GetState returns the current lock state
func (s *Service) GetState(ctx context.Context) (*model.AppState, error) {
	return s.storage.GetAppState(ctx)
}

// ListPlayers returns the leaderboard: score descending, then most recently
// updated first, capped at MaxLeaderboardSize.
func (s *Service) ListPlayers(ctx context.Context, limit int) ([]*model.Player, error) {
	if limit <= 0 || limit > MaxLeaderboardSize {
		limit = MaxLeaderboardSize
	}
	return s.storage.ListPlayers(ctx, limit)
}

// CreatePlayer adds a player to the roster with a zero score
func (s *Service) CreatePlayer(ctx context.Context, displayName string) (*model.Player, error) {
	player := &model.Player{
		ID:          model.PlayerID(uuid.NewString()),
		DisplayName: displayName,
		UpdatedAt:   s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.publish(ctx, notify.TopicPlayers)
	return player, nil
}

// ListEvents returns a player's audit trail in insertion order
func (s *Service) ListEvents(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreEvent, error) {
	return s.storage.ListScoreEvents(ctx, playerID)
}

// recordEvent appends an audit row. A failed append is logged, not
// propagated: it must not mask the outcome of the attempt itself.
func (s *Service) recordEvent(ctx context.Context, playerID model.PlayerID, delta int, result model.EventResult) {
	event := &model.ScoreEvent{
		PlayerID:   playerID,
		Delta:      delta,
		Result:     result,
		RecordedAt: s.clock.Now(),
	}
	if err := s.storage.AppendScoreEvent(ctx, event); err != nil {
		s.logger.Error("failed to record score event",
			slog.String("player_id", string(playerID)),
			slog.String("result", string(result)),
			slog.String("error", err.Error()))
	}
}

func (s *Service) publish(ctx context.Context, topic string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, topic); err != nil {
		s.logger.Warn("failed to publish change notification",
			slog.String("topic", topic),
			slog.String("error", err.Error()))
	}
}
