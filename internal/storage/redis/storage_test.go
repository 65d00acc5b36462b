package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/jcruden/live-leaderboard/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		ScoreTotal:  5,
		UpdatedAt:   time.Now().UTC(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal("Alice", retrieved.DisplayName)
	s.Equal(5, retrieved.ScoreTotal)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSavePlayerUpdatesIndex() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "p1"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "p2"})
	// Re-saving must not duplicate the index entry
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "p1"})

	players, err := s.storage.ListPlayers(s.ctx, 50)
	s.Require().NoError(err)
	s.Len(players, 2)
}

func (s *StorageSuite) TestListPlayersOrdering() {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "low", ScoreTotal: 5, UpdatedAt: base})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "tie-old", ScoreTotal: 20, UpdatedAt: base.Add(time.Minute)})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "tie-recent", ScoreTotal: 20, UpdatedAt: base.Add(2 * time.Minute)})

	players, err := s.storage.ListPlayers(s.ctx, 50)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("tie-recent"), players[0].ID)
	s.Equal(model.PlayerID("tie-old"), players[1].ID)
	s.Equal(model.PlayerID("low"), players[2].ID)
}

func (s *StorageSuite) TestListPlayersEmpty() {
	players, err := s.storage.ListPlayers(s.ctx, 50)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestListPlayersLimit() {
	for _, id := range []model.PlayerID{"a", "b", "c"} {
		_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: id})
	}

	players, err := s.storage.ListPlayers(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(players, 2)
}

// App state tests

func (s *StorageSuite) TestAppStateDefaultsUnlocked() {
	state, err := s.storage.GetAppState(s.ctx)
	s.Require().NoError(err)
	s.False(state.IsLocked)
	s.Nil(state.LockedAt)
	s.Nil(state.LockedBy)
}

func (s *StorageSuite) TestSaveAndGetAppState() {
	now := time.Now().UTC().Truncate(time.Second)
	by := model.RoleDictator

	err := s.storage.SaveAppState(s.ctx, &model.AppState{IsLocked: true, LockedAt: &now, LockedBy: &by})
	s.Require().NoError(err)

	state, err := s.storage.GetAppState(s.ctx)
	s.Require().NoError(err)
	s.True(state.IsLocked)
	s.Require().NotNil(state.LockedAt)
	s.True(state.LockedAt.Equal(now))
	s.Equal(model.RoleDictator, *state.LockedBy)
}

// Score event tests

func (s *StorageSuite) TestScoreEventsPreserveOrder() {
	events := []*model.ScoreEvent{
		{PlayerID: "p", Delta: -1, Result: model.ResultApplied},
		{PlayerID: "p", Delta: 10, Result: model.ResultApplied},
		{PlayerID: "p", Delta: 1, Result: model.ResultBlockedLocked},
	}
	for _, e := range events {
		s.Require().NoError(s.storage.AppendScoreEvent(s.ctx, e))
	}

	got, err := s.storage.ListScoreEvents(s.ctx, "p")
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal(-1, got[0].Delta)
	s.Equal(10, got[1].Delta)
	s.Equal(model.ResultBlockedLocked, got[2].Result)
}

func (s *StorageSuite) TestScoreEventsEmptyForUnknownPlayer() {
	got, err := s.storage.ListScoreEvents(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Empty(got)
}
