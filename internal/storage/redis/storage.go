package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jcruden/live-leaderboard/internal/model"
	"github.com/jcruden/live-leaderboard/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Pipeline the save with the index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, playersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context, limit int) ([]*model.Player, error) {
	playerKeys, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(playerKeys) == 0 {
		return []*model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, playerKeys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Player key gone but still indexed
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	// Ordering includes an updated_at tie-break, so sort here rather than
	// relying on a score-only ZSET.
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
	data, err := s.client.Get(ctx, appStateKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Never saved: the lock starts disengaged
			return &model.AppState{}, nil
		}
		return nil, err
	}

	var state model.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Storage) SaveAppState(ctx context.Context, state *model.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, appStateKey(), data, 0).Err()
}

// Score event operations

func (s *Storage) AppendScoreEvent(ctx context.Context, event *model.ScoreEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, scoreEventsKey(event.PlayerID), data).Err()
}

func (s *Storage) ListScoreEvents(ctx context.Context, playerID model.PlayerID) ([]*model.ScoreEvent, error) {
	values, err := s.client.LRange(ctx, scoreEventsKey(playerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]*model.ScoreEvent, 0, len(values))
	for _, val := range values {
		var event model.ScoreEvent
		if err := json.Unmarshal([]byte(val), &event); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	return events, nil
}
