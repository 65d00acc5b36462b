package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/jcruden/live-leaderboard/internal/dependencies/clock"
	"github.com/jcruden/live-leaderboard/internal/notify"
	"github.com/jcruden/live-leaderboard/internal/services/score"
	"github.com/jcruden/live-leaderboard/internal/services/session"
	"github.com/jcruden/live-leaderboard/internal/sse"
	"github.com/jcruden/live-leaderboard/internal/storage"
	"github.com/jcruden/live-leaderboard/internal/storage/memory"
	redisstorage "github.com/jcruden/live-leaderboard/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Broker   notify.Broker
	Scores   *score.Service
	Sessions *session.Manager
	Hub      *sse.Hub
}

// Config holds configuration for the application factory
type Config struct {
	// SessionSecret signs session tokens (required)
	SessionSecret string
	// SecureCookies marks session cookies as Secure
	SecureCookies bool
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	// When set, the change broker also uses Redis pub/sub
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage and broker based on type. Redis storage and the
	// Redis broker share the same instance so multiple server processes
	// see each other's changes.
	var store storage.Storage
	var broker notify.Broker
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
		broker = notify.NewMemoryBroker(logger)
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		redisBroker, err := notify.NewRedisBroker(cfg.RedisConfig.URL)
		if err != nil {
			return nil, err
		}
		broker = redisBroker
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()

	sessions, err := session.NewManager(cfg.SessionSecret, clk, cfg.SecureCookies)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, broker, sessions, clk, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, broker notify.Broker, sessions *session.Manager, clk clock.Clock, logger *slog.Logger) *App {
	scores := score.New(store, broker, clk, logger)
	hub := sse.NewHub(logger)

	return &App{
		Storage:  store,
		Clock:    clk,
		Broker:   broker,
		Scores:   scores,
		Sessions: sessions,
		Hub:      hub,
	}
}
