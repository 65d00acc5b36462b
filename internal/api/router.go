package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jcruden/live-leaderboard/internal/api/handler"
	"github.com/jcruden/live-leaderboard/internal/api/middleware"
	"github.com/jcruden/live-leaderboard/internal/model"
	"github.com/jcruden/live-leaderboard/internal/services/score"
	"github.com/jcruden/live-leaderboard/internal/services/session"
	"github.com/jcruden/live-leaderboard/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	Sessions     *session.Manager
	Scores       *score.Service
	Hub          *sse.Hub
	AdminHash    string
	DictatorHash string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.Sessions, cfg.AdminHash, cfg.DictatorHash)
	scoreHandler := handler.NewScoreHandler(cfg.Scores)
	publicHandler := handler.NewPublicHandler(cfg.Scores)

	// Create middleware
	sessionMiddleware := middleware.Session(cfg.Sessions)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	requireScorer := middleware.RequireRole(model.RoleAdmin, model.RoleDictator)
	requireDictator := middleware.RequireRole(model.RoleDictator)

	// API subrouter with common middleware. Session extraction runs on
	// every route; enforcement happens per-route so the public reads and
	// protected writes can share the prefix.
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(sessionMiddleware)

	// Public routes
	api.HandleFunc("/public/players", publicHandler.ListPlayers).Methods(http.MethodGet)
	api.HandleFunc("/state", publicHandler.GetState).Methods(http.MethodGet)
	api.HandleFunc("/health", publicHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		sse.ServeSSE(w, r, cfg.Hub)
	}).Methods(http.MethodGet)

	// Auth routes
	api.HandleFunc("/admin/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/admin/logout", authHandler.Logout).Methods(http.MethodPost)

	// Scoring routes (admin or dictator)
	api.Handle("/score", requireScorer(http.HandlerFunc(scoreHandler.Apply))).Methods(http.MethodPost)
	api.Handle("/players", requireScorer(http.HandlerFunc(scoreHandler.CreatePlayer))).Methods(http.MethodPost)

	// Lock routes (dictator only)
	api.Handle("/lock", requireDictator(scoreHandler.Lock(true))).Methods(http.MethodPost)
	api.Handle("/unlock", requireDictator(scoreHandler.Lock(false))).Methods(http.MethodPost)

	return r
}
