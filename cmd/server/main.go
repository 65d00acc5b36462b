package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jcruden/live-leaderboard/internal/api"
	"github.com/jcruden/live-leaderboard/internal/config"
	"github.com/jcruden/live-leaderboard/internal/factory"
	"github.com/jcruden/live-leaderboard/internal/sse"
	redisstorage "github.com/jcruden/live-leaderboard/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.AdminPasscodeHash == "" || cfg.DictatorPasscodeHash == "" {
		logger.Warn("passcode hashes not configured; admin login is disabled")
	}

	// Build factory config
	factoryCfg := factory.Config{
		SessionSecret: cfg.SessionSecret,
		SecureCookies: cfg.SecureCookies,
		Logger:        logger,
		StorageType:   cfg.StorageType,
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Run the SSE hub and bridge change notifications into it
	go app.Hub.Run()
	defer app.Hub.Close()

	if err := sse.Relay(ctx, app.Broker, app.Hub, logger); err != nil {
		logger.Error("failed to start change relay", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		Sessions:     app.Sessions,
		Scores:       app.Scores,
		Hub:          app.Hub,
		AdminHash:    cfg.AdminPasscodeHash,
		DictatorHash: cfg.DictatorPasscodeHash,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		// Disconnect SSE clients first: their open streams would
		// otherwise hold Shutdown until its timeout expires.
		app.Hub.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
