package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/avaskin/glitchbet/internal/api"
	"github.com/avaskin/glitchbet/internal/factory"
	"github.com/avaskin/glitchbet/internal/services/session"
	redisstorage "github.com/avaskin/glitchbet/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:        logger,
		StorageType:   os.Getenv("STORAGE_TYPE"),
		Digest:        os.Getenv("FAIRNESS_DIGEST"),
		SessionConfig: sessionConfigFromEnv(logger),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		PlayerService:  app.PlayerService,
		LedgerService:  app.LedgerService,
		SessionManager: app.SessionManager,
		CoinflipEngine: app.CoinflipEngine,
		MinesEngine:    app.MinesEngine,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

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

	// Sweep idle sessions in the background
	go app.SessionManager.Run(ctx)

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
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// sessionConfigFromEnv reads sweep settings, falling back to the defaults
func sessionConfigFromEnv(logger *slog.Logger) session.Config {
	cfg := session.DefaultConfig()
	if raw := os.Getenv("SESSION_IDLE_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			logger.Warn("invalid SESSION_IDLE_TIMEOUT, using default", slog.String("value", raw))
		} else {
			cfg.IdleTimeout = d
		}
	}
	if raw := os.Getenv("SESSION_SWEEP_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			logger.Warn("invalid SESSION_SWEEP_INTERVAL, using default", slog.String("value", raw))
		} else {
			cfg.SweepInterval = d
		}
	}
	return cfg
}
