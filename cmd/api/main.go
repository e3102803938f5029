package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/blindattack4/backend/internal/config"
	"github.com/blindattack4/backend/internal/domain"
	"github.com/blindattack4/backend/internal/logger"
	"github.com/blindattack4/backend/internal/repository/memory"
	"github.com/blindattack4/backend/internal/repository/redis"
	"github.com/blindattack4/backend/internal/service/cleanup"
	"github.com/blindattack4/backend/internal/service/game"
	"github.com/blindattack4/backend/internal/telemetry"
	transportHttp "github.com/blindattack4/backend/internal/transport/http"
	"github.com/blindattack4/backend/internal/transport/websocket"
)

func main() {
	config.LoadEnvFiles()
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Telemetry first so the logger bridge has a provider to export to
	shutdownTelemetry, err := telemetry.Init(ctx, cfg.OTLPEndpoint, domain.Version)
	if err != nil {
		slog.Error("Failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	// 2. Replay store: Redis when configured, process memory otherwise
	var replays game.ReplayStore
	var expiring cleanup.ExpiringStore
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Warn("[REDIS] Could not connect, falling back to in-memory replays", "error", err)
		} else {
			defer client.Close()
			replays = redis.NewReplayStore(client, cfg.ReplayTTL)
		}
	}
	if replays == nil {
		store := memory.NewReplayStore(cfg.ReplayTTL)
		replays, expiring = store, store
	}

	// 3. Services
	sessionManager := game.NewSessionManager(replays, game.Options{
		Blind:       cfg.BlindMode,
		Seed:        cfg.AISeed,
		SaveTimeout: cfg.ReplaySaveTimeout,
	})
	gameService := game.NewService(sessionManager, replays)

	cleanupWorker := cleanup.NewWorker(sessionManager, expiring, cfg.SessionIdle, cfg.CleanupInterval)
	cleanupWorker.Start(ctx)

	// 4. Transport
	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.AllowedOrigins)
	gameHandler := transportHttp.NewGameHandler(gameService, cfg.DefaultDifficulty, cfg.GameTokenTTL,
		strings.HasPrefix(cfg.FrontendURL, "https://"))
	gameHandler.Notifier = wsHandler

	gin.SetMode(gin.ReleaseMode)
	router := transportHttp.NewRouter(gameHandler, wsHandler.HandleWebSocket, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "version", domain.Version, "blind", cfg.BlindMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	connManager.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	// Export whatever is still in memory before the process exits
	sessionManager.Close()

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry shutdown failed", "error", err)
	}

	slog.Info("Server exited gracefully")
}
