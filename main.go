package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/patrickmn/go-cache"
	"github.com/username/networth/src/config"
	"github.com/username/networth/src/handlers"
	"github.com/username/networth/src/logger"
	"github.com/username/networth/src/security"
	"github.com/username/networth/src/server"
	"github.com/username/networth/src/services"
	"github.com/username/networth/src/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Net worth backend server starting...")

	if err := os.MkdirAll(config.Cfg.StoragePath, 0o755); err != nil {
		logger.L.Error("Failed to create storage directory", "path", config.Cfg.StoragePath, "error", err)
		return 1
	}

	snapshotPath := config.Cfg.SnapshotFile()
	userStore := store.New(store.WithCodec(store.CodecFor(snapshotPath)))

	if _, err := os.Stat(snapshotPath); err == nil {
		if err := userStore.LoadSnapshot(snapshotPath); err != nil {
			logger.L.Error("Failed to load snapshot, refusing to serve", "path", snapshotPath, "error", err)
			return 1
		}
	} else if errors.Is(err, fs.ErrNotExist) {
		logger.L.Info("No snapshot found, starting with an empty registry", "path", snapshotPath)
		if config.Cfg.SeedDefaultUser {
			if err := services.SeedDefaultUser(userStore); err != nil {
				logger.L.Error("Failed to seed default user", "error", err)
				return 1
			}
		}
	} else {
		logger.L.Error("Failed to inspect snapshot file", "path", snapshotPath, "error", err)
		return 1
	}

	logger.L.Info("Initializing summary cache...")
	summaryCache := cache.New(config.Cfg.SummaryCacheTTL, services.CacheCleanupInterval)
	summaryService := services.NewSummaryService(userStore, summaryCache, config.Cfg.SummaryCacheTTL)

	logger.L.Info("Configuring routes...")
	router := handlers.NewRouter(handlers.RouterOptions{
		Store:             userStore,
		Summaries:         summaryService,
		AdminAuth:         security.NewAdminAuth(config.Cfg.AdminKeyHash),
		SnapshotPath:      snapshotPath,
		AllowedOrigins:    config.Cfg.AllowedOrigins,
		RateLimitInterval: config.Cfg.RateLimitInterval,
		RateLimitBurst:    config.Cfg.RateLimitBurst,
	})

	srv := server.New(config.Cfg.Addr(), router, config.Cfg.MaxConnections)
	if err := srv.Start(); err != nil {
		logger.L.Error("Failed to start server", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	select {
	case <-ctx.Done():
		logger.L.Info("Shutdown signal received", "gracePeriod", config.Cfg.ShutdownTimeout)
	case <-srv.Done():
		logger.L.Error("Server stopped serving, shutting down", "error", srv.Err())
	}

	exitCode := 0
	if err := srv.Stop(config.Cfg.ShutdownTimeout); err != nil {
		logger.L.Error("Server did not stop cleanly", "error", err)
		exitCode = 1
	}

	if err := userStore.SaveSnapshot(snapshotPath); err != nil {
		logger.L.Error("Failed to save snapshot", "path", snapshotPath, "error", err)
		exitCode = 1
	}
	return exitCode
}
