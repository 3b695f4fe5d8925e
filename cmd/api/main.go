package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/amm-pool-ledger/internal/amm"
	"github.com/aman-zulfiqar/amm-pool-ledger/internal/assets"
	"github.com/aman-zulfiqar/amm-pool-ledger/internal/cache"
	"github.com/aman-zulfiqar/amm-pool-ledger/internal/config"
	"github.com/aman-zulfiqar/amm-pool-ledger/internal/server"
	"github.com/aman-zulfiqar/amm-pool-ledger/internal/storage"
)

// env bootstrap function
func loadEnv(logger *logrus.Logger) {
	// Get the project root directory (where go.mod is)
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	envPath := filepath.Join(projectRoot, ".env")

	if err := godotenv.Load(envPath); err != nil {
		logger.Warnf("no .env file found at %s, using system environment variables", envPath)
	} else {
		logger.Infof("loaded .env from %s", envPath)
	}
}

// main is the entry point for the pool ledger API server
// It initializes all dependencies and starts the HTTP server with graceful shutdown
func main() {
	// Initialize structured logger with custom formatting
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	// load .env BEFORE anything reads os.Getenv
	loadEnv(logger)

	// Load and validate configuration from environment variables
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	ctx := context.Background()

	// Register the configured in-memory asset ledgers
	registry := assets.NewRegistry()
	for _, id := range cfg.Assets {
		registry.Register(assets.NewToken(id, cfg.CustodyAccount))
		logger.WithField("asset", id).Info("registered asset ledger")
	}
	if len(cfg.Assets) == 0 {
		logger.Warn("no assets configured; set ASSETS to register ledgers")
	}

	// Wire the event sinks: log always, Redis and ClickHouse when configured
	sinks := storage.Fanout{&storage.LogSink{Logger: logger}}

	var eventCache storage.EventCache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to redis")
		}
		defer rc.Close()
		eventCache = rc
		sinks = append(sinks, &storage.CacheSink{Cache: rc})
		logger.WithField("addr", cfg.RedisAddr).Info("connected to redis")
	}

	if cfg.ArchiveEnabled {
		store, err := cache.NewClickHouseStore(ctx, cache.ClickHouseConfig{
			Addr:     cfg.ClickHouseAddr,
			Database: cfg.ClickHouseDatabase,
			Username: cfg.ClickHouseUsername,
			Password: cfg.ClickHousePassword,
		})
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to clickhouse")
		}
		defer store.Close()
		sinks = append(sinks, &storage.StoreSink{Store: store})
		logger.WithField("addr", cfg.ClickHouseAddr).Info("connected to clickhouse")
	}

	// Create the pool ledger
	ledger, err := amm.NewLedger(amm.LedgerDeps{
		Assets:  registry,
		Custody: cfg.CustodyAccount,
		Sink:    sinks,
		Logger:  logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create ledger")
	}

	// Create and start the HTTP server
	srv, err := server.NewServer(server.ServerDeps{
		Handlers: &server.Handlers{
			Ledger:   ledger,
			Registry: registry,
			Cache:    eventCache,
			Custody:  cfg.CustodyAccount,
			DevMode:  cfg.DevMode,
			Logger:   logger,
		},
		Config: server.ServerConfig{
			Addr:    cfg.APIAddr,
			DevMode: cfg.DevMode,
			APIKey:  cfg.APIKey,
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create server")
	}

	go func() {
		logger.WithField("addr", cfg.APIAddr).Info("pool ledger API listening")
		if err := srv.Start(); err != nil {
			logger.WithError(err).Info("server stopped")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	if err := srv.WaitClosed(shutdownCtx); err != nil {
		logger.WithError(err).Error("server close wait failed")
	}
	logger.Info("stopped")
}
