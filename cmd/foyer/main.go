package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"foyer/internal/amqp"
	"foyer/internal/auth"
	"foyer/internal/config"
	apphttp "foyer/internal/http"
	"foyer/internal/kv"
	"foyer/internal/ledger"
	applog "foyer/internal/log"
	"foyer/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Key-value backend for the roster and the session identity.
	var kvStore kv.Store
	switch cfg.DataBackend {
	case "sqlite":
		store, err := kv.NewSQLiteStore(cfg.KVDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.KVDBPath)
			os.Exit(1)
		}
		kvStore = store
		logger.Info("Initialized SQLite backend", "path", cfg.KVDBPath)
	default:
		kvStore = kv.NewMemoryStore()
		logger.Info("Initialized memory backend")
	}
	defer kvStore.Close()

	var matcher auth.Matcher = auth.PlainMatcher{}
	if cfg.PasswordScheme == "bcrypt" {
		matcher = auth.BcryptMatcher{}
	}

	authStore, err := auth.NewStore(context.Background(), kvStore, matcher, cfg.AuthDelay)
	if err != nil {
		logger.Error("Failed to initialize credential store", "error", err)
		os.Exit(1)
	}

	// Ledger starts from seed files, falling back to the built-in dataset.
	led := ledger.NewFromFiles(cfg.SeedDir)

	// AMQP is optional: without it the ledger works and only the export
	// stream is missing.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		publisher = amqpClient
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	ledgerSvc := services.NewLedgerService(led, publisher)
	defer ledgerSvc.Close()

	srv := apphttp.NewServer(":"+cfg.Port, ledgerSvc, authStore)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting foyer server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
