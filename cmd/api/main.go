package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledger-service/config"
	httpHandler "ledger-service/internal/adapter/http/handler"
	pgStorage "ledger-service/internal/adapter/storage/postgres"
	redisStorage "ledger-service/internal/adapter/storage/redis"
	"ledger-service/internal/core/ports"
	"ledger-service/internal/keylock"
	"ledger-service/internal/service"
	"ledger-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Ledger Service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	healthCheckers := []ports.HealthChecker{pgStorage.NewHealthCheck(pool)}

	// Initialize Redis client. The service still runs without it: rate
	// limiting is simply disabled.
	var rateLimitStore *redisStorage.RateLimitStore
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")
	}

	// Initialize repository and core services
	accountRepo := pgStorage.NewAccountRepo(pool)
	locks := keylock.NewRegistry()
	ledgerSvc := service.NewLedgerService(accountRepo, locks, log)

	// Start background settlement
	settlement := service.NewSettlementScheduler(accountRepo, cfg.Settlement.Interval, log)
	settlement.Start()
	defer settlement.Stop()

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
