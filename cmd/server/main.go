package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	httpAdapter "github.com/cashbookhq/cashbook/internal/adapter/http"
	"github.com/cashbookhq/cashbook/internal/adapter/http/handler"
	postgresRepo "github.com/cashbookhq/cashbook/internal/adapter/repository/postgres"
	redisRepo "github.com/cashbookhq/cashbook/internal/adapter/repository/redis"
	"github.com/cashbookhq/cashbook/internal/infrastructure/config"
	"github.com/cashbookhq/cashbook/internal/infrastructure/logger"
	"github.com/cashbookhq/cashbook/internal/infrastructure/metrics"
	"github.com/cashbookhq/cashbook/internal/infrastructure/postgres"
	"github.com/cashbookhq/cashbook/internal/infrastructure/redis"
	"github.com/cashbookhq/cashbook/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		URL:         cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
		PingTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis; the service degrades to uncached summaries and
	// non-idempotent requests when no Redis is configured.
	var (
		redisClient      *goredis.Client
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
	)

	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		cache = redisRepo.NewCache(redisClient)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	clock := usecase.SystemClock{}

	// Initialize use cases
	entryUC := usecase.NewEntryUseCase(entryRepo, idGen, clock, cache)
	settlementUC := usecase.NewSettlementUseCase(txManager, entryRepo, idGen, clock, cache)
	summaryUC := usecase.NewSummaryUseCase(entryRepo, cache, clock, log).
		WithCacheTTL(cfg.SummaryCacheTTL)

	// Initialize handlers
	m := metrics.New()
	entryHandler := handler.NewEntryHandler(entryUC, m)
	settlementHandler := handler.NewSettlementHandler(settlementUC, m)
	summaryHandler := handler.NewSummaryHandler(summaryUC, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:      entryHandler,
		SettlementHandler: settlementHandler,
		SummaryHandler:    summaryHandler,
		HealthHandler:     healthHandler,
		Logger:            log,
		Authorizer:        usecase.AllowAllAuthorizer{},
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
