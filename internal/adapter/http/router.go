package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cashbookhq/cashbook/internal/adapter/http/handler"
	"github.com/cashbookhq/cashbook/internal/adapter/http/middleware"
	"github.com/cashbookhq/cashbook/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	EntryHandler      *handler.EntryHandler
	SettlementHandler *handler.SettlementHandler
	SummaryHandler    *handler.SummaryHandler
	HealthHandler     *handler.HealthHandler
	Logger            zerolog.Logger
	Authorizer        usecase.Authorizer
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	authorizer := cfg.Authorizer
	if authorizer == nil {
		authorizer = usecase.AllowAllAuthorizer{}
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OwnerScope(authorizer))

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Entries
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", cfg.EntryHandler.Create)
			r.Get("/", cfg.EntryHandler.List)
			r.Get("/{id}", cfg.EntryHandler.Get)
			r.Post("/{id}/settle", cfg.SettlementHandler.Settle)
		})

		// Summary
		r.Get("/summary", cfg.SummaryHandler.Get)
	})

	return r
}
