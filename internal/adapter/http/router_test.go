package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cashbookhq/cashbook/internal/adapter/http/handler"
	apimiddleware "github.com/cashbookhq/cashbook/internal/adapter/http/middleware"
	"github.com/cashbookhq/cashbook/internal/usecase"
	"github.com/cashbookhq/cashbook/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_APIRequiresOwnerHeader(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries/", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected request without %s to return 400, got %d", apimiddleware.OwnerIDHeader, rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/entries/", nil)
	req.Header.Set(apimiddleware.OwnerIDHeader, "owner-1")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected scoped request to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &routerStubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"entry_type":"Cash Inflow","category":"Sales","payment_method":"Cash","amount":"100","entry_date":"2025-06-10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.OwnerIDHeader, "owner-1")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/entries/",
		"GET /api/v1/entries/",
		"GET /api/v1/entries/{id}",
		"POST /api/v1/entries/{id}/settle",
		"GET /api/v1/summary",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	repo := mocks.NewFakeEntryRepository()
	txManager := mocks.NewFakeTransactionManager()
	idGen := mocks.NewFakeIDGenerator()
	clock := mocks.NewFakeClock(time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC))
	cache := mocks.NewFakeCache()

	entryUC := usecase.NewEntryUseCase(repo, idGen, clock, cache)
	settlementUC := usecase.NewSettlementUseCase(txManager, repo, idGen, clock, cache)
	summaryUC := usecase.NewSummaryUseCase(repo, cache, clock, zerolog.Nop())

	cfg := RouterConfig{
		EntryHandler:      handler.NewEntryHandler(entryUC, nil),
		SettlementHandler: handler.NewSettlementHandler(settlementUC, nil),
		SummaryHandler:    handler.NewSummaryHandler(summaryUC, nil),
		HealthHandler:     &handler.HealthHandler{},
		Logger:            zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type routerStubIdempotencyStore struct {
	checkCalled bool
}

func (s *routerStubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *routerStubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
