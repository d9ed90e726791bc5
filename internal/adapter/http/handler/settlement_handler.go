package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cashbookhq/cashbook/internal/adapter/http/dto"
	"github.com/cashbookhq/cashbook/internal/adapter/http/middleware"
	"github.com/cashbookhq/cashbook/internal/domain"
	"github.com/cashbookhq/cashbook/internal/infrastructure/metrics"
	"github.com/cashbookhq/cashbook/internal/usecase"
)

// SettlementHandler handles settlement HTTP requests.
type SettlementHandler struct {
	settlementUC *usecase.SettlementUseCase
	metrics      *metrics.Metrics
}

// NewSettlementHandler creates a new SettlementHandler. m may be nil.
func NewSettlementHandler(settlementUC *usecase.SettlementUseCase, m *metrics.Metrics) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC, metrics: m}
}

// Settle realizes a Credit or Advance entry into cash movement.
func (h *SettlementHandler) Settle(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.SettleEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(ownerID, entryID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid settlement", err.Error())
		return
	}

	start := time.Now()

	result, err := h.settlementUC.Settle(r.Context(), input)
	if err != nil {
		h.recordOutcome(err)

		status := mapDomainError(err)

		var persistErr *domain.SettlementPersistenceError
		if errors.As(err, &persistErr) {
			status = http.StatusInternalServerError
		}

		writeError(w, status, "failed to settle entry", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.SettlementDuration.Observe(time.Since(start).Seconds())

		outcome := metrics.SettlementOutcomeSettled
		if result.Derived == nil {
			outcome = metrics.SettlementOutcomeNoOp
		}
		h.metrics.Settlements.WithLabelValues(outcome).Inc()
	}

	resp := dto.SettleResponse{Source: dto.EntryFromDomain(result.Source)}
	if result.Derived != nil {
		derived := dto.EntryFromDomain(result.Derived)
		resp.Derived = &derived
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *SettlementHandler) recordOutcome(err error) {
	if h.metrics == nil {
		return
	}

	var persistErr *domain.SettlementPersistenceError

	switch {
	case errors.As(err, &persistErr):
		h.metrics.Settlements.WithLabelValues(metrics.SettlementOutcomeFailed).Inc()
	default:
		h.metrics.Settlements.WithLabelValues(metrics.SettlementOutcomeRejected).Inc()
	}
}
