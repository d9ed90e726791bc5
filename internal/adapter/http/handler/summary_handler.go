package handler

import (
	"net/http"
	"time"

	"github.com/cashbookhq/cashbook/internal/adapter/http/dto"
	"github.com/cashbookhq/cashbook/internal/adapter/http/middleware"
	"github.com/cashbookhq/cashbook/internal/infrastructure/metrics"
	"github.com/cashbookhq/cashbook/internal/usecase"
)

// SummaryHandler handles summary HTTP requests.
type SummaryHandler struct {
	summaryUC *usecase.SummaryUseCase
	metrics   *metrics.Metrics
}

// NewSummaryHandler creates a new SummaryHandler. m may be nil.
func NewSummaryHandler(summaryUC *usecase.SummaryUseCase, m *metrics.Metrics) *SummaryHandler {
	return &SummaryHandler{summaryUC: summaryUC, metrics: m}
}

// Get computes the owner's summary for the requested period.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	period, customStart, customEnd, err := periodQuery(r).Resolve()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	start := time.Now()

	summary, err := h.summaryUC.Summary(r.Context(), usecase.SummaryInput{
		OwnerID:     ownerID,
		Period:      period,
		CustomStart: customStart,
		CustomEnd:   customEnd,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute summary", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.SummaryRequests.Inc()
		h.metrics.SummaryDuration.Observe(time.Since(start).Seconds())
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}
