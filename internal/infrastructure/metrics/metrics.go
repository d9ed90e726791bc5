package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntriesCreated *prometheus.CounterVec
	EntryAmount    prometheus.Histogram

	// Settlement metrics
	Settlements        *prometheus.CounterVec
	SettlementDuration prometheus.Histogram

	// Summary metrics
	SummaryRequests  prometheus.Counter
	SummaryCacheHits *prometheus.CounterVec
	SummaryDuration  prometheus.Histogram

	// Database metrics
	DBErrors *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EntriesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_entries_created_total",
				Help: "Total number of entries created by type",
			},
			[]string{"entry_type"},
		),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashbook_entry_amount",
			Help:    "Entry amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		Settlements: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_settlements_total",
				Help: "Total number of settlement attempts by outcome",
			},
			[]string{"outcome"},
		),
		SettlementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashbook_settlement_duration_seconds",
			Help:    "Duration of settlement operations",
			Buckets: prometheus.DefBuckets,
		}),

		SummaryRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashbook_summary_requests_total",
			Help: "Total number of summary requests",
		}),
		SummaryCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_summary_cache_total",
				Help: "Summary cache lookups by result",
			},
			[]string{"result"},
		),
		SummaryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashbook_summary_duration_seconds",
			Help:    "Duration of summary computation",
			Buckets: prometheus.DefBuckets,
		}),

		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashbook_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
	}
}

// Settlement outcome label values.
const (
	SettlementOutcomeSettled  = "settled"
	SettlementOutcomeNoOp     = "no_cash_effect"
	SettlementOutcomeRejected = "rejected"
	SettlementOutcomeFailed   = "failed"
)
