// Package metrics registers the Prometheus instruments for the ledger and
// its collaborators. Exposed on /metrics by the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LedgerApplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dompet_ledger_applies_total",
		Help: "Transactions applied to the ledger, by kind.",
	}, []string{"kind"})

	LedgerEdits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dompet_ledger_edits_total",
		Help: "Transactions edited through reverse-then-reapply.",
	})

	LedgerDeletes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dompet_ledger_deletes_total",
		Help: "Transactions deleted from the ledger.",
	})

	LedgerRollbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dompet_ledger_rollbacks_total",
		Help: "Batch applies rolled back after a mid-batch validation failure.",
	})

	ValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dompet_ledger_validation_failures_total",
		Help: "Ledger operations rejected before any mutation.",
	})

	InvariantViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dompet_ledger_invariant_violations_total",
		Help: "Post-condition balance checks that failed. Always a bug.",
	})

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dompet_http_rate_limited_total",
		Help: "API requests rejected by the per-owner rate limiter.",
	})

	SnapshotFlushSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dompet_snapshot_flush_seconds",
		Help:    "Time spent flushing owner snapshots to the persistence backend.",
		Buckets: prometheus.DefBuckets,
	})

	SmartParseSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dompet_smart_parse_seconds",
		Help:    "Latency of smart-entry parse calls.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})
)
