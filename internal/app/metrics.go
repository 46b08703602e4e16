package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BlocksProcessedTotal counts completed pipeline blocks.
	BlocksProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_blocks_processed_total",
		Help: "Total number of blocks processed by the pipeline",
	})

	// OpsAppliedTotal counts operations applied successfully.
	OpsAppliedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_ops_applied_total",
		Help: "Total number of operations applied",
	})

	// OpsRejectedTotal counts operations rejected by an evaluator.
	OpsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_ops_rejected_total",
		Help: "Total number of operations rejected",
	})

	// BlockDurationSeconds tracks one full block application.
	BlockDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "betchain_block_duration_seconds",
		Help:    "Duration of a single block application",
		Buckets: prometheus.DefBuckets,
	})
)
