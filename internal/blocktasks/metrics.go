package blocktasks

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GamesStartedTotal counts created -> started transitions.
	GamesStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_games_started_total",
		Help: "Total number of games transitioned to started",
	})

	// GamesAutoResolvedTotal counts games cancelled at their deadline.
	GamesAutoResolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_games_auto_resolved_total",
		Help: "Total number of games auto-resolved past their deadline",
	})

	// GamesResolvedTotal counts games settled past their resolve window.
	GamesResolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_games_resolved_total",
		Help: "Total number of games settled and retired",
	})

	// StartupDurationSeconds tracks one startup task pass.
	StartupDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "betchain_startup_task_duration_seconds",
		Help:    "Duration of the per-block games startup task",
		Buckets: prometheus.DefBuckets,
	})

	// AutoResolveDurationSeconds tracks one auto-resolve task pass.
	AutoResolveDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "betchain_auto_resolve_task_duration_seconds",
		Help:    "Duration of the per-block bets auto-resolve task",
		Buckets: prometheus.DefBuckets,
	})

	// ResolveDurationSeconds tracks one settlement task pass.
	ResolveDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "betchain_resolve_task_duration_seconds",
		Help:    "Duration of the per-block bets settlement task",
		Buckets: prometheus.DefBuckets,
	})
)
