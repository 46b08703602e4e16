package betting

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BetsPlacedTotal counts pending bets accepted into the book.
	BetsPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_bets_placed_total",
		Help: "Total number of pending bets created",
	})

	// MatchedBetsTotal counts matched-bet records created.
	MatchedBetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_matched_bets_total",
		Help: "Total number of matched bets created",
	})

	// MatchedStakeVolume accumulates both sides' matched stake.
	MatchedStakeVolume = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_matched_stake_volume",
		Help: "Total matched stake across both sides, in base units",
	})

	// BetsCancelledTotal counts cancelled bets by reason.
	BetsCancelledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betchain_bets_cancelled_total",
			Help: "Total number of bets cancelled",
		},
		[]string{"reason"},
	)

	// RefundVolume accumulates stake returned to betters.
	RefundVolume = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_refund_volume",
		Help: "Total stake refunded to betters, in base units",
	})

	// BetsResolvedTotal counts matched bets settled with a winner.
	BetsResolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_bets_resolved_total",
		Help: "Total number of matched bets settled with a winning side",
	})

	// PayoutVolume accumulates stake paid out to winners.
	PayoutVolume = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_payout_volume",
		Help: "Total payout credited to winning betters, in base units",
	})

	// MatchDurationSeconds tracks one matcher invocation.
	MatchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "betchain_match_duration_seconds",
		Help:    "Duration of a single matching pass",
		Buckets: prometheus.DefBuckets,
	})
)
