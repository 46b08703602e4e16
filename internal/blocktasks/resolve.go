package blocktasks

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/betting"
	"github.com/openwager/betchain/internal/store"
)

// BetsResolving settles finished games once their resolve window has
// closed. Results cannot be revised past the deadline, so settlement
// pays each matched bet's winning side its recorded payout, refunds
// anything undecided, and retires the game.
type BetsResolving struct {
	store   *store.Store
	betting *betting.Service
	logger  *zap.Logger
}

// NewBetsResolving creates the settlement task.
func NewBetsResolving(st *store.Store, bs *betting.Service, logger *zap.Logger) *BetsResolving {
	return &BetsResolving{store: st, betting: bs, logger: logger}
}

// OnApply runs the task for the current block. A failure on one game
// skips that game only; it is retried on subsequent blocks since the
// game stays in the store until resolution succeeds.
func (t *BetsResolving) OnApply() {
	timer := prometheus.NewTimer(ResolveDurationSeconds)
	defer timer.ObserveDuration()

	now := t.store.HeadBlockTime()

	for _, g := range t.store.Games.GamesToResolve(now) {
		if err := t.betting.ResolveGame(g); err != nil {
			t.logger.Warn("game-resolve-failed",
				zap.String("game-uuid", g.UUID.String()),
				zap.Error(err))
			continue
		}

		GamesResolvedTotal.Inc()
	}
}
