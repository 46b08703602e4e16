package blocktasks

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/betting"
	"github.com/openwager/betchain/internal/store"
)

// BetsAutoResolving cancels whole games, and all bets against them,
// when their auto-resolve deadline elapses without posted results.
// Finished games cleared the deadline, so only games stuck in created
// or started are affected; the task protects participants' stakes when
// a moderator never posts results.
type BetsAutoResolving struct {
	store   *store.Store
	betting *betting.Service
	logger  *zap.Logger
}

// NewBetsAutoResolving creates the auto-resolve task.
func NewBetsAutoResolving(st *store.Store, bs *betting.Service, logger *zap.Logger) *BetsAutoResolving {
	return &BetsAutoResolving{store: st, betting: bs, logger: logger}
}

// OnApply runs the task for the current block. A failure on one game
// skips that game only; it is not retried within the block.
func (t *BetsAutoResolving) OnApply() {
	timer := prometheus.NewTimer(AutoResolveDurationSeconds)
	defer timer.ObserveDuration()

	now := t.store.HeadBlockTime()

	for _, g := range t.store.Games.GamesToAutoResolve(now) {
		if err := t.betting.CancelBets(g, betting.ReasonAutoResolve); err != nil {
			t.logger.Warn("auto-resolve-bets-cancel-failed",
				zap.String("game-uuid", g.UUID.String()),
				zap.Error(err))
			continue
		}
		if err := t.betting.CancelGame(g, betting.ReasonAutoResolve); err != nil {
			t.logger.Warn("auto-resolve-game-cancel-failed",
				zap.String("game-uuid", g.UUID.String()),
				zap.Error(err))
			continue
		}

		GamesAutoResolvedTotal.Inc()
		t.logger.Info("game-auto-resolved",
			zap.String("game-uuid", g.UUID.String()),
			zap.Time("deadline", g.AutoResolveTime))
	}
}
