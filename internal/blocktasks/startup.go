// Package blocktasks holds the deterministic per-block triggers that
// advance game state: the startup task and the auto-resolve task. Both
// are pure functions of the head block time and the current game set,
// safe to run on every block, and walk eligible games in a stable
// ascending order.
package blocktasks

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/betting"
	"github.com/openwager/betchain/internal/game"
	"github.com/openwager/betchain/internal/store"
)

// GamesStartup transitions games from created to started once their
// start time is reached, voiding the non-live pending bets registered
// against them. This is the sole path by which a game leaves `created`.
type GamesStartup struct {
	store   *store.Store
	games   *game.Service
	betting *betting.Service
	logger  *zap.Logger
}

// NewGamesStartup creates the startup task.
func NewGamesStartup(st *store.Store, gs *game.Service, bs *betting.Service, logger *zap.Logger) *GamesStartup {
	return &GamesStartup{store: st, games: gs, betting: bs, logger: logger}
}

// OnApply runs the task for the current block. A failure on one game
// skips that game only; it is not retried within the block.
func (t *GamesStartup) OnApply() {
	timer := prometheus.NewTimer(StartupDurationSeconds)
	defer timer.ObserveDuration()

	now := t.store.HeadBlockTime()

	for _, g := range t.store.Games.GamesToStart(now) {
		t.games.Start(g)

		if err := t.betting.CancelNonLivePendingBets(g.UUID); err != nil {
			t.logger.Warn("non-live-bets-cancel-failed",
				zap.String("game-uuid", g.UUID.String()),
				zap.Error(err))
			continue
		}

		GamesStartedTotal.Inc()
		t.logger.Info("game-started",
			zap.String("game-uuid", g.UUID.String()),
			zap.Time("start", g.Start))
	}
}
