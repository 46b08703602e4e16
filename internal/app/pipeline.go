package app

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/events"
	"github.com/openwager/betchain/pkg/types"
)

// ProcessBlock applies one block: advance the clock, run the block
// tasks, apply queued operations in arrival order, then flush events
// to the feed and the journal. Everything inside the lock is
// deterministic given the block time and the queue contents.
func (a *App) ProcessBlock(blockTime time.Time) {
	timer := prometheus.NewTimer(BlockDurationSeconds)
	defer timer.ObserveDuration()

	a.mu.Lock()

	a.store.SetHeadBlockTime(blockTime)
	a.startup.OnApply()
	a.autoResolve.OnApply()
	a.resolve.OnApply()

	applied := 0
queue:
	for {
		select {
		case op := <-a.opQueue:
			if err := a.evals.Apply(op); err != nil {
				a.logger.Warn("operation-rejected",
					zap.String("op", fmt.Sprintf("%T", op)),
					zap.Error(err))
				OpsRejectedTotal.Inc()
				continue
			}
			applied++
			OpsAppliedTotal.Inc()
		default:
			break queue
		}
	}

	evs := a.recorder.Drain()

	// Snapshot journal payloads while the records are still stable.
	var matched []types.MatchedBet
	var finishedGames []types.Game
	for _, ev := range evs {
		switch e := ev.(type) {
		case events.BetsMatched:
			if mb := a.store.MatchedBets.FindByID(e.MatchedBetID); mb != nil {
				matched = append(matched, *mb)
			}
		case events.GameStatusChanged:
			if e.NewStatus != types.GameFinished {
				continue
			}
			if g := a.store.Games.FindByUUID(e.GameUUID); g != nil {
				finishedGames = append(finishedGames, copyGame(g))
			}
		}
	}

	a.mu.Unlock()

	for _, ev := range evs {
		a.hub.Publish(ev)
	}

	for i := range matched {
		if err := a.journal.RecordMatch(a.ctx, &matched[i]); err != nil {
			a.logger.Warn("journal-match-failed",
				zap.Int64("matched-bet-id", matched[i].ID),
				zap.Error(err))
		}
	}
	for i := range finishedGames {
		if err := a.journal.RecordResults(a.ctx, &finishedGames[i]); err != nil {
			a.logger.Warn("journal-results-failed",
				zap.String("game-uuid", finishedGames[i].UUID.String()),
				zap.Error(err))
		}
	}

	BlocksProcessedTotal.Inc()

	if applied > 0 || len(evs) > 0 {
		a.logger.Debug("block-processed",
			zap.Time("block-time", blockTime),
			zap.Int("ops-applied", applied),
			zap.Int("events", len(evs)))
	}
}

// Submit queues an operation for the next block. Implements
// httpserver.OpSubmitter.
func (a *App) Submit(op any) error {
	select {
	case <-a.ctx.Done():
		return fmt.Errorf("engine is shutting down")
	default:
	}

	select {
	case a.opQueue <- op:
		return nil
	default:
		return fmt.Errorf("operation queue is full")
	}
}
