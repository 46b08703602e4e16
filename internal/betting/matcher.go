package betting

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/events"
	"github.com/openwager/betchain/internal/store"
	"github.com/openwager/betchain/pkg/betmath"
	"github.com/openwager/betchain/pkg/types"
)

// Matcher pairs a newly placed bet against the book. It runs once per
// placement, deterministically, inside the serialized block pipeline.
type Matcher struct {
	store    *store.Store
	recorder *events.Recorder
	logger   *zap.Logger
}

// NewMatcher creates a matcher.
func NewMatcher(st *store.Store, rec *events.Recorder, logger *zap.Logger) *Matcher {
	return &Matcher{store: st, recorder: rec, logger: logger}
}

// Match scans the book oldest-first for bets on the opposite wincase at
// exactly inverse odds and consumes stake greedily until the new bet is
// exhausted or candidates run out. It returns the pending bets that
// ended fully consumed, the new bet included; the caller removes them
// from the book (the engine does not assume which side initiated the
// call).
//
// Events are emitted in mutation order: bet updated, bet updated, bets
// matched, once per created match.
func (m *Matcher) Match(bet2 *types.PendingBet) ([]*types.PendingBet, error) {
	timer := prometheus.NewTimer(MatchDurationSeconds)
	defer timer.ObserveDuration()

	var retire []*types.PendingBet

	opposite := types.CreateOpposite(bet2.Data.Wincase)
	candidates := m.store.PendingBets.GetByGameWincase(bet2.GameUUID, opposite)
	now := m.store.HeadBlockTime()

	for _, bet1 := range candidates {
		if !betsMatchable(bet1, bet2) {
			continue
		}
		if !betmath.CanBeMatched(bet2.RestStake, bet2.Data.Odds) {
			retire = append(retire, bet2)
			break
		}

		split, err := betmath.CalculateMatchedStake(bet1.RestStake, bet1.Data.Odds, bet2.RestStake, bet2.Data.Odds)
		if err != nil {
			return nil, err
		}

		if split.Bet1Stake.IsPositive() && split.Bet2Stake.IsPositive() {
			if err := m.commit(bet1, bet2, split, now); err != nil {
				return nil, err
			}
		}

		if !betmath.CanBeMatched(bet1.RestStake, bet1.Data.Odds) {
			retire = append(retire, bet1)
		}
		if !betmath.CanBeMatched(bet2.RestStake, bet2.Data.Odds) {
			retire = append(retire, bet2)
			break
		}
	}

	return retire, nil
}

// commit applies one match: both rest stakes shrink by their matched
// amounts and an immutable matched-bet record snapshots the split.
func (m *Matcher) commit(bet1, bet2 *types.PendingBet, split betmath.MatchedStake, now time.Time) error {
	rest1, err := bet1.RestStake.Sub(split.Bet1Stake)
	if err != nil {
		return err
	}
	rest2, err := bet2.RestStake.Sub(split.Bet2Stake)
	if err != nil {
		return err
	}

	m.store.PendingBets.Update(bet1, func(b *types.PendingBet) { b.RestStake = rest1 })
	m.recorder.Emit(events.BetUpdated{
		GameUUID:     bet1.GameUUID,
		BetUUID:      bet1.Data.UUID,
		Better:       bet1.Data.Better,
		NewRestStake: rest1,
	})

	m.store.PendingBets.Update(bet2, func(b *types.PendingBet) { b.RestStake = rest2 })
	m.recorder.Emit(events.BetUpdated{
		GameUUID:     bet2.GameUUID,
		BetUUID:      bet2.Data.UUID,
		Better:       bet2.Data.Better,
		NewRestStake: rest2,
	})

	matched := m.store.MatchedBets.Create(func(mb *types.MatchedBet) {
		mb.GameUUID = bet1.GameUUID
		mb.Market = bet1.Data.Wincase.Market()
		mb.Created = now

		mb.Bet1Data = bet1.Data
		mb.Bet1Data.Stake = split.Bet1Stake
		mb.Bet1Payout = bet1.Data.Odds.Apply(split.Bet1Stake)

		mb.Bet2Data = bet2.Data
		mb.Bet2Data.Stake = split.Bet2Stake
		mb.Bet2Payout = bet2.Data.Odds.Apply(split.Bet2Stake)
	})

	m.recorder.Emit(events.BetsMatched{
		MatchedBetID:     matched.ID,
		Bet1UUID:         bet1.Data.UUID,
		Bet2UUID:         bet2.Data.UUID,
		Better1:          bet1.Data.Better,
		Better2:          bet2.Data.Better,
		MatchedBet1Stake: split.Bet1Stake,
		MatchedBet2Stake: split.Bet2Stake,
	})

	MatchedBetsTotal.Inc()
	MatchedStakeVolume.Add(float64(split.Bet1Stake.Amount + split.Bet2Stake.Amount))

	m.logger.Debug("bets-matched",
		zap.Int64("matched-bet-id", matched.ID),
		zap.String("bet1-uuid", bet1.Data.UUID.String()),
		zap.String("bet2-uuid", bet2.Data.UUID.String()),
		zap.Int64("bet1-matched", split.Bet1Stake.Amount),
		zap.Int64("bet2-matched", split.Bet2Stake.Amount))

	return nil
}

// betsMatchable is the coupling condition: same game, exactly opposite
// wincases, exactly inverse odds. Same-side bets and non-inverse odds
// never match; that is the no-arbitrage invariant of the market.
func betsMatchable(bet1, bet2 *types.PendingBet) bool {
	return bet1.GameUUID == bet2.GameUUID &&
		bet1.Data.Wincase == types.CreateOpposite(bet2.Data.Wincase) &&
		bet1.Data.Odds.IsInverseOf(bet2.Data.Odds)
}
