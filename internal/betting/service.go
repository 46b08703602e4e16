// Package betting implements the bet lifecycle: placement, matching,
// and every cancellation/refund flow, plus the winners query consumed
// by settlement. All preconditions hard-fail before any mutation; a
// violated precondition is a caller bug, never silently ignored.
package betting

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/events"
	"github.com/openwager/betchain/internal/ledger"
	"github.com/openwager/betchain/internal/store"
	"github.com/openwager/betchain/pkg/types"
)

// Cancellation reasons, reported on bet-cancelled events and metrics.
const (
	ReasonGameCancelled = "game_cancelled"
	ReasonAutoResolve   = "auto_resolve"
	ReasonNonLiveVoid   = "non_live_void"
	ReasonMarketRemoved = "market_removed"
	ReasonBetterCancel  = "better_cancel"
	ReasonFullyMatched  = "fully_matched"
)

// Service is the bet lifecycle service.
type Service struct {
	store    *store.Store
	ledger   ledger.AccountLedger
	recorder *events.Recorder
	logger   *zap.Logger
}

// NewService creates a betting service.
func NewService(st *store.Store, lg ledger.AccountLedger, rec *events.Recorder, logger *zap.Logger) *Service {
	return &Service{store: st, ledger: lg, recorder: rec, logger: logger}
}

// IsBettingModerator reports whether the account is the moderator of
// record.
func (s *Service) IsBettingModerator(account string) bool {
	return s.store.Moderator() == account
}

// CreateBet validates the wager and inserts a pending bet with its
// whole stake unmatched, timestamped at the current ledger time.
func (s *Service) CreateBet(betUUID uuid.UUID, better string, g *types.Game,
	w types.Wincase, odds types.Odds, stake types.Asset, kind types.PendingBetKind,
) (*types.PendingBet, error) {
	if !stake.IsPositive() {
		return nil, types.NewOpError(types.CodePrecondition, betUUID.String(),
			"stake must be positive, got %s", stake)
	}
	if stake.Symbol != types.ChainSymbol {
		return nil, types.NewOpError(types.CodeWrongSymbol, betUUID.String(),
			"stake must be denominated in %s, got %s", types.ChainSymbol, stake.Symbol)
	}

	now := s.store.HeadBlockTime()

	bet := s.store.PendingBets.Create(func(b *types.PendingBet) {
		b.GameUUID = g.UUID
		b.Kind = kind
		b.Data = types.BetData{
			UUID:    betUUID,
			Better:  better,
			Created: now,
			Wincase: w,
			Odds:    odds,
			Stake:   stake,
		}
		b.RestStake = stake
	})

	BetsPlacedTotal.Inc()

	s.logger.Debug("bet-created",
		zap.String("bet-uuid", betUUID.String()),
		zap.String("better", better),
		zap.String("game-uuid", g.UUID.String()),
		zap.Stringer("wincase", w),
		zap.Stringer("odds", odds),
		zap.Int64("stake", stake.Amount))

	return bet, nil
}

// CancelGame removes the game record. The caller must have cancelled
// every bet first; remaining bets are an invariant violation, not a
// recoverable condition.
func (s *Service) CancelGame(g *types.Game, reason string) error {
	if len(s.store.MatchedBets.GetByGame(g.UUID)) > 0 {
		return types.NewOpError(types.CodeInvariant, g.UUID.String(),
			"cannot cancel game which has matched bets")
	}
	if len(s.store.PendingBets.GetByGame(g.UUID)) > 0 {
		return types.NewOpError(types.CodeInvariant, g.UUID.String(),
			"cannot cancel game which has pending bets")
	}

	s.store.Games.Remove(g)
	s.recorder.Emit(events.GameCancelled{GameUUID: g.UUID, Reason: reason})

	s.logger.Info("game-cancelled",
		zap.String("game-uuid", g.UUID.String()),
		zap.String("reason", reason))

	return nil
}

// CancelBets unwinds every bet against the game, matched and pending.
func (s *Service) CancelBets(g *types.Game, reason string) error {
	if err := s.CancelPendingBets(g.UUID, reason); err != nil {
		return err
	}

	return s.CancelMatchedBets(g.UUID, reason)
}

// CancelBetsByWincases restricts cancellation to bets whose wincase
// appears in the given pairs; used when markets are narrowed. The
// game's bets arrive sorted by wincase, so this is the ordered
// set-intersection of the book with the target set.
func (s *Service) CancelBetsByWincases(g *types.Game, pairs []types.WincasePair, reason string) error {
	targets := make(map[types.Wincase]bool, len(pairs)*2)
	for _, p := range pairs {
		targets[p.First] = true
		targets[p.Second] = true
	}

	for _, bet := range s.store.PendingBets.GetByGame(g.UUID) {
		if !targets[bet.Data.Wincase] {
			continue
		}
		if err := s.removePendingBet(bet, bet.RestStake, reason); err != nil {
			return err
		}
	}

	for _, mb := range s.store.MatchedBets.GetByGame(g.UUID) {
		if !targets[mb.Bet1Data.Wincase] && !targets[mb.Bet2Data.Wincase] {
			continue
		}
		if err := s.removeMatchedBet(mb, reason); err != nil {
			return err
		}
	}

	return nil
}

// CancelPendingBets refunds each pending bet's rest stake to its owner
// and clears the game's book.
func (s *Service) CancelPendingBets(game uuid.UUID, reason string) error {
	for _, bet := range s.store.PendingBets.GetByGame(game) {
		if err := s.removePendingBet(bet, bet.RestStake, reason); err != nil {
			return err
		}
	}

	return nil
}

// CancelNonLivePendingBets voids the bets only valid before kickoff;
// run by the startup trigger when the game leaves `created`.
func (s *Service) CancelNonLivePendingBets(game uuid.UUID) error {
	for _, bet := range s.store.PendingBets.GetByGame(game) {
		if bet.Kind != types.BetNonLive {
			continue
		}
		if err := s.removePendingBet(bet, bet.RestStake, ReasonNonLiveVoid); err != nil {
			return err
		}
	}

	return nil
}

// CancelMatchedBets refunds each side of every matched bet its matched
// stake and removes the records.
func (s *Service) CancelMatchedBets(game uuid.UUID, reason string) error {
	for _, mb := range s.store.MatchedBets.GetByGame(game) {
		if err := s.removeMatchedBet(mb, reason); err != nil {
			return err
		}
	}

	return nil
}

// CancelPendingBet refunds a single bet's unmatched remainder and
// removes it from the book. Matched portions stay in place.
func (s *Service) CancelPendingBet(bet *types.PendingBet, reason string) error {
	return s.removePendingBet(bet, bet.RestStake, reason)
}

// UnwindBet is the unconditional cancellation path: the rest stake
// goes back to the owner, matched records referencing the bet from
// either side are refunded to both parties and removed, then the bet
// itself is removed. Idempotent against partial prior cancellation:
// only what still exists is touched.
func (s *Service) UnwindBet(bet *types.PendingBet, reason string) error {
	for _, mb := range s.store.MatchedBets.GetByBet(bet.Data.UUID) {
		if err := s.removeMatchedBet(mb, reason); err != nil {
			return err
		}
	}

	return s.removePendingBet(bet, bet.RestStake, reason)
}

func (s *Service) removePendingBet(bet *types.PendingBet, refund types.Asset, reason string) error {
	if refund.IsPositive() {
		if err := s.ledger.Credit(bet.Data.Better, refund); err != nil {
			return err
		}
	}

	s.store.PendingBets.Remove(bet)
	s.recorder.Emit(events.BetCancelled{
		GameUUID: bet.GameUUID,
		BetUUID:  bet.Data.UUID,
		Better:   bet.Data.Better,
		Refund:   refund,
		Reason:   reason,
	})

	BetsCancelledTotal.WithLabelValues(reason).Inc()
	RefundVolume.Add(float64(refund.Amount))

	return nil
}

func (s *Service) removeMatchedBet(mb *types.MatchedBet, reason string) error {
	if err := s.ledger.Credit(mb.Bet1Data.Better, mb.Bet1Data.Stake); err != nil {
		return err
	}
	if err := s.ledger.Credit(mb.Bet2Data.Better, mb.Bet2Data.Stake); err != nil {
		return err
	}

	s.store.MatchedBets.Remove(mb)

	s.recorder.Emit(events.BetCancelled{
		GameUUID: mb.GameUUID,
		BetUUID:  mb.Bet1Data.UUID,
		Better:   mb.Bet1Data.Better,
		Refund:   mb.Bet1Data.Stake,
		Reason:   reason,
	})
	s.recorder.Emit(events.BetCancelled{
		GameUUID: mb.GameUUID,
		BetUUID:  mb.Bet2Data.UUID,
		Better:   mb.Bet2Data.Better,
		Refund:   mb.Bet2Data.Stake,
		Reason:   reason,
	})

	BetsCancelledTotal.WithLabelValues(reason).Add(2)
	RefundVolume.Add(float64(mb.Bet1Data.Stake.Amount + mb.Bet2Data.Stake.Amount))

	return nil
}
