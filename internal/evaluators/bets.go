package evaluators

import (
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/betting"
	"github.com/openwager/betchain/pkg/types"
)

// PostBet debits the stake, records the pending bet and runs it
// through the matcher. Bets fully consumed by matching are removed
// with any sub-unit remainder refunded.
func (e *Evaluators) PostBet(op PostBetOp) error {
	g, err := e.getGame(op.GameUUID)
	if err != nil {
		return err
	}
	if g.Status == types.GameFinished {
		return types.NewOpError(types.CodeWrongStatus, g.UUID.String(),
			"cannot bet on a finished game")
	}
	if !op.Live && g.Status != types.GameCreated {
		return types.NewOpError(types.CodeWrongStatus, g.UUID.String(),
			"non-live bets are accepted only before the game starts")
	}

	if e.store.PendingBets.FindByUUID(op.BetUUID) != nil {
		return types.NewOpError(types.CodePrecondition, op.BetUUID.String(),
			"bet with this uuid already exists")
	}

	odds, err := types.NewOdds(op.Odds.Numerator, op.Odds.Denominator)
	if err != nil {
		return err
	}
	if !g.HasMarket(op.Wincase.Market()) {
		return types.NewOpError(types.CodePrecondition, op.BetUUID.String(),
			"game does not offer market %s", op.Wincase.Market())
	}
	if !op.Stake.IsPositive() {
		return types.NewOpError(types.CodePrecondition, op.BetUUID.String(),
			"stake must be positive, got %s", op.Stake)
	}
	if op.Stake.Symbol != types.ChainSymbol {
		return types.NewOpError(types.CodeWrongSymbol, op.BetUUID.String(),
			"stake must be denominated in %s, got %s", types.ChainSymbol, op.Stake.Symbol)
	}

	if err := e.ledger.Debit(op.Better, op.Stake); err != nil {
		return err
	}

	kind := types.BetNonLive
	if op.Live {
		kind = types.BetLive
	}

	bet, err := e.betting.CreateBet(op.BetUUID, op.Better, g, op.Wincase, odds, op.Stake, kind)
	if err != nil {
		return err
	}

	retired, err := e.matcher.Match(bet)
	if err != nil {
		return err
	}
	for _, spent := range retired {
		if err := e.betting.CancelPendingBet(spent, betting.ReasonFullyMatched); err != nil {
			return err
		}
	}

	e.logger.Debug("bet-posted",
		zap.String("bet-uuid", op.BetUUID.String()),
		zap.String("better", op.Better),
		zap.Int("retired", len(retired)))

	return nil
}

// CancelPendingBet refunds the unmatched remainder of a bet. Matched
// portions stay in play.
func (e *Evaluators) CancelPendingBet(op CancelPendingBetOp) error {
	bet := e.store.PendingBets.FindByUUID(op.BetUUID)
	if bet == nil {
		return types.NewOpError(types.CodeNotFound, op.BetUUID.String(),
			"pending bet does not exist")
	}
	if op.Better != bet.Data.Better && !e.betting.IsBettingModerator(op.Better) {
		return types.NewOpError(types.CodePrecondition, op.BetUUID.String(),
			"only the bet owner or the moderator may cancel a pending bet")
	}

	return e.betting.CancelPendingBet(bet, betting.ReasonBetterCancel)
}
