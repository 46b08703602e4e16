package evaluators

import (
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/betting"
	"github.com/openwager/betchain/internal/game"
	"github.com/openwager/betchain/pkg/types"
)

// CreateGame inserts a new game in `created` status.
func (e *Evaluators) CreateGame(op CreateGameOp) error {
	if err := e.requireModerator(op.Moderator); err != nil {
		return err
	}
	if op.Name == "" {
		return types.NewOpError(types.CodePrecondition, op.UUID.String(),
			"game name must not be empty")
	}
	if e.store.Games.FindByUUID(op.UUID) != nil {
		return types.NewOpError(types.CodePrecondition, op.UUID.String(),
			"game with this uuid already exists")
	}
	if e.store.Games.ExistsByName(op.Name) {
		return types.NewOpError(types.CodePrecondition, op.Name,
			"game with this name already exists")
	}
	if !op.Start.After(e.store.HeadBlockTime()) {
		return types.NewOpError(types.CodePrecondition, op.UUID.String(),
			"game start time must be in the future")
	}
	if op.AutoResolveDelay <= 0 {
		return types.NewOpError(types.CodePrecondition, op.UUID.String(),
			"auto resolve delay must be positive")
	}

	_, err := e.games.Create(game.CreateParams{
		UUID:             op.UUID,
		Name:             op.Name,
		Moderator:        op.Moderator,
		Kind:             op.Kind,
		Start:            op.Start,
		AutoResolveDelay: op.AutoResolveDelay,
		Markets:          op.Markets,
	})

	return err
}

// CancelGame refunds every bet against the game and removes it.
func (e *Evaluators) CancelGame(op CancelGameOp) error {
	if err := e.requireModerator(op.Moderator); err != nil {
		return err
	}

	g, err := e.getGame(op.GameUUID)
	if err != nil {
		return err
	}
	if g.Status == types.GameFinished {
		return types.NewOpError(types.CodeWrongStatus, g.UUID.String(),
			"cannot cancel a finished game")
	}

	if err := e.betting.CancelBets(g, betting.ReasonGameCancelled); err != nil {
		return err
	}

	return e.betting.CancelGame(g, betting.ReasonGameCancelled)
}

// UpdateGameMarkets replaces the market set of a not-yet-started game.
// Bets on wincase pairs the new set no longer offers are cancelled and
// refunded before the swap.
func (e *Evaluators) UpdateGameMarkets(op UpdateGameMarketsOp) error {
	if err := e.requireModerator(op.Moderator); err != nil {
		return err
	}

	g, err := e.getGame(op.GameUUID)
	if err != nil {
		return err
	}
	if g.Status != types.GameCreated {
		return types.NewOpError(types.CodeWrongStatus, g.UUID.String(),
			"markets can only be changed before the game starts")
	}
	if err := game.ValidateMarkets(g.Kind, op.Markets); err != nil {
		return err
	}

	dropped := droppedPairs(g.Markets, op.Markets)
	if len(dropped) > 0 {
		if err := e.betting.CancelBetsByWincases(g, dropped, betting.ReasonMarketRemoved); err != nil {
			return err
		}

		e.logger.Info("game-markets-trimmed",
			zap.String("game-uuid", g.UUID.String()),
			zap.Int("dropped-pairs", len(dropped)))
	}

	return e.games.UpdateMarkets(g, op.Markets)
}

// UpdateGameStartTime moves the scheduled start of a not-yet-started
// game to a future time.
func (e *Evaluators) UpdateGameStartTime(op UpdateGameStartTimeOp) error {
	if err := e.requireModerator(op.Moderator); err != nil {
		return err
	}

	g, err := e.getGame(op.GameUUID)
	if err != nil {
		return err
	}
	if g.Status != types.GameCreated {
		return types.NewOpError(types.CodeWrongStatus, g.UUID.String(),
			"start time can only be changed before the game starts")
	}
	if !op.Start.After(e.store.HeadBlockTime()) {
		return types.NewOpError(types.CodePrecondition, g.UUID.String(),
			"game start time must be in the future")
	}

	e.games.UpdateStartTime(g, op.Start)

	return nil
}

// PostGameResults commits the outcome set for a started game, or
// replaces it on a finished game while the resolve window is still
// open.
func (e *Evaluators) PostGameResults(op PostGameResultsOp) error {
	if err := e.requireModerator(op.Moderator); err != nil {
		return err
	}

	g, err := e.getGame(op.GameUUID)
	if err != nil {
		return err
	}
	if g.Status == types.GameCreated {
		return types.NewOpError(types.CodeWrongStatus, g.UUID.String(),
			"cannot post results for a game which is not started")
	}
	if g.Status == types.GameFinished && !g.BetsResolveTime.After(e.store.HeadBlockTime()) {
		return types.NewOpError(types.CodeWrongStatus, g.UUID.String(),
			"cannot change results after the resolve window has closed")
	}

	for _, w := range op.Wincases {
		if !g.HasMarket(w.Market()) {
			return types.NewOpError(types.CodePrecondition, g.UUID.String(),
				"wincase %s does not belong to any game market", w)
		}
	}
	if err := game.ValidateOppositesAbsent(op.Wincases); err != nil {
		return err
	}
	if err := game.ValidateWinnersPresent(g.Markets, op.Wincases); err != nil {
		return err
	}

	e.games.Finish(g, op.Wincases)

	return nil
}

// droppedPairs returns wincase pairs offered by the old market set but
// absent from the new one.
func droppedPairs(old, updated []types.Market) []types.WincasePair {
	kept := make(map[types.Market]bool, len(updated))
	for _, m := range updated {
		kept[m] = true
	}

	var out []types.WincasePair
	for _, m := range old {
		if kept[m] {
			continue
		}
		out = append(out, m.WincasePairs()...)
	}

	return out
}
