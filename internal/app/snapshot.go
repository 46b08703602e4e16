package app

import (
	"github.com/google/uuid"

	"github.com/openwager/betchain/internal/betting"
	"github.com/openwager/betchain/pkg/types"
)

// Read-side snapshot accessors. Implements httpserver.StateReader;
// every method copies so callers never alias live records.

// Games returns all games ordered by creation.
func (a *App) Games() []types.Game {
	a.mu.RLock()
	defer a.mu.RUnlock()

	games := a.store.Games.All()
	out := make([]types.Game, 0, len(games))
	for _, g := range games {
		out = append(out, copyGame(g))
	}

	return out
}

// Game returns one game by uuid.
func (a *App) Game(id uuid.UUID) (types.Game, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	g := a.store.Games.FindByUUID(id)
	if g == nil {
		return types.Game{}, false
	}

	return copyGame(g), true
}

// PendingBets returns the pending book of a game in creation order.
func (a *App) PendingBets(game uuid.UUID) []types.PendingBet {
	a.mu.RLock()
	defer a.mu.RUnlock()

	bets := a.store.PendingBets.GetByGame(game)
	out := make([]types.PendingBet, 0, len(bets))
	for _, b := range bets {
		out = append(out, *b)
	}

	return out
}

// MatchedBets returns a game's matched bets grouped by market.
func (a *App) MatchedBets(game uuid.UUID) []types.MatchedBet {
	a.mu.RLock()
	defer a.mu.RUnlock()

	bets := a.store.MatchedBets.GetByGame(game)
	out := make([]types.MatchedBet, 0, len(bets))
	for _, mb := range bets {
		out = append(out, *mb)
	}

	return out
}

// Winners returns the winner sides of a finished game.
func (a *App) Winners(game uuid.UUID) ([]betting.Winner, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	g := a.store.Games.FindByUUID(game)
	if g == nil {
		return nil, types.NewOpError(types.CodeNotFound, game.String(), "game does not exist")
	}

	return a.betting.Winners(g)
}

// Balance returns an account's ledger balance.
func (a *App) Balance(account string) types.Asset {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.ledger.Balance(account)
}

// copyGame detaches the market and result slices from the live record.
func copyGame(g *types.Game) types.Game {
	out := *g
	out.Markets = append([]types.Market(nil), g.Markets...)
	out.Results = append([]types.Wincase(nil), g.Results...)

	return out
}
