package journal

import (
	"context"

	"github.com/openwager/betchain/pkg/types"
)

// Journal is the interface for persisting matched bets and game
// results outside the in-memory ledger state.
type Journal interface {
	// RecordMatch persists one matched bet.
	RecordMatch(ctx context.Context, mb *types.MatchedBet) error

	// RecordResults persists the final outcome set of a game.
	RecordResults(ctx context.Context, g *types.Game) error

	// Close closes the journal connection.
	Close() error
}
