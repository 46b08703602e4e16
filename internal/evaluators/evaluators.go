// Package evaluators validates and applies operations against the
// store. Every evaluator validates all preconditions before its first
// mutation, so a rejected operation leaves no trace; the embedding
// pipeline owns any higher-level rollback.
package evaluators

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/betting"
	"github.com/openwager/betchain/internal/game"
	"github.com/openwager/betchain/internal/ledger"
	"github.com/openwager/betchain/internal/store"
	"github.com/openwager/betchain/pkg/types"
)

// Evaluators dispatches operations to their handlers.
type Evaluators struct {
	store   *store.Store
	games   *game.Service
	betting *betting.Service
	matcher *betting.Matcher
	ledger  ledger.AccountLedger
	logger  *zap.Logger
}

// New creates the evaluator set.
func New(st *store.Store, gs *game.Service, bs *betting.Service,
	m *betting.Matcher, lg ledger.AccountLedger, logger *zap.Logger,
) *Evaluators {
	return &Evaluators{store: st, games: gs, betting: bs, matcher: m, ledger: lg, logger: logger}
}

// Apply dispatches one operation.
func (e *Evaluators) Apply(op any) error {
	switch o := op.(type) {
	case CreateGameOp:
		return e.CreateGame(o)
	case CancelGameOp:
		return e.CancelGame(o)
	case UpdateGameMarketsOp:
		return e.UpdateGameMarkets(o)
	case UpdateGameStartTimeOp:
		return e.UpdateGameStartTime(o)
	case PostGameResultsOp:
		return e.PostGameResults(o)
	case PostBetOp:
		return e.PostBet(o)
	case CancelPendingBetOp:
		return e.CancelPendingBet(o)
	default:
		return types.NewOpError(types.CodePrecondition, "", "unknown operation type %T", op)
	}
}

func (e *Evaluators) requireModerator(account string) error {
	if !e.betting.IsBettingModerator(account) {
		return types.NewOpError(types.CodeNotModerator, account,
			"account is not the betting moderator")
	}

	return nil
}

func (e *Evaluators) getGame(gameUUID uuid.UUID) (*types.Game, error) {
	g := e.store.Games.FindByUUID(gameUUID)
	if g == nil {
		return nil, types.NewOpError(types.CodeNotFound, gameUUID.String(), "game does not exist")
	}

	return g, nil
}
