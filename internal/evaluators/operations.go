package evaluators

import (
	"time"

	"github.com/google/uuid"

	"github.com/openwager/betchain/pkg/types"
)

// Operations accepted by the engine. Each maps to one evaluator; the
// block pipeline applies them strictly in arrival order.

// CreateGameOp creates a game with its market set.
type CreateGameOp struct {
	UUID             uuid.UUID      `json:"uuid"`
	Moderator        string         `json:"moderator"`
	Name             string         `json:"name"`
	Kind             types.GameKind `json:"kind"`
	Start            time.Time      `json:"start"`
	AutoResolveDelay time.Duration  `json:"auto_resolve_delay"`
	Markets          []types.Market `json:"markets"`
}

// CancelGameOp cancels a game and every bet against it.
type CancelGameOp struct {
	GameUUID  uuid.UUID `json:"game_uuid"`
	Moderator string    `json:"moderator"`
}

// UpdateGameMarketsOp replaces a game's market set, cancelling bets on
// wincase pairs the new set no longer offers.
type UpdateGameMarketsOp struct {
	GameUUID  uuid.UUID      `json:"game_uuid"`
	Moderator string         `json:"moderator"`
	Markets   []types.Market `json:"markets"`
}

// UpdateGameStartTimeOp moves a game's scheduled start.
type UpdateGameStartTimeOp struct {
	GameUUID  uuid.UUID `json:"game_uuid"`
	Moderator string    `json:"moderator"`
	Start     time.Time `json:"start"`
}

// PostGameResultsOp submits the outcome set for a game.
type PostGameResultsOp struct {
	GameUUID  uuid.UUID       `json:"game_uuid"`
	Moderator string          `json:"moderator"`
	Wincases  []types.Wincase `json:"wincases"`
}

// PostBetOp places a wager.
type PostBetOp struct {
	BetUUID  uuid.UUID     `json:"bet_uuid"`
	Better   string        `json:"better"`
	GameUUID uuid.UUID     `json:"game_uuid"`
	Wincase  types.Wincase `json:"wincase"`
	Odds     types.Odds    `json:"odds"`
	Stake    types.Asset   `json:"stake"`

	// Live bets stay valid after kickoff; non-live bets are voided by
	// the startup trigger.
	Live bool `json:"live"`
}

// CancelPendingBetOp withdraws the unmatched remainder of one bet.
type CancelPendingBetOp struct {
	BetUUID uuid.UUID `json:"bet_uuid"`
	Better  string    `json:"better"`
}
