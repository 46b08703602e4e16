package httpserver

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/openwager/betchain/internal/evaluators"
)

// decodeOp maps an envelope type to its concrete operation.
func decodeOp(opType string, raw json.RawMessage) (any, error) {
	var (
		op  any
		err error
	)

	switch opType {
	case "create_game":
		var o evaluators.CreateGameOp
		err = json.Unmarshal(raw, &o)
		op = o
	case "cancel_game":
		var o evaluators.CancelGameOp
		err = json.Unmarshal(raw, &o)
		op = o
	case "update_game_markets":
		var o evaluators.UpdateGameMarketsOp
		err = json.Unmarshal(raw, &o)
		op = o
	case "update_game_start_time":
		var o evaluators.UpdateGameStartTimeOp
		err = json.Unmarshal(raw, &o)
		op = o
	case "post_game_results":
		var o evaluators.PostGameResultsOp
		err = json.Unmarshal(raw, &o)
		op = o
	case "post_bet":
		var o evaluators.PostBetOp
		err = json.Unmarshal(raw, &o)
		op = o
	case "cancel_pending_bet":
		var o evaluators.CancelPendingBetOp
		err = json.Unmarshal(raw, &o)
		op = o
	default:
		return nil, fmt.Errorf("unknown operation type %q", opType)
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", opType, err)
	}

	return op, nil
}
