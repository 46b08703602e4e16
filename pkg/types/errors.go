package types

import (
	"errors"
	"fmt"
)

// Error codes for rejected operations. Every violation aborts the whole
// operation before any mutation; there is no partial application.
const (
	CodePrecondition    = "PRECONDITION_FAILED"
	CodeNotFound        = "NOT_FOUND"
	CodeInvariant       = "INVARIANT_VIOLATION"
	CodeNotModerator    = "NOT_BETTING_MODERATOR"
	CodeWrongStatus     = "WRONG_GAME_STATUS"
	CodeOddsNotCoupled  = "ODDS_NOT_COUPLED"
	CodeWrongSymbol     = "WRONG_ASSET_SYMBOL"
	CodeMarketUncovered = "MARKET_NOT_COVERED"
	CodeOppositeResults = "OPPOSITE_RESULT_WINCASES"
)

// OpError is a rejected operation with enough context to diagnose which
// precondition failed on which entity.
type OpError struct {
	Code    string // error code from the set above
	Entity  string // game uuid, bet uuid, account, market...
	Message string
}

func (e *OpError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Entity, e.Message)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewOpError builds an OpError with a formatted message.
func NewOpError(code, entity, format string, args ...any) *OpError {
	return &OpError{Code: code, Entity: entity, Message: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err is an OpError carrying the given code.
func IsCode(err error, code string) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code == code
	}

	return false
}
