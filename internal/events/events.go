// Package events is the engine's ordering-observable side channel.
// Operations append events to a Recorder in the exact order their
// mutations occur; the block pipeline drains the recorder once per
// block and hands the slice to sinks unreordered. Downstream audit and
// history consumers reconstruct state from this ordering.
package events

import (
	"github.com/google/uuid"

	"github.com/openwager/betchain/pkg/types"
)

// Event is a single state-change notification.
type Event interface {
	Name() string
}

// BetUpdated reports a pending bet's rest stake changing.
type BetUpdated struct {
	GameUUID     uuid.UUID   `json:"game_uuid"`
	BetUUID      uuid.UUID   `json:"bet_uuid"`
	Better       string      `json:"better"`
	NewRestStake types.Asset `json:"new_rest_stake"`
}

func (BetUpdated) Name() string { return "bet_updated" }

// BetsMatched reports a new matched-bet record.
type BetsMatched struct {
	MatchedBetID     int64       `json:"matched_bet_id"`
	Bet1UUID         uuid.UUID   `json:"bet1_uuid"`
	Bet2UUID         uuid.UUID   `json:"bet2_uuid"`
	Better1          string      `json:"better1"`
	Better2          string      `json:"better2"`
	MatchedBet1Stake types.Asset `json:"matched_bet1_stake"`
	MatchedBet2Stake types.Asset `json:"matched_bet2_stake"`
}

func (BetsMatched) Name() string { return "bets_matched" }

// BetCancelled reports a bet leaving the system with a refund.
type BetCancelled struct {
	GameUUID uuid.UUID   `json:"game_uuid"`
	BetUUID  uuid.UUID   `json:"bet_uuid"`
	Better   string      `json:"better"`
	Refund   types.Asset `json:"refund"`
	Reason   string      `json:"reason"`
}

func (BetCancelled) Name() string { return "bet_cancelled" }

// BetResolved reports a matched bet side settling with its payout, or
// a pending rest stake returning at resolution.
type BetResolved struct {
	GameUUID uuid.UUID   `json:"game_uuid"`
	BetUUID  uuid.UUID   `json:"bet_uuid"`
	Better   string      `json:"better"`
	Payout   types.Asset `json:"payout"`
	Won      bool        `json:"won"`
}

func (BetResolved) Name() string { return "bet_resolved" }

// GameResolved reports a finished game settling and leaving the store.
type GameResolved struct {
	GameUUID uuid.UUID `json:"game_uuid"`
}

func (GameResolved) Name() string { return "game_resolved" }

// GameStatusChanged reports a game state machine transition.
type GameStatusChanged struct {
	GameUUID  uuid.UUID        `json:"game_uuid"`
	OldStatus types.GameStatus `json:"old_status"`
	NewStatus types.GameStatus `json:"new_status"`
}

func (GameStatusChanged) Name() string { return "game_status_changed" }

// GameCancelled reports a game record being removed.
type GameCancelled struct {
	GameUUID uuid.UUID `json:"game_uuid"`
	Reason   string    `json:"reason"`
}

func (GameCancelled) Name() string { return "game_cancelled" }

// Sink consumes drained events. Sinks must preserve emission order.
type Sink interface {
	Publish(ev Event)
}

// Recorder accumulates events for the current unit of work.
type Recorder struct {
	events []Event
}

// Emit appends an event.
func (r *Recorder) Emit(ev Event) {
	r.events = append(r.events, ev)
}

// Drain returns the accumulated events in emission order and resets
// the recorder.
func (r *Recorder) Drain() []Event {
	out := r.events
	r.events = nil

	return out
}

// Len returns the number of undrained events.
func (r *Recorder) Len() int { return len(r.events) }
