package types

import (
	"time"

	"github.com/google/uuid"
)

// PendingBetKind distinguishes bets valid through the whole game from
// bets only valid before kickoff.
type PendingBetKind uint8

const (
	BetLive PendingBetKind = iota + 1
	BetNonLive
)

func (k PendingBetKind) String() string {
	if k == BetNonLive {
		return "non_live"
	}

	return "live"
}

// BetData is the immutable original wager. Inside a matched bet the
// Stake field holds the side's matched amount instead.
type BetData struct {
	UUID    uuid.UUID `json:"uuid"`
	Better  string    `json:"better"`
	Created time.Time `json:"created"`
	Wincase Wincase   `json:"wincase"`
	Odds    Odds      `json:"odds"`
	Stake   Asset     `json:"stake"`
}

// PendingBet is an unmatched or partially matched wager awaiting a
// counterpart. RestStake is the unmatched remainder; the invariant
// 0 <= RestStake <= Data.Stake holds at all times, and a bet whose rest
// can no longer produce a one-unit gain is retired from the book.
type PendingBet struct {
	ID        int64          `json:"id"`
	GameUUID  uuid.UUID      `json:"game_uuid"`
	Kind      PendingBetKind `json:"kind"`
	Data      BetData        `json:"data"`
	RestStake Asset          `json:"rest_stake"`
}

// IsMatched reports whether any part of the stake has been matched.
func (b *PendingBet) IsMatched() bool {
	return b.RestStake != b.Data.Stake
}

// MatchedBet pairs two opposing wagers with fixed matched stakes. The
// record is immutable after creation; it is only ever removed, on
// settlement or cancellation.
type MatchedBet struct {
	ID       int64     `json:"id"`
	GameUUID uuid.UUID `json:"game_uuid"`
	Market   Market    `json:"market"`
	Created  time.Time `json:"created"`

	// Per-side snapshots: Stake is the matched amount, the payout is
	// the side's quoted return at its odds. Settlement pays the
	// winner the sum of both stakes, which equals the quote except
	// where the one-unit matching floor fired.
	Bet1Data   BetData `json:"bet1_data"`
	Bet2Data   BetData `json:"bet2_data"`
	Bet1Payout Asset   `json:"bet1_payout"`
	Bet2Payout Asset   `json:"bet2_payout"`
}
