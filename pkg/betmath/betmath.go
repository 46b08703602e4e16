// Package betmath holds the fixed-point stake arithmetic. Everything is
// integer-only: every floor is an exact, reproducible tie-break, so
// independently executing replicas compute bit-identical results.
package betmath

import (
	"github.com/openwager/betchain/pkg/types"
)

// Gain is the profit a stake earns at the given odds: stake*odds-stake,
// floored at one unit so a positive stake always leaves the winner
// strictly better off.
func Gain(stake types.Asset, odds types.Odds) (types.Asset, error) {
	if stake.Symbol != types.ChainSymbol {
		return types.Asset{}, types.NewOpError(types.CodeWrongSymbol, stake.Symbol,
			"stake must be denominated in %s", types.ChainSymbol)
	}

	gain, err := odds.Apply(stake).Sub(stake)
	if err != nil {
		return types.Asset{}, err
	}

	return gain.Max(types.NewAsset(1)), nil
}

// MatchedStake is the exact split of two opposing stakes at coupled
// odds.
type MatchedStake struct {
	// Matched amount consumed from each side's stake.
	Bet1Stake types.Asset
	Bet2Stake types.Asset

	// Full potential payout of each side's input stake at its own odds.
	PotentialResult1 types.Asset
	PotentialResult2 types.Asset
}

// CalculateMatchedStake computes how much of each stake is actually
// usable when bet1 and bet2 oppose each other. The odds must be exact
// inverses; this is the no-arbitrage invariant of the market.
//
// The smaller potential payout limits the match: the larger-potential
// side only commits the stake that reproduces the smaller payout at its
// own odds (the reciprocal multiplier, floored at one unit); the
// smaller side commits its whole stake. Equal potentials consume both
// stakes exactly with no rounding.
func CalculateMatchedStake(stake1 types.Asset, odds1 types.Odds, stake2 types.Asset, odds2 types.Odds) (MatchedStake, error) {
	if stake1.Symbol != types.ChainSymbol || stake1.Symbol != stake2.Symbol {
		return MatchedStake{}, types.NewOpError(types.CodeWrongSymbol, stake1.Symbol,
			"stakes must share the %s symbol, got %s and %s", types.ChainSymbol, stake1.Symbol, stake2.Symbol)
	}
	if !odds1.IsInverseOf(odds2) {
		return MatchedStake{}, types.NewOpError(types.CodeOddsNotCoupled, "",
			"odds %s and %s must sum to probability 1", odds1, odds2)
	}

	r := MatchedStake{
		PotentialResult1: odds1.Apply(stake1),
		PotentialResult2: odds2.Apply(stake2),
	}

	switch {
	case r.PotentialResult1.Amount > r.PotentialResult2.Amount:
		r.Bet1Stake = odds1.Coup(r.PotentialResult2).Max(types.NewAsset(1))
		r.Bet2Stake = stake2
	case r.PotentialResult1.Amount < r.PotentialResult2.Amount:
		r.Bet1Stake = stake1
		r.Bet2Stake = odds2.Coup(r.PotentialResult1).Max(types.NewAsset(1))
	default:
		r.Bet1Stake = stake1
		r.Bet2Stake = stake2
	}

	return r, nil
}

// CanBeMatched reports whether a stake at the given odds can still
// produce a nonzero floored gain. Bets that cannot are retired from the
// book: they would only generate useless dust matches.
func CanBeMatched(stake types.Asset, odds types.Odds) bool {
	return odds.Apply(stake).Amount > stake.Amount
}
