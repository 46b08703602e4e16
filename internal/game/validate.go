package game

import (
	"github.com/openwager/betchain/pkg/types"
)

// hockeyExcluded lists market kinds a hockey game may not offer.
var hockeyExcluded = map[types.MarketKind]bool{
	types.MarketHandicap:       true,
	types.MarketCorrectScore:   true,
	types.MarketTotalGoalsHome: true,
	types.MarketTotalGoalsAway: true,
}

func marketAllowed(kind types.GameKind, m types.MarketKind) bool {
	switch kind {
	case types.SoccerGame:
		return true
	case types.HockeyGame:
		return !hockeyExcluded[m]
	default:
		return false
	}
}

// ValidateMarkets checks a market set on game creation or update: it
// must be non-empty, free of duplicates, and every market must be
// internally consistent and offered by the game kind.
func ValidateMarkets(kind types.GameKind, markets []types.Market) error {
	if len(markets) == 0 {
		return types.NewOpError(types.CodePrecondition, "", "game must offer at least one market")
	}

	seen := make(map[types.Market]bool, len(markets))
	for _, m := range markets {
		if err := m.Validate(); err != nil {
			return err
		}
		if !marketAllowed(kind, m.Kind) {
			return types.NewOpError(types.CodePrecondition, m.String(),
				"%s game does not offer the %s market", kind, m.Kind)
		}
		if seen[m] {
			return types.NewOpError(types.CodePrecondition, m.String(), "duplicate market")
		}
		seen[m] = true
	}

	return nil
}

// ValidateWinnersPresent proves a submitted result set decides every
// market the game offers: for every two-state wincase pair the market
// derives, at least one side must appear among the winners. Pairs with
// a third "void" state are exempt, the push outcome reports neither
// side.
func ValidateWinnersPresent(markets []types.Market, winners []types.Wincase) error {
	winnerSet := make(map[types.Wincase]bool, len(winners))
	for _, w := range winners {
		winnerSet[w] = true
	}

	for _, m := range markets {
		for _, pair := range m.WincasePairs() {
			if pair.First.HasThirdState() {
				continue
			}
			if !winnerSet[pair.First] && !winnerSet[pair.Second] {
				return types.NewOpError(types.CodeMarketUncovered, m.String(),
					"results contain neither %s nor %s", pair.First, pair.Second)
			}
		}
	}

	return nil
}

// ValidateOppositesAbsent rejects a result set claiming both sides of
// the same bet won: the intersection of the winners with their own
// opposites must be empty.
func ValidateOppositesAbsent(winners []types.Wincase) error {
	winnerSet := make(map[types.Wincase]bool, len(winners))
	for _, w := range winners {
		winnerSet[w] = true
	}

	for _, w := range winners {
		if winnerSet[types.CreateOpposite(w)] {
			return types.NewOpError(types.CodeOppositeResults, w.String(),
				"results contain %s and its opposite", w)
		}
	}

	return nil
}
