package betting

import (
	"github.com/openwager/betchain/pkg/types"
)

// Winner pairs the winning and losing sides of one matched bet. The
// winner collects both matched stakes; the settlement bookkeeping that
// pays them out lives outside this core.
type Winner struct {
	Market types.Market  `json:"market"`
	Winner types.BetData `json:"winner"`
	Loser  types.BetData `json:"loser"`
}

// Winners intersects a finished game's matched bets, ordered by
// market, with the market-to-winning-wincase mapping derived from the
// result set. Matched bets whose market is undecided (a push on a
// third-state pair) produce no winner.
func (s *Service) Winners(g *types.Game) ([]Winner, error) {
	if g.Status != types.GameFinished {
		return nil, types.NewOpError(types.CodeWrongStatus, g.UUID.String(),
			"winners require a finished game, status is %s", g.Status)
	}

	winning := make(map[types.Market]types.Wincase, len(g.Results))
	for _, w := range g.Results {
		winning[w.Market()] = w
	}

	var out []Winner
	for _, mb := range s.store.MatchedBets.GetByGame(g.UUID) {
		w, ok := winning[mb.Market]
		if !ok {
			continue
		}

		switch w {
		case mb.Bet1Data.Wincase:
			out = append(out, Winner{Market: mb.Market, Winner: mb.Bet1Data, Loser: mb.Bet2Data})
		case mb.Bet2Data.Wincase:
			out = append(out, Winner{Market: mb.Market, Winner: mb.Bet2Data, Loser: mb.Bet1Data})
		}
	}

	return out, nil
}
