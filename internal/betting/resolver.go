package betting

import (
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/events"
	"github.com/openwager/betchain/pkg/types"
)

// ReasonGameResolved marks refunds issued during settlement: pending
// rest stakes and matched bets whose market the results left undecided.
const ReasonGameResolved = "game_resolved"

// ResolveGame settles a finished game once its resolve window has
// closed. Each matched bet pays the side whose wincase appears in the
// posted results both matched stakes; a bet on a market the
// results leave undecided refunds both sides their matched stake.
// Pending rest stakes go back to their owners, then the game record
// itself is removed. Results are final at this point, so nothing here
// can be revisited.
func (s *Service) ResolveGame(g *types.Game) error {
	winning := make(map[types.Wincase]bool, len(g.Results))
	for _, w := range g.Results {
		winning[w] = true
	}

	for _, mb := range s.store.MatchedBets.GetByGame(g.UUID) {
		if err := s.resolveMatchedBet(mb, winning); err != nil {
			return err
		}
	}

	if err := s.CancelPendingBets(g.UUID, ReasonGameResolved); err != nil {
		return err
	}

	s.store.Games.Remove(g)
	s.recorder.Emit(events.GameResolved{GameUUID: g.UUID})

	s.logger.Info("game-resolved",
		zap.String("game-uuid", g.UUID.String()),
		zap.String("name", g.Name))

	return nil
}

func (s *Service) resolveMatchedBet(mb *types.MatchedBet, winning map[types.Wincase]bool) error {
	switch {
	case winning[mb.Bet1Data.Wincase]:
		return s.payMatchedBet(mb, mb.Bet1Data, mb.Bet2Data)
	case winning[mb.Bet2Data.Wincase]:
		return s.payMatchedBet(mb, mb.Bet2Data, mb.Bet1Data)
	default:
		// Push: the results decided neither side's wincase.
		return s.removeMatchedBet(mb, ReasonGameResolved)
	}
}

func (s *Service) payMatchedBet(mb *types.MatchedBet, winner, loser types.BetData) error {
	// The winner collects the matched pool. The payout snapshot can
	// exceed the pool when the one-unit floor fired during matching.
	payout, err := winner.Stake.Add(loser.Stake)
	if err != nil {
		return err
	}

	if err := s.ledger.Credit(winner.Better, payout); err != nil {
		return err
	}

	s.store.MatchedBets.Remove(mb)

	s.recorder.Emit(events.BetResolved{
		GameUUID: mb.GameUUID,
		BetUUID:  winner.UUID,
		Better:   winner.Better,
		Payout:   payout,
		Won:      true,
	})
	s.recorder.Emit(events.BetResolved{
		GameUUID: mb.GameUUID,
		BetUUID:  loser.UUID,
		Better:   loser.Better,
		Payout:   types.NewAsset(0),
		Won:      false,
	})

	BetsResolvedTotal.Inc()
	PayoutVolume.Add(float64(payout.Amount))

	return nil
}
