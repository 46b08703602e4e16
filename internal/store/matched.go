package store

import (
	"github.com/google/uuid"

	"github.com/openwager/betchain/pkg/types"
)

// MatchedBetStore is the matched-bet arena plus ordered indices by
// (game, market, id) for the winners query and per-game cancellation,
// and by (pending bet uuid, id) with one entry per side for the
// unconditional unwind path.
type MatchedBetStore struct {
	byID   map[int64]*types.MatchedBet
	nextID int64

	byGameMarket sortedIndex[*types.MatchedBet]
	byBet        sortedIndex[betRef]
}

type betRef struct {
	bet     uuid.UUID
	matched *types.MatchedBet
}

func newMatchedBetStore() *MatchedBetStore {
	ms := &MatchedBetStore{
		byID: make(map[int64]*types.MatchedBet),
	}
	ms.byGameMarket.less = func(a, b *types.MatchedBet) bool {
		if c := uuidLess(a.GameUUID, b.GameUUID); c != 0 {
			return c < 0
		}
		if a.Market != b.Market {
			return a.Market.Less(b.Market)
		}
		return a.ID < b.ID
	}
	ms.byBet.less = func(a, b betRef) bool {
		if c := uuidLess(a.bet, b.bet); c != 0 {
			return c < 0
		}
		return a.matched.ID < b.matched.ID
	}

	return ms
}

// Create inserts a matched bet built by init into every index.
func (ms *MatchedBetStore) Create(init func(*types.MatchedBet)) *types.MatchedBet {
	m := &types.MatchedBet{}
	init(m)
	ms.nextID++
	m.ID = ms.nextID

	ms.byID[m.ID] = m
	ms.byGameMarket.insert(m)
	ms.byBet.insert(betRef{bet: m.Bet1Data.UUID, matched: m})
	ms.byBet.insert(betRef{bet: m.Bet2Data.UUID, matched: m})

	return m
}

// Remove deletes the matched bet from every index. Matched bets are
// immutable, so there is no Update path.
func (ms *MatchedBetStore) Remove(m *types.MatchedBet) {
	delete(ms.byID, m.ID)
	ms.byGameMarket.remove(m)
	ms.byBet.remove(betRef{bet: m.Bet1Data.UUID, matched: m})
	ms.byBet.remove(betRef{bet: m.Bet2Data.UUID, matched: m})
}

// FindByID returns the matched bet or nil.
func (ms *MatchedBetStore) FindByID(id int64) *types.MatchedBet {
	return ms.byID[id]
}

// GetByGame returns a game's matched bets ordered by market; the
// winners query relies on this ordering for its set intersection.
func (ms *MatchedBetStore) GetByGame(game uuid.UUID) []*types.MatchedBet {
	return ms.byGameMarket.between(
		func(m *types.MatchedBet) bool { return uuidLess(m.GameUUID, game) >= 0 },
		func(m *types.MatchedBet) bool { return uuidLess(m.GameUUID, game) > 0 },
	)
}

// GetByBet returns every matched bet referencing the pending bet from
// either side, ascending by id.
func (ms *MatchedBetStore) GetByBet(bet uuid.UUID) []*types.MatchedBet {
	refs := ms.byBet.between(
		func(r betRef) bool { return uuidLess(r.bet, bet) >= 0 },
		func(r betRef) bool { return uuidLess(r.bet, bet) > 0 },
	)

	out := make([]*types.MatchedBet, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.matched)
	}

	return out
}

// Count returns the number of matched bets.
func (ms *MatchedBetStore) Count() int { return len(ms.byID) }
