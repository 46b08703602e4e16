package store

import (
	"github.com/google/uuid"

	"github.com/openwager/betchain/pkg/types"
)

// PendingBetStore is the pending-bet arena plus ordered indices:
// by (game, wincase, id) for the matcher's oldest-first candidate scan
// and per-game ranges, and by (better, id) for refunds. Bet ids are
// assigned in creation order, so id order is FIFO order.
type PendingBetStore struct {
	byUUID map[uuid.UUID]*types.PendingBet
	nextID int64

	byGameWincase sortedIndex[*types.PendingBet]
	byBetter      sortedIndex[*types.PendingBet]
}

func newPendingBetStore() *PendingBetStore {
	ps := &PendingBetStore{
		byUUID: make(map[uuid.UUID]*types.PendingBet),
	}
	ps.byGameWincase.less = func(a, b *types.PendingBet) bool {
		if c := uuidLess(a.GameUUID, b.GameUUID); c != 0 {
			return c < 0
		}
		if a.Data.Wincase != b.Data.Wincase {
			return a.Data.Wincase.Less(b.Data.Wincase)
		}
		return a.ID < b.ID
	}
	ps.byBetter.less = func(a, b *types.PendingBet) bool {
		if a.Data.Better != b.Data.Better {
			return a.Data.Better < b.Data.Better
		}
		return a.ID < b.ID
	}

	return ps
}

// Create inserts a pending bet built by init into every index.
func (ps *PendingBetStore) Create(init func(*types.PendingBet)) *types.PendingBet {
	b := &types.PendingBet{}
	init(b)
	ps.nextID++
	b.ID = ps.nextID

	ps.byUUID[b.Data.UUID] = b
	ps.byGameWincase.insert(b)
	ps.byBetter.insert(b)

	return b
}

// Update applies mutate to the bet. Only the rest stake is mutable, so
// no index keys move.
func (ps *PendingBetStore) Update(b *types.PendingBet, mutate func(*types.PendingBet)) {
	mutate(b)
}

// Remove deletes the bet from every index.
func (ps *PendingBetStore) Remove(b *types.PendingBet) {
	delete(ps.byUUID, b.Data.UUID)
	ps.byGameWincase.remove(b)
	ps.byBetter.remove(b)
}

// FindByUUID returns the bet or nil.
func (ps *PendingBetStore) FindByUUID(id uuid.UUID) *types.PendingBet {
	return ps.byUUID[id]
}

// GetByGameWincase returns the game's pending bets on one wincase in
// FIFO creation order; this ordering is the matcher's fairness
// guarantee among equal-odds bets.
func (ps *PendingBetStore) GetByGameWincase(game uuid.UUID, w types.Wincase) []*types.PendingBet {
	return ps.byGameWincase.between(
		func(b *types.PendingBet) bool {
			if c := uuidLess(b.GameUUID, game); c != 0 {
				return c > 0
			}
			return !b.Data.Wincase.Less(w)
		},
		func(b *types.PendingBet) bool {
			if c := uuidLess(b.GameUUID, game); c != 0 {
				return c > 0
			}
			return w.Less(b.Data.Wincase)
		},
	)
}

// GetByGame returns every pending bet against a game, ordered by
// wincase then creation.
func (ps *PendingBetStore) GetByGame(game uuid.UUID) []*types.PendingBet {
	return ps.byGameWincase.between(
		func(b *types.PendingBet) bool { return uuidLess(b.GameUUID, game) >= 0 },
		func(b *types.PendingBet) bool { return uuidLess(b.GameUUID, game) > 0 },
	)
}

// GetByBetter returns an account's pending bets in creation order.
func (ps *PendingBetStore) GetByBetter(better string) []*types.PendingBet {
	return ps.byBetter.between(
		func(b *types.PendingBet) bool { return b.Data.Better >= better },
		func(b *types.PendingBet) bool { return b.Data.Better > better },
	)
}

// Count returns the number of pending bets in the book.
func (ps *PendingBetStore) Count() int { return len(ps.byUUID) }
