package store

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/openwager/betchain/pkg/types"
)

func uuidLess(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

// GameStore is the game arena plus ordered indices by start time and by
// auto-resolve deadline, both tie-broken by id so block triggers walk
// eligible games in a stable order.
type GameStore struct {
	byUUID map[uuid.UUID]*types.Game
	byName map[string]uuid.UUID
	nextID int64

	byStart       sortedIndex[*types.Game]
	byAutoResolve sortedIndex[*types.Game]
}

func newGameStore() *GameStore {
	gs := &GameStore{
		byUUID: make(map[uuid.UUID]*types.Game),
		byName: make(map[string]uuid.UUID),
	}
	gs.byStart.less = func(a, b *types.Game) bool {
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.ID < b.ID
	}
	gs.byAutoResolve.less = func(a, b *types.Game) bool {
		if !a.AutoResolveTime.Equal(b.AutoResolveTime) {
			return a.AutoResolveTime.Before(b.AutoResolveTime)
		}
		return a.ID < b.ID
	}

	return gs
}

// Create inserts a game built by init into every index.
func (gs *GameStore) Create(init func(*types.Game)) *types.Game {
	g := &types.Game{}
	init(g)
	gs.nextID++
	g.ID = gs.nextID

	gs.byUUID[g.UUID] = g
	gs.byName[g.Name] = g.UUID
	gs.byStart.insert(g)
	gs.byAutoResolve.insert(g)

	return g
}

// Update applies mutate to the game, re-slotting the time indices if
// the mutation moved its keys. Direct field mutation outside this path
// is forbidden.
func (gs *GameStore) Update(g *types.Game, mutate func(*types.Game)) {
	gs.byStart.remove(g)
	gs.byAutoResolve.remove(g)
	mutate(g)
	gs.byStart.insert(g)
	gs.byAutoResolve.insert(g)
}

// Remove deletes the game from every index.
func (gs *GameStore) Remove(g *types.Game) {
	delete(gs.byUUID, g.UUID)
	delete(gs.byName, g.Name)
	gs.byStart.remove(g)
	gs.byAutoResolve.remove(g)
}

// FindByUUID returns the game or nil.
func (gs *GameStore) FindByUUID(id uuid.UUID) *types.Game {
	return gs.byUUID[id]
}

// ExistsByName reports whether a game with the given name exists.
func (gs *GameStore) ExistsByName(name string) bool {
	_, ok := gs.byName[name]
	return ok
}

// GamesToStart returns games still created whose start time has been
// reached, ascending by start time then id.
func (gs *GameStore) GamesToStart(now time.Time) []*types.Game {
	due := gs.byStart.between(
		func(*types.Game) bool { return true },
		func(g *types.Game) bool { return g.Start.After(now) },
	)

	out := due[:0:0]
	for _, g := range due {
		if g.Status == types.GameCreated {
			out = append(out, g)
		}
	}

	return out
}

// GamesToAutoResolve returns games whose auto-resolve deadline has
// elapsed, ascending by deadline then id. Finished games cleared their
// deadline and never appear.
func (gs *GameStore) GamesToAutoResolve(now time.Time) []*types.Game {
	return gs.byAutoResolve.between(
		func(g *types.Game) bool { return !g.AutoResolveTime.IsZero() },
		func(g *types.Game) bool { return g.AutoResolveTime.After(now) },
	)
}

// GamesToResolve returns finished games whose resolve window has
// closed, ascending by id.
func (gs *GameStore) GamesToResolve(now time.Time) []*types.Game {
	var out []*types.Game
	for _, g := range gs.All() {
		if g.Status != types.GameFinished {
			continue
		}
		if g.BetsResolveTime.IsZero() || g.BetsResolveTime.After(now) {
			continue
		}
		out = append(out, g)
	}

	return out
}

// All returns every game ascending by id.
func (gs *GameStore) All() []*types.Game {
	out := make([]*types.Game, 0, len(gs.byUUID))
	out = append(out, gs.byStart.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}
