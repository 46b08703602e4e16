// Package store is the in-memory indexed record store backing the
// betting engine: one primary arena per entity keyed by identifier plus
// explicit ordered indices. Every mutation goes through the typed
// create/update/remove paths so the indices never drift from the
// arenas. Access is single-writer by contract: the block pipeline is
// strictly sequential.
package store

import (
	"sort"
	"time"
)

// Props is the chain-global state the engine reads: the deterministic
// clock (head block time, never wall clock) and the betting properties
// of record.
type Props struct {
	HeadBlockTime time.Time
	Moderator     string
	ResolveDelay  time.Duration
}

// Store aggregates the entity stores and chain properties.
type Store struct {
	props Props

	Games       *GameStore
	PendingBets *PendingBetStore
	MatchedBets *MatchedBetStore
}

// New creates an empty store with the given betting properties.
func New(moderator string, resolveDelay time.Duration) *Store {
	return &Store{
		props: Props{
			Moderator:    moderator,
			ResolveDelay: resolveDelay,
		},
		Games:       newGameStore(),
		PendingBets: newPendingBetStore(),
		MatchedBets: newMatchedBetStore(),
	}
}

// HeadBlockTime returns the current deterministic clock value.
func (s *Store) HeadBlockTime() time.Time { return s.props.HeadBlockTime }

// SetHeadBlockTime advances the clock; called once per block by the
// pipeline before any trigger or operation runs.
func (s *Store) SetHeadBlockTime(t time.Time) { s.props.HeadBlockTime = t }

// Moderator returns the betting moderator of record.
func (s *Store) Moderator() string { return s.props.Moderator }

// ResolveDelay returns the configured delay between finishing a game
// and closing its resolve window.
func (s *Store) ResolveDelay() time.Duration { return s.props.ResolveDelay }

// sortedIndex is an ordered index over records of one arena. less must
// impose a strict total order (every key ends in the record's unique
// id), which makes binary-search insert and remove exact.
type sortedIndex[T any] struct {
	items []T
	less  func(a, b T) bool
}

func (ix *sortedIndex[T]) insert(v T) {
	i := sort.Search(len(ix.items), func(i int) bool { return ix.less(v, ix.items[i]) })
	ix.items = append(ix.items, v)
	copy(ix.items[i+1:], ix.items[i:])
	ix.items[i] = v
}

func (ix *sortedIndex[T]) remove(v T) {
	i := sort.Search(len(ix.items), func(i int) bool { return !ix.less(ix.items[i], v) })
	if i < len(ix.items) && !ix.less(v, ix.items[i]) {
		ix.items = append(ix.items[:i], ix.items[i+1:]...)
	}
}

// rangeFrom returns the contiguous run of records r with
// !less(r, lower) && !greater-equal(upper)... callers slice with the
// supplied predicates: first index where from(r) is false through the
// first index where to(r) is true.
func (ix *sortedIndex[T]) between(inLower, aboveUpper func(T) bool) []T {
	lo := sort.Search(len(ix.items), func(i int) bool { return inLower(ix.items[i]) })
	hi := sort.Search(len(ix.items), func(i int) bool { return aboveUpper(ix.items[i]) })
	if lo >= hi {
		return nil
	}

	out := make([]T, hi-lo)
	copy(out, ix.items[lo:hi])

	return out
}
