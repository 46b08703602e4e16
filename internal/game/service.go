// Package game owns the game entity lifecycle: creation with market
// validation, market and start-time updates, and the created ->
// started -> finished state machine.
package game

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/events"
	"github.com/openwager/betchain/internal/store"
	"github.com/openwager/betchain/pkg/types"
)

// Service mutates game records through the store's indexed paths.
type Service struct {
	store    *store.Store
	recorder *events.Recorder
	logger   *zap.Logger
}

// NewService creates a game service.
func NewService(st *store.Store, rec *events.Recorder, logger *zap.Logger) *Service {
	return &Service{store: st, recorder: rec, logger: logger}
}

// CreateParams carries everything needed to create a game.
type CreateParams struct {
	UUID             uuid.UUID
	Name             string
	Moderator        string
	Kind             types.GameKind
	Start            time.Time
	AutoResolveDelay time.Duration
	Markets          []types.Market
}

// Create validates the market set for the game kind and inserts the
// game in `created` status with its auto-resolve deadline armed.
func (s *Service) Create(p CreateParams) (*types.Game, error) {
	if err := ValidateMarkets(p.Kind, p.Markets); err != nil {
		return nil, err
	}

	now := s.store.HeadBlockTime()
	markets := sortedMarkets(p.Markets)

	g := s.store.Games.Create(func(g *types.Game) {
		g.UUID = p.UUID
		g.Name = p.Name
		g.Moderator = p.Moderator
		g.Kind = p.Kind
		g.Start = p.Start
		g.LastUpdate = now
		g.AutoResolveTime = p.Start.Add(p.AutoResolveDelay)
		g.Status = types.GameCreated
		g.Markets = markets
	})

	s.logger.Info("game-created",
		zap.String("game-uuid", g.UUID.String()),
		zap.String("name", g.Name),
		zap.Time("start", g.Start),
		zap.Int("markets", len(g.Markets)))

	return g, nil
}

// UpdateMarkets replaces the game's market set.
func (s *Service) UpdateMarkets(g *types.Game, markets []types.Market) error {
	if err := ValidateMarkets(g.Kind, markets); err != nil {
		return err
	}

	sorted := sortedMarkets(markets)
	now := s.store.HeadBlockTime()

	s.store.Games.Update(g, func(g *types.Game) {
		g.Markets = sorted
		g.LastUpdate = now
	})

	return nil
}

// UpdateStartTime moves the scheduled start, shifting the auto-resolve
// deadline by the same distance.
func (s *Service) UpdateStartTime(g *types.Game, start time.Time) {
	delay := g.AutoResolveTime.Sub(g.Start)
	now := s.store.HeadBlockTime()

	s.store.Games.Update(g, func(g *types.Game) {
		g.Start = start
		g.AutoResolveTime = start.Add(delay)
		g.LastUpdate = now
	})
}

// Start transitions a created game to started. This is the sole path
// by which a game leaves `created`.
func (s *Service) Start(g *types.Game) {
	s.transition(g, types.GameStarted, func(*types.Game) {})
}

// Finish commits the result set: status becomes finished, the resolve
// window opens, and the auto-resolve deadline no longer applies.
// Legal while started (first posting) or finished (re-posting inside
// the resolve window); the evaluator enforces those preconditions.
func (s *Service) Finish(g *types.Game, results []types.Wincase) {
	sorted := make([]types.Wincase, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	resolve := s.store.HeadBlockTime().Add(s.store.ResolveDelay())

	s.transition(g, types.GameFinished, func(g *types.Game) {
		g.Results = sorted
		g.AutoResolveTime = time.Time{}
		if g.BetsResolveTime.IsZero() {
			g.BetsResolveTime = resolve
		}
	})
}

func (s *Service) transition(g *types.Game, to types.GameStatus, mutate func(*types.Game)) {
	from := g.Status
	now := s.store.HeadBlockTime()

	s.store.Games.Update(g, func(g *types.Game) {
		g.Status = to
		g.LastUpdate = now
		mutate(g)
	})

	if from != to {
		s.recorder.Emit(events.GameStatusChanged{GameUUID: g.UUID, OldStatus: from, NewStatus: to})
	}

	s.logger.Debug("game-status-changed",
		zap.String("game-uuid", g.UUID.String()),
		zap.Stringer("from", from),
		zap.Stringer("to", to))
}

func sortedMarkets(markets []types.Market) []types.Market {
	out := make([]types.Market, len(markets))
	copy(out, markets)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}
