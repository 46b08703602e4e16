package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/betting"
	"github.com/openwager/betchain/internal/blocktasks"
	"github.com/openwager/betchain/internal/evaluators"
	"github.com/openwager/betchain/internal/events"
	"github.com/openwager/betchain/internal/feed"
	"github.com/openwager/betchain/internal/game"
	"github.com/openwager/betchain/internal/journal"
	"github.com/openwager/betchain/internal/ledger"
	"github.com/openwager/betchain/internal/store"
	"github.com/openwager/betchain/pkg/cache"
	"github.com/openwager/betchain/pkg/config"
	"github.com/openwager/betchain/pkg/healthprobe"
	"github.com/openwager/betchain/pkg/httpserver"
	"github.com/openwager/betchain/pkg/types"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthprobe.New(),
		opQueue:       make(chan any, opQueueSize),
		ctx:           ctx,
		cancel:        cancel,
	}

	// Engine core
	a.store = store.New(cfg.BettingModerator, cfg.ResolveDelay)
	a.ledger = ledger.NewMemory()
	a.recorder = &events.Recorder{}
	a.games = game.NewService(a.store, a.recorder, logger)
	a.betting = betting.NewService(a.store, a.ledger, a.recorder, logger)
	a.matcher = betting.NewMatcher(a.store, a.recorder, logger)
	a.evals = evaluators.New(a.store, a.games, a.betting, a.matcher, a.ledger, logger)

	// Block tasks
	a.startup = blocktasks.NewGamesStartup(a.store, a.games, a.betting, logger)
	a.autoResolve = blocktasks.NewBetsAutoResolving(a.store, a.betting, logger)
	a.resolve = blocktasks.NewBetsResolving(a.store, a.betting, logger)

	// Journal
	j, err := setupJournal(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup journal: %w", err)
	}
	a.journal = j

	// Event feed
	a.hub = feed.NewHub(logger)

	// Response cache
	respCache, err := setupCache(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}
	a.respCache = respCache

	// HTTP surface
	a.httpServer = httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: a.healthChecker,
		EngineHandler: httpserver.NewEngineHandler(a, a, respCache, logger),
		FeedHandler:   a.hub.Handler(),
	})

	return a, nil
}

func setupJournal(cfg *config.Config, logger *zap.Logger) (journal.Journal, error) {
	if cfg.JournalMode == "postgres" {
		pg, err := journal.NewPostgresJournal(&journal.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres journal: %w", err)
		}
		return pg, nil
	}

	return journal.NewConsoleJournal(logger), nil
}

func setupCache(cfg *config.Config, logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: cfg.CacheNumCounters,
		MaxCost:     cfg.CacheMaxCost,
		BufferItems: 64,
		Logger:      logger,
	})
}

// Deposit credits an account before any bets are placed against the
// balance. Exposed for the simulator and tests.
func (a *App) Deposit(account string, amount int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ledger.Deposit(account, types.NewAsset(amount))
}
