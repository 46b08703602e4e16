// Package app wires the engine together and drives the block
// pipeline. All state mutation happens on the pipeline goroutine, one
// block at a time; HTTP queries read copied snapshots under a read
// lock.
package app

import (
	"context"
	"sync"

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
)

const opQueueSize = 1024

// App is the main application orchestrator.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	// mu guards all engine state below. The block pipeline takes the
	// write lock for the duration of one block; queries take the read
	// lock and copy out.
	mu       sync.RWMutex
	store    *store.Store
	ledger   *ledger.Memory
	recorder *events.Recorder
	games    *game.Service
	betting  *betting.Service
	matcher  *betting.Matcher
	evals    *evaluators.Evaluators

	startup     *blocktasks.GamesStartup
	autoResolve *blocktasks.BetsAutoResolving
	resolve     *blocktasks.BetsResolving

	journal journal.Journal
	hub     *feed.Hub

	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	respCache     cache.Cache

	opQueue chan any

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}
