package app

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Run starts the application and blocks until shutdown.
func (a *App) Run() error {
	a.logger.Info("application-starting",
		zap.String("moderator", a.cfg.BettingModerator),
		zap.Duration("block-interval", a.cfg.BlockInterval),
		zap.Duration("resolve-delay", a.cfg.ResolveDelay),
		zap.String("log-level", a.cfg.LogLevel))

	// Start HTTP server
	a.wg.Add(1)
	go a.runHTTPServer()

	// Start block pipeline
	a.wg.Add(1)
	go a.runBlockPipeline()

	// Mark as ready
	a.healthChecker.SetReady(true)

	a.logger.Info("application-ready",
		zap.String("http-addr", ":"+a.cfg.HTTPPort))

	// Wait for shutdown signal
	return a.waitForShutdown()
}

func (a *App) runHTTPServer() {
	defer a.wg.Done()
	err := a.httpServer.Start()
	if err != nil {
		a.logger.Error("http-server-error", zap.Error(err))
	}
}

func (a *App) runBlockPipeline() {
	defer a.wg.Done()

	// Genesis block so queries and triggers see a head block time
	// before the first tick.
	a.ProcessBlock(time.Now().UTC())

	ticker := time.NewTicker(a.cfg.BlockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case t := <-ticker.C:
			a.ProcessBlock(t.UTC())
		}
	}
}

func (a *App) waitForShutdown() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info("shutdown-signal-received", zap.String("signal", sig.String()))
	case <-a.ctx.Done():
		a.logger.Info("context-cancelled")
	}

	return a.Shutdown()
}
