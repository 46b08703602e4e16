package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() error {
	a.logger.Info("application-shutting-down")

	a.healthChecker.SetReady(false)

	// Stop the block pipeline before tearing anything else down.
	a.cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server
	err := a.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		a.logger.Error("http-server-shutdown-error", zap.Error(err))
	}

	// Wait for the pipeline and server goroutines
	a.wg.Wait()

	// Close event feed
	err = a.hub.Close()
	if err != nil {
		a.logger.Error("feed-close-error", zap.Error(err))
	}

	// Close journal
	err = a.journal.Close()
	if err != nil {
		a.logger.Error("journal-close-error", zap.Error(err))
	}

	// Close response cache
	a.respCache.Close()

	a.logger.Info("application-shutdown-complete")

	return nil
}
