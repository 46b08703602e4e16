// Package httpserver is the engine's outward HTTP surface: metrics,
// health probes, state queries, operation submission and the event
// feed. Queries read snapshots; nothing here mutates engine state
// directly.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/openwager/betchain/pkg/healthprobe"
)

// Server provides HTTP endpoints for metrics, health checks and the
// engine API.
type Server struct {
	server        *http.Server
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
}

// Config holds server configuration.
type Config struct {
	Port          string
	Logger        *zap.Logger
	HealthChecker *healthprobe.HealthChecker

	// Engine API; routes are only mounted when set.
	EngineHandler *EngineHandler

	// Event feed WebSocket endpoint; mounted when set.
	FeedHandler http.HandlerFunc
}

// New creates a new HTTP server.
func New(cfg *Config) *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Routes
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/health", cfg.HealthChecker.Health())
	r.Get("/ready", cfg.HealthChecker.Ready())

	if cfg.EngineHandler != nil {
		h := cfg.EngineHandler
		r.Route("/api", func(r chi.Router) {
			r.Get("/games", h.HandleListGames)
			r.Get("/games/{uuid}", h.HandleGame)
			r.Get("/games/{uuid}/pending", h.HandlePendingBets)
			r.Get("/games/{uuid}/matched", h.HandleMatchedBets)
			r.Get("/games/{uuid}/winners", h.HandleWinners)
			r.Get("/accounts/{account}/balance", h.HandleBalance)
			r.Post("/operations", h.HandleSubmitOp)
		})
	}

	if cfg.FeedHandler != nil {
		r.Get("/ws", cfg.FeedHandler)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{
		server:        server,
		logger:        cfg.Logger,
		healthChecker: cfg.HealthChecker,
	}
}

// Start starts the HTTP server.
// This is a blocking call that returns when the server stops or encounters an error.
func (s *Server) Start() error {
	s.logger.Info("http-server-starting", zap.String("addr", s.server.Addr))

	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http-server-shutting-down")

	err := s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("http-server-shutdown-complete")
	return nil
}
