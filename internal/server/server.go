// Package server implements the sayright HTTP API.
//
// Routes:
//
//   - POST /analyze-text   — correct a single sentence.
//   - POST /analyze-batch  — correct several sentences concurrently.
//   - GET  /analyze-stream — websocket: one analysis result per text message.
//   - GET  /health         — service status with collaborator availability.
//   - GET  /healthz        — liveness probe.
//   - GET  /readyz         — readiness probe.
//   - GET  /metrics        — Prometheus scrape endpoint.
//
// All request processing is synchronous and per-request; the server holds no
// mutable state between requests beyond metric instruments.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrWong99/sayright/internal/engine"
	"github.com/MrWong99/sayright/internal/health"
	"github.com/MrWong99/sayright/internal/observe"
)

// Server wires the correction engine into the HTTP API.
type Server struct {
	engine  *engine.Engine
	metrics *observe.Metrics
	httpSrv *http.Server
}

// New creates a Server listening on addr, serving the given engine.
// The health handler is registered alongside the API routes, and every route
// passes through the observability middleware.
func New(addr string, eng *engine.Engine, m *observe.Metrics, h *health.Handler) *Server {
	s := &Server{
		engine:  eng,
		metrics: m,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze-text", s.handleAnalyze)
	mux.HandleFunc("POST /analyze-batch", s.handleAnalyzeBatch)
	mux.HandleFunc("GET /analyze-stream", s.handleAnalyzeStream)
	mux.Handle("GET /metrics", promhttp.Handler())
	h.Register(mux)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           observe.Middleware(m)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the fully assembled HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Run serves HTTP until ctx is cancelled or the listener fails. On ctx
// cancellation it returns nil; call [Server.Shutdown] to drain connections.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight requests
// up to the deadline carried by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
