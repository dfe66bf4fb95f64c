// Package health provides HTTP health and readiness check handlers.
//
// The package exposes three endpoints:
//
//   - /health  — service status plus an availability flag for each optional
//     collaborator (grammar service, vocabulary matcher), so a caller can
//     detect degraded mode.
//   - /healthz — liveness probe; always returns 200 OK.
//   - /readyz  — readiness probe; returns 200 only when all registered
//     [Checker] functions pass.
//
// Responses are JSON objects with a top-level "status" field and either a
// "services" map of availability flags (/health) or a "checks" map of named
// check results (/readyz).
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// checkTimeout is the maximum time a single readiness check may take before
// the context is cancelled.
const checkTimeout = 5 * time.Second

// Service is a named optional collaborator whose availability is reported by
// the /health endpoint. Available must be cheap and must not block.
type Service struct {
	// Name is the key under which the flag appears in the JSON response
	// (e.g., "grammar_service", "vocabulary").
	Name string

	// Available reports whether the collaborator is configured and usable.
	Available func() bool
}

// Checker is a named readiness check function. The Check function should
// return nil when the dependency is healthy and a non-nil error describing
// the failure otherwise.
type Checker struct {
	// Name is a short, human-readable label for this check. It appears as a
	// key in the JSON response.
	Name string

	// Check probes the dependency. It must respect context cancellation.
	Check func(ctx context.Context) error
}

// healthResult is the JSON response body for the /health endpoint.
type healthResult struct {
	Status   string          `json:"status"`
	Services map[string]bool `json:"services,omitempty"`
}

// readyResult is the JSON response body for the liveness/readiness probes.
type readyResult struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler serves the health endpoints. It is safe for concurrent use; the
// service and checker lists are fixed at construction time.
type Handler struct {
	services []Service
	checkers []Checker
}

// New creates a [Handler] reporting the given collaborator services on
// /health and evaluating the given checkers on each /readyz request.
// Checkers are evaluated sequentially in the order provided.
func New(services []Service, checkers ...Checker) *Handler {
	s := make([]Service, len(services))
	copy(s, services)
	c := make([]Checker, len(checkers))
	copy(c, checkers)
	return &Handler{services: s, checkers: c}
}

// Health reports overall service status with per-collaborator availability
// flags. A missing collaborator means degraded operation, not failure, so
// the status is "healthy" whenever the process can serve the request.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	services := make(map[string]bool, len(h.services))
	for _, s := range h.services {
		services[s.Name] = s.Available()
	}
	writeJSON(w, http.StatusOK, healthResult{
		Status:   "healthy",
		Services: services,
	})
}

// Healthz is a liveness probe that always returns 200 OK. A running process
// that can serve HTTP is considered alive.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, readyResult{Status: "ok"})
}

// Readyz is a readiness probe that returns 200 only when every registered
// [Checker] passes. Each checker is given a context with a [checkTimeout]
// deadline derived from the request context.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(h.checkers))
	allOK := true

	for _, c := range h.checkers {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := c.Check(ctx)
		cancel()

		if err != nil {
			checks[c.Name] = "fail: " + err.Error()
			allOK = false
		} else {
			checks[c.Name] = "ok"
		}
	}

	res := readyResult{
		Status: "ok",
		Checks: checks,
	}
	status := http.StatusOK
	if !allOK {
		res.Status = "fail"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, res)
}

// Register adds the /health, /healthz, and /readyz routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// writeJSON encodes v as JSON and writes it with the given status code. On
// encoding failure it falls back to a plain-text 500 response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
	}
}
