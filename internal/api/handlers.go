// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package api

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/newsreel/internal/config"
	"github.com/tomtom215/newsreel/internal/recommend"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker reports the health of the event transport.
type HealthChecker interface {
	Health(ctx context.Context) error
	Transport() string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_predict.go: recommendation endpoints
//   - handlers_health.go: health and readiness probes
//   - handlers_model.go: model status, evaluation and retraining
type Handler struct {
	engine      *recommend.Engine
	config      *config.Config
	db          Pinger        // optional
	events      HealthChecker // optional
	evalLimiter *rate.Limiter
	startTime   time.Time
}

// NewHandler creates the API handler. The database and event bus are
// attached with SetDatabase and SetEventBus when present.
func NewHandler(engine *recommend.Engine, cfg *config.Config) *Handler {
	limit := rate.Limit(cfg.Security.EvaluateRate)
	if cfg.Security.EvaluateRate <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Security.EvaluateBurst
	if burst < 1 {
		burst = 1
	}

	return &Handler{
		engine:      engine,
		config:      cfg,
		evalLimiter: rate.NewLimiter(limit, burst),
		startTime:   time.Now(),
	}
}

// SetDatabase attaches the data source checked by readiness probes.
func (h *Handler) SetDatabase(db Pinger) {
	h.db = db
}

// SetEventBus attaches the event transport reported by health probes.
func (h *Handler) SetEventBus(events HealthChecker) {
	h.events = events
}
