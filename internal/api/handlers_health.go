// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status            string  `json:"status" example:"healthy"`
	ModelReady        bool    `json:"model_ready"`
	ModelVersion      int     `json:"model_version"`
	Training          bool    `json:"training"`
	DatabaseConnected bool    `json:"database_connected"`
	EventTransport    string  `json:"event_transport,omitempty" example:"nats"`
	EventsHealthy     bool    `json:"events_healthy"`
	Uptime            float64 `json:"uptime"`
}

// Health handles health check requests
//
// @Summary Get service health
// @Description Reports model, database and event transport state. Always 200 while the process is up; status is "degraded" when a dependency is down or no model is serving.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status"
// @Router /v1/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := h.engine.Status()

	health := HealthStatus{
		Status:            "healthy",
		ModelReady:        status.Ready,
		ModelVersion:      status.Version,
		Training:          status.Training,
		DatabaseConnected: h.db != nil && h.db.Ping(ctx) == nil,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.events != nil {
		health.EventTransport = h.events.Transport()
		health.EventsHealthy = h.events.Health(ctx) == nil
	}

	if !health.ModelReady ||
		(h.db != nil && !health.DatabaseConnected) ||
		(h.events != nil && !health.EventsHealthy) {
		health.Status = "degraded"
	}

	respondSuccess(w, health)
}

// HealthLive handles liveness probe requests
//
// @Summary Liveness probe
// @Description Returns 200 while the process is alive, regardless of dependencies.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Service is alive"
// @Router /v1/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests
//
// @Summary Readiness probe
// @Description Returns 200 once a model is serving, 503 before.
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse "Ready to serve"
// @Failure 503 {object} APIResponse "No model serving"
// @Router /v1/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	status := h.engine.Status()
	data := map[string]interface{}{
		"ready":         status.Ready,
		"model_version": status.Version,
		"training":      status.Training,
	}
	if !status.Ready {
		respondJSON(w, http.StatusServiceUnavailable, &APIResponse{
			Status:  StatusError,
			Message: MsgModelNotReady,
			Data:    data,
		})
		return
	}
	respondSuccess(w, data)
}
