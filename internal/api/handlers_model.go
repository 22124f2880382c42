// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/newsreel/internal/logging"
	"github.com/tomtom215/newsreel/internal/metrics"
	"github.com/tomtom215/newsreel/internal/recommend"
	"github.com/tomtom215/newsreel/internal/validation"
)

// ModelInfo is the payload of the model status endpoint.
type ModelInfo struct {
	Model      recommend.ModelStatus `json:"model"`
	Engine     recommend.EngineStats `json:"engine"`
	ModelType  string                `json:"model_type" example:"hybrid"`
	APIVersion string                `json:"version" example:"1.0"`
}

// RetrainAccepted is the payload of an accepted retrain request.
type RetrainAccepted struct {
	Accepted       bool `json:"accepted"`
	CurrentVersion int  `json:"current_version"`
}

// ModelStatus handles model status requests
//
// @Summary Get serving model status
// @Description Returns the serving model version, training data sizes, candidate count, alpha, training time and engine counters.
// @Tags Model
// @Produce json
// @Success 200 {object} APIResponse{data=ModelInfo} "Model status"
// @Security FunctionKey
// @Security BearerAuth
// @Router /v1/model [get]
func (h *Handler) ModelStatus(w http.ResponseWriter, _ *http.Request) {
	cfg := h.engine.Config()
	respondSuccess(w, ModelInfo{
		Model:      h.engine.Status(),
		Engine:     h.engine.Stats(),
		ModelType:  "hybrid",
		APIVersion: cfg.Version,
	})
}

// Evaluate handles hit-rate evaluation requests
//
// @Summary Evaluate the serving model
// @Description Computes hit rate at k over a seeded sample of held-out users. Omitted fields take the configured defaults. Throttled.
// @Tags Model
// @Accept json
// @Produce json
// @Param request body EvaluateRequest false "Evaluation parameters"
// @Success 200 {object} APIResponse{data=recommend.EvaluationResult} "Evaluation result"
// @Failure 400 {object} APIResponse "Malformed request"
// @Failure 403 {object} APIResponse "Admin role required"
// @Failure 429 {object} APIResponse "Throttled"
// @Failure 503 {object} APIResponse "No model trained yet"
// @Security FunctionKey
// @Security BearerAuth
// @Router /v1/model/evaluate [post]
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if !h.evalLimiter.Allow() {
		metrics.RecordRateLimitHit("/api/v1/model/evaluate")
		respondError(w, http.StatusTooManyRequests, MsgEvaluateThrottled)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}
	req, err := parseEvaluateRequest(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		respondJSON(w, http.StatusBadRequest, &APIResponse{
			Status:  StatusError,
			Message: verr.Error(),
			Details: verr.Fields,
		})
		return
	}

	result, err := h.engine.Evaluate(r.Context(), recommend.EvaluateRequest{
		K:           req.K,
		SampleUsers: req.SampleUsers,
		Seed:        req.Seed,
	})
	if err != nil {
		if errors.Is(err, recommend.ErrModelNotReady) {
			respondError(w, http.StatusServiceUnavailable, MsgModelNotReady)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("evaluation failed")
		respondError(w, http.StatusInternalServerError, MsgEvaluationFailed)
		return
	}

	respondSuccess(w, result)
}

// Retrain handles retrain requests
//
// @Summary Rebuild the model
// @Description Starts an asynchronous rebuild from the configured data. The current model keeps serving until the new one is published.
// @Tags Model
// @Produce json
// @Success 202 {object} APIResponse{data=RetrainAccepted} "Training started"
// @Failure 403 {object} APIResponse "Admin role required"
// @Failure 409 {object} APIResponse "Training already running"
// @Security FunctionKey
// @Security BearerAuth
// @Router /v1/model/retrain [post]
func (h *Handler) Retrain(w http.ResponseWriter, r *http.Request) {
	current := h.engine.Status().Version

	// Training outlives the request but keeps its logging values.
	if !h.engine.StartTrain(context.WithoutCancel(r.Context())) {
		respondError(w, http.StatusConflict, MsgTrainingRunning)
		return
	}
	logging.Ctx(r.Context()).Info().Int("current_version", current).Msg("retrain started")

	respondJSON(w, http.StatusAccepted, &APIResponse{
		Status: StatusSuccess,
		Data: RetrainAccepted{
			Accepted:       true,
			CurrentVersion: current,
		},
	})
}
