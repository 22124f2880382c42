// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/newsreel/internal/logging"
	"github.com/tomtom215/newsreel/internal/recommend"
	"github.com/tomtom215/newsreel/internal/validation"
)

// PredictResponse is the payload of a successful prediction.
type PredictResponse struct {
	Recommendations []int  `json:"recommendations" example:"10,11,3"`
	ModelType       string `json:"model_type" example:"hybrid"`
	Version         string `json:"version" example:"1.0"`
}

// Predict handles recommendation requests
//
// @Summary Recommend articles for a user
// @Description Returns the k highest-scored articles for a user seen in training. user_id and k may be JSON integers or decimal strings.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body PredictRequest true "User and list length"
// @Success 200 {object} APIResponse{data=PredictResponse} "Recommendations generated"
// @Failure 400 {object} APIResponse "Malformed request"
// @Failure 401 {object} APIResponse "Missing or invalid credentials"
// @Failure 404 {object} APIResponse "Unknown user"
// @Failure 500 {object} APIResponse "Prediction failed"
// @Failure 503 {object} APIResponse "No model trained yet"
// @Security FunctionKey
// @Security BearerAuth
// @Router /predict_function [post]
// @Router /v1/recommendations [post]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.Ctx(ctx)
	logger.Info().Msg("recommendation request received")

	body, err := readBody(w, r)
	if err != nil {
		if errors.Is(err, errRequestBodyTooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
			return
		}
		respondError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	req, msg := parsePredictRequest(body)
	if req == nil {
		respondError(w, http.StatusBadRequest, msg)
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

	resp, err := h.engine.Recommend(ctx, recommend.Request{
		UserID:    req.UserID,
		K:         req.K,
		RequestID: logging.RequestIDFromContext(ctx),
	})
	if err != nil {
		status, msg := predictionStatus(err)
		if status == http.StatusInternalServerError {
			logger.Error().Err(err).Int("user_id", req.UserID).Int("k", req.K).Msg("prediction failed")
		}
		respondError(w, status, msg)
		return
	}

	respondSuccess(w, PredictResponse{
		Recommendations: resp.Recommendations,
		ModelType:       resp.ModelType,
		Version:         resp.Version,
	})
}
