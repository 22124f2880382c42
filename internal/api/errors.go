// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/newsreel/internal/recommend"
)

// Client-facing error messages.
const (
	MsgInvalidJSON       = "Invalid JSON format."
	MsgMissingUserID     = "Missing 'user_id' in request."
	MsgMissingK          = "Missing 'k' in request."
	MsgNotIntegers       = "'user_id' and 'k' must be integers."
	MsgUnknownUser       = "Unknown user."
	MsgPredictionFailed  = "Failed to generate recommendations."
	MsgModelNotReady     = "Model is not ready."
	MsgEvaluationFailed  = "Failed to evaluate model."
	MsgTrainingRunning   = "Training already in progress."
	MsgEvaluateThrottled = "Too many evaluation requests."
	MsgRateLimited       = "Too many requests."
)

// errRequestBodyTooLarge is returned by readBody when the limit is hit.
var errRequestBodyTooLarge = errors.New("request body too large")

// predictionStatus maps an engine error to a status code and message.
func predictionStatus(err error) (int, string) {
	switch {
	case errors.Is(err, recommend.ErrUnknownUser):
		return http.StatusNotFound, MsgUnknownUser
	case errors.Is(err, recommend.ErrModelNotReady):
		return http.StatusServiceUnavailable, MsgModelNotReady
	default:
		return http.StatusInternalServerError, MsgPredictionFailed
	}
}
