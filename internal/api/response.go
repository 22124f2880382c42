// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/newsreel/internal/logging"
)

// Response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	// Status is "success" or "error".
	Status string `json:"status" example:"success"`

	// Message describes the failure. Empty on success.
	Message string `json:"message,omitempty" example:"Unknown user."`

	// Data is the payload. Absent on error.
	Data interface{} `json:"data,omitempty"`

	// Details carries validation failures.
	Details interface{} `json:"details,omitempty"`
}

// respondJSON writes response with status.
func respondJSON(w http.ResponseWriter, status int, response *APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess writes a 200 response carrying data.
func respondSuccess(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, &APIResponse{Status: StatusSuccess, Data: data})
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, &APIResponse{Status: StatusError, Message: message})
}
