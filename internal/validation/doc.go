// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

// Package validation validates decoded API requests with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata, so building one per request would be wasteful. Field names in
// messages come from the json tag, so clients see the names they sent:
//
//	type PredictRequest struct {
//	    UserID int `json:"user_id" validate:"gte=0"`
//	    K      int `json:"k" validate:"gte=0,lte=1000"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, verr.Error())
//	    return
//	}
package validation
