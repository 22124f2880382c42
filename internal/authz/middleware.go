// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package authz

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/newsreel/internal/auth"
	"github.com/tomtom215/newsreel/internal/logging"
	"github.com/tomtom215/newsreel/internal/metrics"
)

// Authorize returns middleware that requires permission for action on
// object. It must run after auth.Middleware.
func (e *Enforcer) Authorize(object, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := auth.SubjectFromContext(r.Context())
			if subject == nil {
				metrics.RecordAuthzDecision(object, action, "denied")
				writeError(w, http.StatusForbidden, "Forbidden.")
				return
			}

			allowed, err := e.EnforceWithRoles(subject.ID, subject.Roles, object, action)
			if err != nil {
				metrics.RecordAuthzDecision(object, action, "error")
				logging.Ctx(r.Context()).Error().Err(err).Msg("authorization error")
				writeError(w, http.StatusInternalServerError, "Internal server error.")
				return
			}
			if !allowed {
				metrics.RecordAuthzDecision(object, action, "denied")
				logging.Ctx(r.Context()).Info().
					Str("subject", subject.ID).
					Strs("roles", subject.Roles).
					Str("object", object).
					Str("action", action).
					Msg("authorization denied")
				writeError(w, http.StatusForbidden, "Forbidden.")
				return
			}

			metrics.RecordAuthzDecision(object, action, "allowed")
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	body, _ := json.Marshal(map[string]string{ //nolint:errcheck // static map always marshals
		"status":  "error",
		"message": message,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
