// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsreel/internal/logging"
)

// AccessLog logs one line per request. Server errors log at error level,
// client errors at warn and everything else at debug, so a healthy service
// stays quiet at the default info level.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)

		next.ServeHTTP(sw, r)

		logger := logging.Ctx(r.Context())
		var event *zerolog.Event
		switch {
		case sw.status >= http.StatusInternalServerError:
			event = logger.Error()
		case sw.status >= http.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Debug()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", routePattern(r)).
			Int("status", sw.status).
			Int("bytes", sw.bytes).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("http request")
	})
}
