// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

/*
Package middleware provides the infrastructure HTTP middleware shared by
every route: request ids, Prometheus instrumentation and access logging.

All middleware has the standard chi signature func(http.Handler) http.Handler.
The API router installs them in this order:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)

RequestID accepts a well-formed X-Request-ID from an upstream proxy and
otherwise generates a UUID. The id is echoed in the response header and
stored in the request context, where logging.Ctx picks it up.

PrometheusMetrics labels requests with the chi route pattern rather than
the raw path so that per-user URLs cannot explode label cardinality.
*/
package middleware
