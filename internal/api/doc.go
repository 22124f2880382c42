// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

/*
Package api provides the HTTP interface of the recommendation service.

Routes are served by a chi router (see SetupChi):

	POST /api/predict_function          top-k recommendations (legacy route)
	POST /api/v1/recommendations        same handler
	GET  /api/v1/health                 liveness with model version
	GET  /api/v1/health/live            process liveness
	GET  /api/v1/health/ready           503 until a model is serving
	GET  /api/v1/model                  serving model status
	POST /api/v1/model/evaluate         hit rate on held-out clicks (admin)
	POST /api/v1/model/retrain          asynchronous rebuild (admin)
	GET  /metrics                       Prometheus
	GET  /swagger/*                     Swagger UI

Every JSON body uses the envelope

	{"status": "success", "data": {...}}
	{"status": "error", "message": "..."}

Prediction requests accept user_id and k as JSON integers or decimal
strings. Errors map to status codes as follows:

	malformed body, missing or non-integer fields   400
	negative user_id or k                           400
	user absent from training                       404
	no model trained yet                            503
	anything else                                   500

Authentication (none, function key or JWT bearer) and Casbin
authorization are applied per route group; see packages auth and authz.
*/
package api
