// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/newsreel/internal/auth"
	"github.com/tomtom215/newsreel/internal/authz"
	"github.com/tomtom215/newsreel/internal/middleware"
)

// Router wires handlers to routes with their middleware.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	authenticator auth.Authenticator
	enforcer      *authz.Enforcer
}

// NewRouter creates a router.
func NewRouter(handler *Handler, chiMW *ChiMiddleware, authenticator auth.Authenticator, enforcer *authz.Enforcer) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMW,
		authenticator: authenticator,
		enforcer:      enforcer,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(middleware.AccessLog)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Health probes are unauthenticated.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(auth.Middleware(router.authenticator))

		predict := router.enforcer.Authorize(authz.ObjectRecommendations, authz.ActionPredict)
		r.With(predict).Post("/api/predict_function", router.handler.Predict)
		r.With(predict).Post("/api/v1/recommendations", router.handler.Predict)

		r.Route("/api/v1/model", func(r chi.Router) {
			r.With(router.enforcer.Authorize(authz.ObjectModel, authz.ActionRead)).
				Get("/", router.handler.ModelStatus)
			r.With(router.enforcer.Authorize(authz.ObjectModel, authz.ActionEvaluate)).
				Post("/evaluate", router.handler.Evaluate)
			r.With(router.enforcer.Authorize(authz.ObjectModel, authz.ActionRetrain)).
				Post("/retrain", router.handler.Retrain)
		})
	})

	return r
}
