// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"outcome"}, // "success", "unknown_user", "not_ready", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time to produce a recommendation list in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_version",
			Help: "Version of the model currently serving",
		},
	)

	ModelUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_users",
			Help: "Number of users known to the serving model",
		},
	)

	ModelCandidates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_candidates",
			Help: "Number of candidate articles in the serving model",
		},
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_training_duration_seconds",
			Help:    "Duration of model builds in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600, 1800},
		},
	)

	TrainingTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_training_total",
			Help: "Total number of model builds",
		},
		[]string{"result"}, // "success", "failure"
	)

	HitRate = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommend_hit_rate",
			Help: "Hit rate at k from the most recent evaluation",
		},
		[]string{"k"},
	)

	SnapshotOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_snapshot_operations_total",
			Help: "Total number of model snapshot store operations",
		},
		[]string{"operation", "result"}, // operation: "load", "save"; result: "hit", "miss", "success", "error"
	)

	// Authorization Metrics
	AuthzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Total number of authorization decisions",
		},
		[]string{"object", "action", "result"}, // result: "allowed", "denied", "error"
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of domain events published",
		},
		[]string{"topic", "result"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of domain events consumed",
		},
		[]string{"topic", "result"}, // result: "ok", "invalid"
	)

	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_dropped_total",
			Help: "Total number of events dropped because the publish queue was full",
		},
		[]string{"topic"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one recommendation call.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordRecommendCache records a result cache lookup.
func RecordRecommendCache(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}

// RecordTraining records a model build.
func RecordTraining(duration time.Duration, err error) {
	TrainingDuration.Observe(duration.Seconds())
	if err != nil {
		TrainingTotal.WithLabelValues("failure").Inc()
		return
	}
	TrainingTotal.WithLabelValues("success").Inc()
}

// SetModelInfo publishes the serving model's shape.
func SetModelInfo(version, users, candidates int) {
	ModelVersion.Set(float64(version))
	ModelUsers.Set(float64(users))
	ModelCandidates.Set(float64(candidates))
}

// RecordHitRate stores the latest evaluation result for k.
func RecordHitRate(k int, rate float64) {
	HitRate.WithLabelValues(strconv.Itoa(k)).Set(rate)
}

// RecordSnapshot records a snapshot store operation.
func RecordSnapshot(operation, result string) {
	SnapshotOperations.WithLabelValues(operation, result).Inc()
}

// RecordAuthzDecision records an authorization decision.
func RecordAuthzDecision(object, action, result string) {
	AuthzDecisions.WithLabelValues(object, action, result).Inc()
}

// RecordEventPublish records a publish attempt for topic.
func RecordEventPublish(topic string, err error) {
	if err != nil {
		EventsPublished.WithLabelValues(topic, "failure").Inc()
		return
	}
	EventsPublished.WithLabelValues(topic, "success").Inc()
}

// RecordEventConsumed records a consumed event.
func RecordEventConsumed(topic, result string) {
	EventsConsumed.WithLabelValues(topic, result).Inc()
}

// RecordEventDropped records an event discarded before publishing.
func RecordEventDropped(topic string) {
	EventsDropped.WithLabelValues(topic).Inc()
}

// RecordCircuitBreakerTransition records a breaker state change. States are
// encoded as 0=closed, 1=half-open, 2=open.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(circuitStateValue(to))
}

// RecordCircuitBreakerRequest records the result of a guarded call.
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

func circuitStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
