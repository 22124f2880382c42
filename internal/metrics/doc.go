// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry with promauto and are
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Recommendation Metrics:
  - recommend_requests_total: Recommendation calls by outcome (counter)
  - recommend_duration_seconds: Prediction latency (histogram)
  - recommend_cache_hits_total / recommend_cache_misses_total
  - recommend_model_version, recommend_model_users, recommend_model_candidates
  - recommend_training_duration_seconds, recommend_training_total
  - recommend_hit_rate: Last evaluated hit rate (gauge)
  - recommend_snapshot_operations_total: Snapshot store loads and saves

Data Metrics:
  - duckdb_query_duration_seconds, duckdb_query_errors_total

Event Metrics:
  - events_published_total: Published events by topic and result
  - circuit_breaker_state, circuit_breaker_requests_total,
    circuit_breaker_state_transitions_total
*/
package metrics
