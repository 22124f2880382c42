// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/newsreel/internal/logging"
	"github.com/tomtom215/newsreel/internal/metrics"
)

func TestPrometheusMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/users/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := testutil.ToFloat64(counter); got != before+3 {
		t.Errorf("api_requests_total = %v, want %v", got, before+3)
	}
}

func TestPrometheusMetricsUnmatched(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/known", func(w http.ResponseWriter, r *http.Request) {})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin.php", nil))

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("unmatched counter = %v, want %v", got, before+1)
	}
}

func TestStatusWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  int
		wantBytes int
	}{
		{
			name:     "implicit 200",
			handler:  func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("hello")) },
			wantCode: http.StatusOK, wantBytes: 5,
		},
		{
			name: "first WriteHeader wins",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sw := newStatusWriter(httptest.NewRecorder())
			tt.handler(sw, httptest.NewRequest(http.MethodGet, "/", nil))
			if sw.status != tt.wantCode || sw.bytes != tt.wantBytes {
				t.Errorf("status/bytes = %d/%d, want %d/%d", sw.status, sw.bytes, tt.wantCode, tt.wantBytes)
			}
		})
	}
}

func TestAccessLog(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"success", http.StatusOK, "debug"},
		{"client error", http.StatusBadRequest, "warn"},
		{"server error", http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewTestLogger(&buf)

			handler := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/predict_function", nil)
			req = req.WithContext(logging.ContextWithLogger(req.Context(), logger))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			if !strings.Contains(out, `"level":"`+tt.wantLevel+`"`) {
				t.Errorf("log level: got %s, want %s", out, tt.wantLevel)
			}
			if !strings.Contains(out, `"path":"/api/predict_function"`) {
				t.Errorf("log missing path: %s", out)
			}
		})
	}
}
