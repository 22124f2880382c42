// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getGaugeValue extracts the value from a Prometheus gauge
func getGaugeValue(gauge prometheus.Gauge) float64 {
	var m io_prometheus_client.Metric
	if err := gauge.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name    string
		outcome string
	}{
		{name: "success", outcome: "success"},
		{name: "unknown user", outcome: "unknown_user"},
		{name: "model not ready", outcome: "not_ready"},
		{name: "error", outcome: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.outcome))
			RecordRecommendation(tt.outcome, 3*time.Millisecond)
			after := testutil.ToFloat64(RecommendRequests.WithLabelValues(tt.outcome))
			if after != before+1 {
				t.Errorf("recommend_requests_total{outcome=%q} = %v, want %v", tt.outcome, after, before+1)
			}
		})
	}
}

func TestRecordRecommendCache(t *testing.T) {
	hits := testutil.ToFloat64(RecommendCacheHits)
	misses := testutil.ToFloat64(RecommendCacheMisses)

	RecordRecommendCache(true)
	RecordRecommendCache(false)
	RecordRecommendCache(false)

	if got := testutil.ToFloat64(RecommendCacheHits); got != hits+1 {
		t.Errorf("cache hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(RecommendCacheMisses); got != misses+2 {
		t.Errorf("cache misses = %v, want %v", got, misses+2)
	}
}

func TestRecordTraining(t *testing.T) {
	success := testutil.ToFloat64(TrainingTotal.WithLabelValues("success"))
	failure := testutil.ToFloat64(TrainingTotal.WithLabelValues("failure"))

	RecordTraining(2*time.Second, nil)
	RecordTraining(time.Second, errors.New("load clicks: file not found"))

	if got := testutil.ToFloat64(TrainingTotal.WithLabelValues("success")); got != success+1 {
		t.Errorf("training success = %v, want %v", got, success+1)
	}
	if got := testutil.ToFloat64(TrainingTotal.WithLabelValues("failure")); got != failure+1 {
		t.Errorf("training failure = %v, want %v", got, failure+1)
	}
}

func TestSetModelInfo(t *testing.T) {
	SetModelInfo(3, 120, 4500)

	if got := getGaugeValue(ModelVersion); got != 3 {
		t.Errorf("model version = %v, want 3", got)
	}
	if got := getGaugeValue(ModelUsers); got != 120 {
		t.Errorf("model users = %v, want 120", got)
	}
	if got := getGaugeValue(ModelCandidates); got != 4500 {
		t.Errorf("model candidates = %v, want 4500", got)
	}
}

func TestRecordHitRate(t *testing.T) {
	RecordHitRate(5, 0.25)
	if got := testutil.ToFloat64(HitRate.WithLabelValues("5")); got != 0.25 {
		t.Errorf("hit rate = %v, want 0.25", got)
	}
}

func TestRecordCircuitBreakerTransition(t *testing.T) {
	tests := []struct {
		to   string
		want float64
	}{
		{to: "open", want: 2},
		{to: "half-open", want: 1},
		{to: "closed", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.to, func(t *testing.T) {
			RecordCircuitBreakerTransition("test-breaker", "closed", tt.to)
			if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")); got != tt.want {
				t.Errorf("breaker state = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordEventPublish(t *testing.T) {
	before := testutil.ToFloat64(EventsPublished.WithLabelValues("recommend.served", "failure"))
	RecordEventPublish("recommend.served", errors.New("nats: timeout"))
	if got := testutil.ToFloat64(EventsPublished.WithLabelValues("recommend.served", "failure")); got != before+1 {
		t.Errorf("events failure = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest_Concurrent(t *testing.T) {
	before := getGaugeValue(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			RecordAPIRequest("POST", "/api/predict_function", "200", time.Millisecond)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := getGaugeValue(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestMetricsLint(t *testing.T) {
	RecordDBQuery("SELECT", "clicks", time.Millisecond, nil)
	RecordSnapshot("load", "miss")
	RecordRateLimitHit("/api/v1/model/evaluate")
	RecordCircuitBreakerRequest("events", "success")

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Errorf("metric %s: %s", p.Metric, p.Text)
	}
}
