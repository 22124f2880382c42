// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/newsreel/internal/logging"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		wantKeep bool
	}{
		{name: "no header", incoming: "", wantKeep: false},
		{name: "upstream id", incoming: "proxy-abc-123", wantKeep: true},
		{name: "oversized id", incoming: strings.Repeat("a", maxRequestIDLength+1), wantKeep: false},
		{name: "control characters", incoming: "abc\ndef", wantKeep: false},
		{name: "spaces", incoming: "abc def", wantKeep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID, logID, correlationID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = GetRequestID(r.Context())
				logID = logging.RequestIDFromContext(r.Context())
				correlationID = logging.CorrelationIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if tt.wantKeep {
				if got != tt.incoming {
					t.Errorf("response id = %q, want %q", got, tt.incoming)
				}
			} else if _, err := uuid.Parse(got); err != nil {
				t.Errorf("response id %q is not a UUID: %v", got, err)
			}

			if ctxID != got || logID != got {
				t.Errorf("context ids = %q/%q, want %q", ctxID, logID, got)
			}
			if correlationID == "" {
				t.Error("correlation id not set")
			}
		})
	}
}

func TestGetRequestIDEmpty(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}
