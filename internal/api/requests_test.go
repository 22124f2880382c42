// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package api

import (
	"testing"
)

func TestParseInteger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{`5`, 5, false},
		{`-2`, -2, false},
		{`"17"`, 17, false},
		{`" 8 "`, 8, false},
		{`3.0`, 3, false},
		{`1e2`, 100, false},
		{`3.5`, 0, true},
		{`"3.0"`, 0, true},
		{`"x"`, 0, true},
		{`""`, 0, true},
		{`null`, 0, true},
		{`false`, 0, true},
		{`[1]`, 0, true},
		{`{"n":1}`, 0, true},
		{`1e300`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseInteger([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseInteger(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseInteger(%s) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParsePredictRequest_MissingOrder(t *testing.T) {
	t.Parallel()

	// user_id is reported first when both are missing.
	if _, msg := parsePredictRequest([]byte(`{}`)); msg != MsgMissingUserID {
		t.Errorf("msg = %q, want %q", msg, MsgMissingUserID)
	}
	// Presence is checked before type.
	if _, msg := parsePredictRequest([]byte(`{"user_id": "abc"}`)); msg != MsgMissingK {
		t.Errorf("msg = %q, want %q", msg, MsgMissingK)
	}
}

func TestParseEvaluateRequest(t *testing.T) {
	t.Parallel()

	req, err := parseEvaluateRequest([]byte("  "))
	if err != nil || req.K != nil || req.SampleUsers != nil || req.Seed != nil {
		t.Errorf("empty body = %+v, %v", req, err)
	}
	req, err = parseEvaluateRequest([]byte(`{"k": 10, "sample_users": 50, "seed": 3}`))
	if err != nil || req.K == nil || *req.K != 10 || req.SampleUsers == nil || *req.SampleUsers != 50 || req.Seed == nil || *req.Seed != 3 {
		t.Errorf("parsed = %+v, %v", req, err)
	}

	// Explicit zeros are kept apart from omitted fields.
	req, err = parseEvaluateRequest([]byte(`{"k": 0, "seed": 0}`))
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if req.K == nil || *req.K != 0 || req.Seed == nil || *req.Seed != 0 {
		t.Errorf("explicit zeros = %+v", req)
	}
	if req.SampleUsers != nil {
		t.Errorf("SampleUsers = %v, want nil when omitted", *req.SampleUsers)
	}
}
