// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/newsreel/internal/config"
	"github.com/tomtom215/newsreel/internal/recommend"
)

// tableScorer returns fixed scores for known users.
type tableScorer struct {
	name   string
	scores map[int]recommend.ScoreMap
	err    error
}

func (s *tableScorer) Name() string { return s.name }

func (s *tableScorer) PredictScores(_ context.Context, userID int) (recommend.ScoreMap, error) {
	if s.err != nil {
		return nil, s.err
	}
	scores, ok := s.scores[userID]
	if !ok {
		return nil, &recommend.UnknownUserError{UserID: userID}
	}
	out := make(recommend.ScoreMap, len(scores))
	for id, v := range scores {
		out[id] = v
	}
	return out, nil
}

var (
	testTrain = []recommend.ClickEvent{
		{UserID: 1, ArticleID: 10, CategoryID: 1},
		{UserID: 2, ArticleID: 11, CategoryID: 2},
	}
	testHeldOut = []recommend.ClickEvent{
		{UserID: 1, ArticleID: 10, CategoryID: 1},
		{UserID: 1, ArticleID: 11, CategoryID: 2},
		{UserID: 2, ArticleID: 12, CategoryID: 1},
	}
)

// newTestModel builds a model over candidates 10, 11 and 12 where user 1
// prefers 11, then 10, then 12.
func newTestModel(t *testing.T, scorerErr error) *recommend.Model {
	t.Helper()
	content := &tableScorer{name: "content", err: scorerErr, scores: map[int]recommend.ScoreMap{
		1: {10: 0.8, 11: 0.9, 12: 0.1},
		2: {10: 0.1, 11: 0.2, 12: 0.9},
	}}
	collaborative := &tableScorer{name: "collaborative", err: scorerErr, scores: map[int]recommend.ScoreMap{
		1: {10: 0.6, 11: 0.7, 12: 0.2},
		2: {10: 0.3, 11: 0.3, 12: 0.8},
	}}
	m, err := recommend.NewModel(content, collaborative, 0.5, testTrain, testHeldOut)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

// staticBuilder returns a fresh model on every Build.
type staticBuilder struct {
	t *testing.T
}

func (b staticBuilder) Build(context.Context) (*recommend.Model, error) {
	return newTestModel(b.t, nil), nil
}

func newTestConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			AuthMode:          "none",
			RateLimitDisabled: true,
			EvaluateRate:      100,
			EvaluateBurst:     10,
		},
	}
}

func newTestEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetBuilder(staticBuilder{t: t})
	return engine
}

// setupTestHandler returns a handler whose engine serves a test model when
// ready is set.
func setupTestHandler(t *testing.T, ready bool) *Handler {
	t.Helper()
	engine := newTestEngine(t)
	if ready {
		engine.SetModel(newTestModel(t, nil))
	}
	return NewHandler(engine, newTestConfig())
}

func doRequest(t *testing.T, h http.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

// decodeResponse decodes the envelope and, when data is non-nil, its data.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) APIResponse {
	t.Helper()
	var raw struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&raw); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return APIResponse{Status: raw.Status, Message: raw.Message}
}
