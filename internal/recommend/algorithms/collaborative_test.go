// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package algorithms

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/newsreel/internal/recommend"
)

func TestCollaborative_PredictScores(t *testing.T) {
	t.Parallel()

	train := []recommend.ClickEvent{
		{UserID: 1, ArticleID: 10, CategoryID: 1},
		{UserID: 1, ArticleID: 11, CategoryID: 2},
		{UserID: 2, ArticleID: 11, CategoryID: 2},
	}
	candidates := []int{10, 11, 50}

	cf, err := NewCollaborative(context.Background(), train, candidates, smallSVDConfig())
	if err != nil {
		t.Fatalf("NewCollaborative() error = %v", err)
	}
	if cf.Name() != "collaborative" {
		t.Errorf("Name() = %q, want collaborative", cf.Name())
	}

	for _, user := range []int{1, 2, 999} {
		scores, err := cf.PredictScores(context.Background(), user)
		if err != nil {
			t.Fatalf("PredictScores(%d) error = %v", user, err)
		}
		if len(scores) != len(candidates) {
			t.Fatalf("PredictScores(%d) returned %d scores, want %d", user, len(scores), len(candidates))
		}
		for _, id := range candidates {
			s, ok := scores[id]
			if !ok {
				t.Errorf("PredictScores(%d) missing candidate %d", user, id)
			}
			if s < 0 || s > 1 {
				t.Errorf("score[%d] = %v outside [0, 1]", id, s)
			}
			if want := cf.Model().Predict(user, id); s != want {
				t.Errorf("score[%d] = %v, want model estimate %v", id, s, want)
			}
		}
	}
}

func TestCollaborative_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := smallSVDConfig()
	cfg.Factors = 0
	_, err := NewCollaborative(context.Background(), nil, []int{1}, cfg)
	if !errors.Is(err, recommend.ErrInputValidation) {
		t.Errorf("NewCollaborative() error = %v, want ErrInputValidation", err)
	}
}

func TestCollaborative_Cancelled(t *testing.T) {
	t.Parallel()

	model, err := FitSVD(context.Background(), sampleRatings(), smallSVDConfig())
	if err != nil {
		t.Fatalf("FitSVD() error = %v", err)
	}
	cf := NewCollaborativeFromModel(model, []int{10, 11})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := cf.PredictScores(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("PredictScores() error = %v, want context.Canceled", err)
	}
}
