// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

import (
	"context"
	"errors"
	"testing"
)

func TestTopK(t *testing.T) {
	scores := ScoreMap{10: 0.1, 11: 0.9, 12: 0.5, 13: 0.5, 14: -1}

	tests := []struct {
		name string
		k    int
		want []int
	}{
		{name: "k zero", k: 0, want: []int{}},
		{name: "k negative", k: -3, want: []int{}},
		{name: "top one", k: 1, want: []int{11}},
		{name: "ties by ascending id", k: 3, want: []int{11, 12, 13}},
		{name: "k equals candidates", k: 5, want: []int{11, 12, 13, 10, 14}},
		{name: "k exceeds candidates", k: 50, want: []int{11, 12, 13, 10, 14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopK(scores, tt.k)
			if got == nil {
				t.Fatal("TopK() returned nil")
			}
			if !equalInts(got, tt.want) {
				t.Errorf("TopK(k=%d) = %v, want %v", tt.k, got, tt.want)
			}
		})
	}
}

func TestTopK_LengthAndUniqueness(t *testing.T) {
	scores := make(ScoreMap)
	for id := 0; id < 40; id++ {
		scores[id] = float64(id%7) / 7
	}

	for k := 0; k <= 45; k++ {
		got := TopK(scores, k)
		want := k
		if k > len(scores) {
			want = len(scores)
		}
		if len(got) != want {
			t.Fatalf("len(TopK(k=%d)) = %d, want %d", k, len(got), want)
		}
		seen := make(map[int]bool)
		for i, id := range got {
			if seen[id] {
				t.Fatalf("TopK(k=%d) has duplicate id %d", k, id)
			}
			seen[id] = true
			if i > 0 && scores[got[i-1]] < scores[id] {
				t.Fatalf("TopK(k=%d) not sorted at %d: %v", k, i, got)
			}
		}
	}
}

func TestTopK_Deterministic(t *testing.T) {
	scores := ScoreMap{5: 1, 3: 1, 9: 1, 1: 1}
	first := TopK(scores, 4)
	for i := 0; i < 20; i++ {
		if got := TopK(scores, 4); !equalInts(got, first) {
			t.Fatalf("TopK() = %v, previously %v", got, first)
		}
	}
	if !equalInts(first, []int{1, 3, 5, 9}) {
		t.Errorf("TopK() on equal scores = %v, want ascending ids", first)
	}
}

func TestPredict(t *testing.T) {
	s := &staticScorer{scores: map[int]ScoreMap{
		1: {10: 0.2, 11: 0.8},
	}}

	t.Run("known user", func(t *testing.T) {
		got, err := Predict(context.Background(), s, 1, 1)
		if err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		if !equalInts(got, []int{11}) {
			t.Errorf("Predict() = %v, want [11]", got)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := Predict(context.Background(), s, 99, 1)
		var unknown *UnknownUserError
		if !errors.As(err, &unknown) || unknown.UserID != 99 {
			t.Errorf("Predict() error = %v, want UnknownUserError{99}", err)
		}
	})

	t.Run("panic becomes prediction failure", func(t *testing.T) {
		_, err := Predict(context.Background(), &staticScorer{name: "boom", panics: true}, 1, 1)
		if !errors.Is(err, ErrPredictionFailure) {
			t.Fatalf("Predict() error = %v, want ErrPredictionFailure", err)
		}
		var pf *PredictionFailure
		if !errors.As(err, &pf) || pf.Scorer != "boom" {
			t.Errorf("PredictionFailure.Scorer = %v, want boom", pf)
		}
	})
}

func TestRank(t *testing.T) {
	ranked := Rank(ScoreMap{2: 0.5, 1: 0.5, 3: 0.7})
	want := []ScoredArticle{{ArticleID: 3, Score: 0.7}, {ArticleID: 1, Score: 0.5}, {ArticleID: 2, Score: 0.5}}
	if len(ranked) != len(want) {
		t.Fatalf("len(Rank()) = %d, want %d", len(ranked), len(want))
	}
	for i := range want {
		if ranked[i] != want[i] {
			t.Errorf("Rank()[%d] = %+v, want %+v", i, ranked[i], want[i])
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
