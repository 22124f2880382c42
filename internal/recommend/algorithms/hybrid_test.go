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

// buildHybrid wires real scorers the same way the training pipeline does.
func buildHybrid(t *testing.T, train, test []recommend.ClickEvent, vectors [][]float64, alpha float64) *recommend.Hybrid {
	t.Helper()

	table, err := recommend.NewEmbeddingTable(vectors)
	if err != nil {
		t.Fatalf("NewEmbeddingTable() error = %v", err)
	}
	candidates := recommend.CandidateSet(test)

	cb, err := NewContentBased(context.Background(), train, candidates, table)
	if err != nil {
		t.Fatalf("NewContentBased() error = %v", err)
	}
	cf, err := NewCollaborative(context.Background(), train, candidates, smallSVDConfig())
	if err != nil {
		t.Fatalf("NewCollaborative() error = %v", err)
	}
	h, err := recommend.NewHybrid(cb, cf, alpha)
	if err != nil {
		t.Fatalf("NewHybrid() error = %v", err)
	}
	return h
}

func embeddings(n, dim int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, dim)
		out[i][i%dim] = 1
		out[i][(i+1)%dim] = float64(i%5) / 5
	}
	return out
}

func TestHybrid_TwoClickScenario(t *testing.T) {
	t.Parallel()

	train := []recommend.ClickEvent{
		{UserID: 1, ArticleID: 10, CategoryID: 1},
		{UserID: 1, ArticleID: 11, CategoryID: 1},
	}
	test := []recommend.ClickEvent{
		{UserID: 1, ArticleID: 10, CategoryID: 1},
		{UserID: 1, ArticleID: 11, CategoryID: 1},
	}
	h := buildHybrid(t, train, test, embeddings(12, 4), 0.5)

	got, err := recommend.Predict(context.Background(), h, 1, 1)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if len(got) != 1 || (got[0] != 10 && got[0] != 11) {
		t.Errorf("Predict(k=1) = %v, want one of [10] or [11]", got)
	}
}

func TestHybrid_UnknownUser(t *testing.T) {
	t.Parallel()

	train := []recommend.ClickEvent{{UserID: 1, ArticleID: 0, CategoryID: 1}}
	test := []recommend.ClickEvent{{UserID: 2, ArticleID: 1, CategoryID: 1}}
	h := buildHybrid(t, train, test, embeddings(4, 4), 0.5)

	_, err := recommend.Predict(context.Background(), h, 2, 3)
	var unknown *recommend.UnknownUserError
	if !errors.As(err, &unknown) || unknown.UserID != 2 {
		t.Errorf("Predict() error = %v, want UnknownUserError{2}", err)
	}
}

func TestHybrid_ListProperties(t *testing.T) {
	t.Parallel()

	var train, test []recommend.ClickEvent
	for u := 0; u < 6; u++ {
		for a := 0; a < 4; a++ {
			train = append(train, recommend.ClickEvent{UserID: u, ArticleID: (u*3 + a) % 20, CategoryID: a % 3})
		}
		test = append(test, recommend.ClickEvent{UserID: u, ArticleID: 20 + u%5, CategoryID: 1})
	}
	h := buildHybrid(t, train, test, embeddings(30, 6), 0.5)
	candidates := recommend.CandidateSet(test)

	for k := 0; k <= len(candidates)+2; k++ {
		got, err := recommend.Predict(context.Background(), h, 3, k)
		if err != nil {
			t.Fatalf("Predict(k=%d) error = %v", k, err)
		}
		want := k
		if k > len(candidates) {
			want = len(candidates)
		}
		if len(got) != want {
			t.Errorf("len(Predict(k=%d)) = %d, want %d", k, len(got), want)
		}
		seen := make(map[int]bool)
		for _, id := range got {
			if seen[id] {
				t.Errorf("Predict(k=%d) returned duplicate %d", k, id)
			}
			seen[id] = true
		}
	}

	full, err := recommend.Predict(context.Background(), h, 3, 100)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	scores, err := h.PredictScores(context.Background(), 3)
	if err != nil {
		t.Fatalf("PredictScores() error = %v", err)
	}
	for i := 1; i < len(full); i++ {
		if scores[full[i-1]] < scores[full[i]] {
			t.Errorf("full list not in descending score order at %d", i)
		}
	}
}

func TestHybrid_AlphaExtremesMatchSubScorers(t *testing.T) {
	t.Parallel()

	train := []recommend.ClickEvent{
		{UserID: 1, ArticleID: 0, CategoryID: 1},
		{UserID: 1, ArticleID: 2, CategoryID: 2},
		{UserID: 2, ArticleID: 3, CategoryID: 1},
	}
	test := []recommend.ClickEvent{
		{UserID: 1, ArticleID: 4, CategoryID: 1},
		{UserID: 2, ArticleID: 5, CategoryID: 2},
	}
	vectors := embeddings(8, 3)
	table, err := recommend.NewEmbeddingTable(vectors)
	if err != nil {
		t.Fatalf("NewEmbeddingTable() error = %v", err)
	}
	candidates := recommend.CandidateSet(test)
	cb, err := NewContentBased(context.Background(), train, candidates, table)
	if err != nil {
		t.Fatalf("NewContentBased() error = %v", err)
	}
	cf, err := NewCollaborative(context.Background(), train, candidates, smallSVDConfig())
	if err != nil {
		t.Fatalf("NewCollaborative() error = %v", err)
	}

	for _, tc := range []struct {
		alpha float64
		sub   recommend.Scorer
	}{
		{alpha: 1, sub: cb},
		{alpha: 0, sub: cf},
	} {
		h, err := recommend.NewHybrid(cb, cf, tc.alpha)
		if err != nil {
			t.Fatalf("NewHybrid() error = %v", err)
		}
		got, err := h.PredictScores(context.Background(), 1)
		if err != nil {
			t.Fatalf("PredictScores() error = %v", err)
		}
		want, err := tc.sub.PredictScores(context.Background(), 1)
		if err != nil {
			t.Fatalf("sub PredictScores() error = %v", err)
		}
		for id, w := range want {
			if got[id] != w {
				t.Errorf("alpha=%v score[%d] = %v, want %v", tc.alpha, id, got[id], w)
			}
		}
	}
}

func TestHybrid_HitRate(t *testing.T) {
	t.Parallel()

	train := []recommend.ClickEvent{
		{UserID: 1, ArticleID: 0, CategoryID: 1},
		{UserID: 2, ArticleID: 1, CategoryID: 2},
	}
	test := []recommend.ClickEvent{
		{UserID: 1, ArticleID: 4, CategoryID: 1},
		{UserID: 2, ArticleID: 5, CategoryID: 2},
		{UserID: 9, ArticleID: 4, CategoryID: 1},
	}
	h := buildHybrid(t, train, test, embeddings(8, 4), 0.5)

	rate, err := recommend.HitRateAtK(context.Background(), h, test, 1, 10, 42)
	if err != nil {
		t.Fatalf("HitRateAtK() error = %v", err)
	}
	if rate < 0 || rate > 1 {
		t.Errorf("HitRateAtK() = %v, outside [0, 1]", rate)
	}

	// k covering every candidate guarantees a hit for each known user.
	rate, err = recommend.HitRateAtK(context.Background(), h, test, 2, 10, 42)
	if err != nil {
		t.Fatalf("HitRateAtK() error = %v", err)
	}
	if want := 2.0 / 3.0; rate != want {
		t.Errorf("HitRateAtK(k=2) = %v, want %v", rate, want)
	}
}
