// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package algorithms

import (
	"context"
	"math"

	"github.com/tomtom215/newsreel/internal/recommend"
)

// predictBatchSize is how many candidates are scored between context checks.
const predictBatchSize = 1024

// ContextCancelled reports whether ctx is done.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// cosineSimilarity returns dot(a, b) / (|a| |b|). It is 0 when either vector
// has zero norm or the lengths differ.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	normA := norm(a)
	normB := norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot(a, b) / (normA * normB)
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}

// meanVector averages vectors component-wise. All vectors must have length
// dim.
func meanVector(vectors [][]float64, dim int) []float64 {
	mean := make([]float64, dim)
	if len(vectors) == 0 {
		return mean
	}
	for _, v := range vectors {
		for i, x := range v {
			mean[i] += x
		}
	}
	n := float64(len(vectors))
	for i := range mean {
		mean[i] /= n
	}
	return mean
}

// cancelled converts a context error into a PredictionFailure for scorer.
func cancelled(ctx context.Context, scorer string) error {
	return &recommend.PredictionFailure{Scorer: scorer, Err: ctx.Err()}
}

// Ensure all scorers implement the interface.
var (
	_ recommend.Scorer = (*ContentBased)(nil)
	_ recommend.Scorer = (*Collaborative)(nil)
)
