// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

import (
	"context"
	"fmt"
	"math"
)

// Hybrid blends a content-based and a collaborative scorer:
//
//	score(a) = alpha * content(a) + (1 - alpha) * collaborative(a)
//
// Both scorers must score the same candidate set.
type Hybrid struct {
	content       Scorer
	collaborative Scorer
	alpha         float64
}

var _ Scorer = (*Hybrid)(nil)

// NewHybrid creates a hybrid scorer. alpha must be in [0, 1].
func NewHybrid(content, collaborative Scorer, alpha float64) (*Hybrid, error) {
	if content == nil || collaborative == nil {
		return nil, &InputValidationError{Field: "scorer", Reason: "content and collaborative scorers are required"}
	}
	if math.IsNaN(alpha) || alpha < 0 || alpha > 1 {
		return nil, &InputValidationError{Field: "alpha", Reason: fmt.Sprintf("must be in [0, 1], got %v", alpha)}
	}
	return &Hybrid{
		content:       content,
		collaborative: collaborative,
		alpha:         alpha,
	}, nil
}

// Name returns "hybrid".
func (h *Hybrid) Name() string {
	return "hybrid"
}

// Alpha returns the content-based weight.
func (h *Hybrid) Alpha() float64 {
	return h.alpha
}

// PredictScores blends the two sub-scorers for userID. A sub-scorer error is
// returned unchanged; differing candidate sets yield an
// InconsistentCandidateSetError.
func (h *Hybrid) PredictScores(ctx context.Context, userID int) (ScoreMap, error) {
	cb, err := safePredictScores(ctx, h.content, userID)
	if err != nil {
		return nil, err
	}
	cf, err := safePredictScores(ctx, h.collaborative, userID)
	if err != nil {
		return nil, err
	}
	if err := checkCandidateSets(cb, cf); err != nil {
		return nil, err
	}

	scores := make(ScoreMap, len(cb))
	switch h.alpha {
	case 1:
		for id, s := range cb {
			scores[id] = s
		}
	case 0:
		for id, s := range cf {
			scores[id] = s
		}
	default:
		for id, s := range cb {
			scores[id] = h.alpha*s + (1-h.alpha)*cf[id]
		}
	}
	return scores, nil
}
