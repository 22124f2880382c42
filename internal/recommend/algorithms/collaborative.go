// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package algorithms

import (
	"context"

	"github.com/tomtom215/newsreel/internal/recommend"
)

// Collaborative scores candidates with a biased SVD trained on
// category-share ratings (see recommend.BuildRatings).
type Collaborative struct {
	model      *SVD
	candidates []int
}

// NewCollaborative converts train into ratings and fits an SVD.
func NewCollaborative(ctx context.Context, train []recommend.ClickEvent, candidates []int, cfg SVDConfig) (*Collaborative, error) {
	model, err := FitSVD(ctx, recommend.BuildRatings(train), cfg)
	if err != nil {
		return nil, err
	}
	return NewCollaborativeFromModel(model, candidates), nil
}

// NewCollaborativeFromModel wraps an already fitted model.
func NewCollaborativeFromModel(model *SVD, candidates []int) *Collaborative {
	return &Collaborative{
		model:      model,
		candidates: append([]int(nil), candidates...),
	}
}

// Name returns "collaborative".
func (c *Collaborative) Name() string {
	return "collaborative"
}

// Model returns the fitted SVD.
func (c *Collaborative) Model() *SVD {
	return c.model
}

// PredictScores estimates every candidate for userID. Unknown users get the
// baseline estimate instead of an error; only a cancelled context fails.
func (c *Collaborative) PredictScores(ctx context.Context, userID int) (recommend.ScoreMap, error) {
	scores := make(recommend.ScoreMap, len(c.candidates))
	for i, id := range c.candidates {
		if i%predictBatchSize == 0 && ContextCancelled(ctx) {
			return nil, cancelled(ctx, c.Name())
		}
		scores[id] = c.model.Predict(userID, id)
	}
	return scores, nil
}
