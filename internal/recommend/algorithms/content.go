// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package algorithms

import (
	"context"
	"fmt"

	"github.com/tomtom215/newsreel/internal/recommend"
)

// ContentBased scores candidates by cosine similarity between the user's
// profile vector and each candidate's embedding. A profile is the mean of the
// embeddings of every article the user clicked in training, repeats
// included.
type ContentBased struct {
	candidates    []int
	candidateVecs [][]float64
	profiles      map[int][]float64
}

// NewContentBased builds user profiles from train. Every clicked article and
// every candidate must have an embedding in table.
func NewContentBased(ctx context.Context, train []recommend.ClickEvent, candidates []int, table *recommend.EmbeddingTable) (*ContentBased, error) {
	if table == nil {
		return nil, &recommend.InputValidationError{Field: "embeddings", Reason: "embedding table is required"}
	}

	c := &ContentBased{
		candidates:    append([]int(nil), candidates...),
		candidateVecs: make([][]float64, len(candidates)),
		profiles:      make(map[int][]float64),
	}

	for i, id := range candidates {
		vec, ok := table.Vector(id)
		if !ok {
			return nil, missingEmbedding("candidate", id, table)
		}
		c.candidateVecs[i] = vec
	}

	clicked := make(map[int][][]float64)
	order := make([]int, 0)
	for _, click := range train {
		vec, ok := table.Vector(click.ArticleID)
		if !ok {
			return nil, missingEmbedding("article_id", click.ArticleID, table)
		}
		if _, seen := clicked[click.UserID]; !seen {
			order = append(order, click.UserID)
		}
		clicked[click.UserID] = append(clicked[click.UserID], vec)
	}

	for i, userID := range order {
		if i%predictBatchSize == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		c.profiles[userID] = meanVector(clicked[userID], table.Dim())
	}

	return c, nil
}

func missingEmbedding(field string, id int, table *recommend.EmbeddingTable) error {
	return &recommend.InputValidationError{
		Field:  field,
		Reason: fmt.Sprintf("article %d has no embedding (table holds ids 0..%d)", id, table.Len()-1),
	}
}

// Name returns "content".
func (c *ContentBased) Name() string {
	return "content"
}

// Users returns the number of users with a profile.
func (c *ContentBased) Users() int {
	return len(c.profiles)
}

// Profile returns the profile vector of userID. The slice must not be
// modified.
func (c *ContentBased) Profile(userID int) ([]float64, bool) {
	p, ok := c.profiles[userID]
	return p, ok
}

// PredictScores returns the cosine similarity of every candidate to the
// user's profile. Users without training clicks yield an UnknownUserError.
func (c *ContentBased) PredictScores(ctx context.Context, userID int) (recommend.ScoreMap, error) {
	profile, ok := c.profiles[userID]
	if !ok {
		return nil, &recommend.UnknownUserError{UserID: userID}
	}

	scores := make(recommend.ScoreMap, len(c.candidates))
	for i, id := range c.candidates {
		if i%predictBatchSize == 0 && ContextCancelled(ctx) {
			return nil, cancelled(ctx, c.Name())
		}
		scores[id] = cosineSimilarity(profile, c.candidateVecs[i])
	}
	return scores, nil
}
