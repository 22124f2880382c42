// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// ClickEvent is a single article click loaded from the click logs.
type ClickEvent struct {
	// UserID identifies the reader.
	UserID int `json:"user_id"`

	// ArticleID indexes the embedding table.
	ArticleID int `json:"article_id"`

	// CategoryID is the editorial category of the article.
	CategoryID int `json:"category_id"`

	// Timestamp is when the click happened. Zero when the source has no
	// timestamp column.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Rating is an implicit preference derived from category click proportions.
type Rating struct {
	UserID     int     `json:"user_id"`
	ArticleID  int     `json:"article_id"`
	CategoryID int     `json:"category_id"`
	Score      float64 `json:"score"`
}

// ScoreMap maps article ids to relevance scores for one user.
type ScoreMap map[int]float64

// Keys returns the article ids in ascending order.
func (m ScoreMap) Keys() []int {
	keys := make([]int, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	sort.Ints(keys)
	return keys
}

// ScoredArticle is an article with its final score.
type ScoredArticle struct {
	ArticleID int     `json:"article_id"`
	Score     float64 `json:"score"`
}

// Scorer produces a relevance score for every candidate article.
//
// Implementations must be safe for concurrent use and must return a map
// whose keys are exactly the candidate set they were built with.
type Scorer interface {
	// Name returns the scorer identifier used in logs and metrics.
	Name() string

	// PredictScores scores every candidate article for userID.
	PredictScores(ctx context.Context, userID int) (ScoreMap, error)
}

// EmbeddingTable holds one dense vector per article, indexed by article id.
// It is immutable after construction.
type EmbeddingTable struct {
	vectors [][]float64
	dim     int
}

// NewEmbeddingTable validates that all vectors share one dimension and
// copies them into a new table. Row i is the embedding of article i.
func NewEmbeddingTable(vectors [][]float64) (*EmbeddingTable, error) {
	t := &EmbeddingTable{vectors: make([][]float64, len(vectors))}
	for i, v := range vectors {
		if i == 0 {
			t.dim = len(v)
		}
		if len(v) != t.dim {
			return nil, &InputValidationError{
				Field:  "embeddings",
				Reason: fmt.Sprintf("article %d has dimension %d, want %d", i, len(v), t.dim),
			}
		}
		row := make([]float64, len(v))
		copy(row, v)
		t.vectors[i] = row
	}
	return t, nil
}

// Len returns the number of articles in the table.
func (t *EmbeddingTable) Len() int {
	return len(t.vectors)
}

// Dim returns the embedding dimension.
func (t *EmbeddingTable) Dim() int {
	return t.dim
}

// Contains reports whether articleID has an embedding.
func (t *EmbeddingTable) Contains(articleID int) bool {
	return articleID >= 0 && articleID < len(t.vectors)
}

// Vector returns the embedding of articleID. The returned slice must not be
// modified.
func (t *EmbeddingTable) Vector(articleID int) ([]float64, bool) {
	if !t.Contains(articleID) {
		return nil, false
	}
	return t.vectors[articleID], true
}

// CandidateSet returns the distinct article ids of clicks in ascending order.
func CandidateSet(clicks []ClickEvent) []int {
	seen := make(map[int]struct{}, len(clicks))
	ids := make([]int, 0)
	for _, c := range clicks {
		if _, ok := seen[c.ArticleID]; ok {
			continue
		}
		seen[c.ArticleID] = struct{}{}
		ids = append(ids, c.ArticleID)
	}
	sort.Ints(ids)
	return ids
}

// DistinctUsers returns the distinct user ids of clicks in ascending order.
func DistinctUsers(clicks []ClickEvent) []int {
	seen := make(map[int]struct{}, len(clicks))
	ids := make([]int, 0)
	for _, c := range clicks {
		if _, ok := seen[c.UserID]; ok {
			continue
		}
		seen[c.UserID] = struct{}{}
		ids = append(ids, c.UserID)
	}
	sort.Ints(ids)
	return ids
}

// articlesByUser groups clicked article ids into a set per user.
func articlesByUser(clicks []ClickEvent) map[int]map[int]struct{} {
	out := make(map[int]map[int]struct{})
	for _, c := range clicks {
		set, ok := out[c.UserID]
		if !ok {
			set = make(map[int]struct{})
			out[c.UserID] = set
		}
		set[c.ArticleID] = struct{}{}
	}
	return out
}
