// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

import (
	"context"
	"fmt"
	"sort"
)

// Rank orders scores by descending score, breaking ties by ascending
// article id. The result never depends on map iteration order.
func Rank(scores ScoreMap) []ScoredArticle {
	ranked := make([]ScoredArticle, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, ScoredArticle{ArticleID: id, Score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ArticleID < ranked[j].ArticleID
	})
	return ranked
}

// TopK returns the ids of the k best-scored articles. k <= 0 yields an empty
// list; k larger than the candidate count yields every candidate.
func TopK(scores ScoreMap, k int) []int {
	if k <= 0 {
		return []int{}
	}
	ranked := Rank(scores)
	if k > len(ranked) {
		k = len(ranked)
	}
	ids := make([]int, k)
	for i := 0; i < k; i++ {
		ids[i] = ranked[i].ArticleID
	}
	return ids
}

// Predict scores every candidate for userID with s and returns the top k
// article ids. Scorer errors are returned unchanged.
func Predict(ctx context.Context, s Scorer, userID, k int) ([]int, error) {
	scores, err := safePredictScores(ctx, s, userID)
	if err != nil {
		return nil, err
	}
	return TopK(scores, k), nil
}

// safePredictScores calls s.PredictScores and converts a panic inside the
// scorer into a PredictionFailure.
func safePredictScores(ctx context.Context, s Scorer, userID int) (scores ScoreMap, err error) {
	defer func() {
		if r := recover(); r != nil {
			scores = nil
			err = &PredictionFailure{Scorer: s.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return s.PredictScores(ctx, userID)
}
