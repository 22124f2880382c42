// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

// Package algorithms implements the scorers blended by the hybrid
// recommender.
//
// Each scorer implements recommend.Scorer and returns a score for exactly the
// candidate set it was constructed with.
//
// # Scorers
//
//   - ContentBased: cosine similarity between a user's mean clicked-article
//     embedding and each candidate embedding
//   - Collaborative: biased SVD trained with SGD on category-share ratings
//
// # Thread Safety
//
// Scorers are fully built by their constructors and never mutated
// afterwards, so PredictScores needs no locking.
package algorithms
