// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

// Package recommend implements the hybrid article recommendation core.
//
// # Architecture
//
// Two scorers produce a ScoreMap over the same candidate set (the distinct
// article ids of the held-out clicks):
//
//   - Content-based: cosine similarity between a user's mean clicked-article
//     embedding and each candidate embedding
//   - Collaborative: a biased matrix factorization model trained with SGD on
//     category-proportion ratings (see BuildRatings)
//
// Hybrid blends them linearly:
//
//	hybrid(a) = alpha * content(a) + (1 - alpha) * collaborative(a)
//
// Ranking (TopK, Predict) and offline evaluation (HitRateAtK) are written
// once against the Scorer interface and shared by every variant.
//
// # Usage
//
//	hybrid, err := recommend.NewHybrid(content, collaborative, 0.5)
//	if err != nil {
//	    return err
//	}
//	ids, err := recommend.Predict(ctx, hybrid, userID, 5)
//
// # Thread Safety
//
// Scorers are immutable after construction and safe for concurrent use
// without locking. The Engine serves one Model snapshot at a time and swaps
// it atomically after retraining, so in-flight requests always finish on the
// model they started with.
//
// # Errors
//
// Failures are typed (InputValidationError, UnknownUserError,
// InconsistentCandidateSetError, PredictionFailure) and match their sentinel
// with errors.Is. Mapping errors to status codes is left to the caller.
package recommend
