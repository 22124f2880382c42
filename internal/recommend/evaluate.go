// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
)

// EvaluationResult summarizes a hit-rate run.
type EvaluationResult struct {
	HitRate      float64 `json:"hit_rate"`
	K            int     `json:"k"`
	SampledUsers int     `json:"sampled_users"`
	Hits         int     `json:"hits"`
	UnknownUsers int     `json:"unknown_users"`
	Seed         int64   `json:"seed"`
}

// HitRateAtK returns the fraction of sampled held-out users whose top-k list
// contains at least one article they clicked in test.
//
// Up to sampleUsers distinct users are drawn without replacement, using a
// generator seeded with seed, so runs are reproducible. sampleUsers <= 0
// evaluates every held-out user. With no held-out users the hit rate is 0.0.
func HitRateAtK(ctx context.Context, s Scorer, test []ClickEvent, k, sampleUsers int, seed int64) (float64, error) {
	res, err := EvaluateHitRate(ctx, s, test, k, sampleUsers, seed)
	if err != nil {
		return 0, err
	}
	return res.HitRate, nil
}

// EvaluateHitRate is HitRateAtK with the full breakdown. Sampled users that
// the scorer does not know count as misses and are reported in
// UnknownUsers; any other scorer error aborts the run.
func EvaluateHitRate(ctx context.Context, s Scorer, test []ClickEvent, k, sampleUsers int, seed int64) (*EvaluationResult, error) {
	res := &EvaluationResult{K: k, Seed: seed}

	truth := articlesByUser(test)
	users := DistinctUsers(test)
	if len(users) == 0 {
		return res, nil
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic sampling, not security sensitive
	rng.Shuffle(len(users), func(i, j int) {
		users[i], users[j] = users[j], users[i]
	})
	if sampleUsers > 0 && sampleUsers < len(users) {
		users = users[:sampleUsers]
	}
	res.SampledUsers = len(users)

	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		recs, err := Predict(ctx, s, userID, k)
		if errors.Is(err, ErrUnknownUser) {
			res.UnknownUsers++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("evaluate user %d: %w", userID, err)
		}

		clicked := truth[userID]
		for _, id := range recs {
			if _, ok := clicked[id]; ok {
				res.Hits++
				break
			}
		}
	}

	res.HitRate = float64(res.Hits) / float64(res.SampledUsers)
	return res, nil
}
