// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

import (
	"context"
	"sync/atomic"
)

// staticScorer returns fixed scores per user. Users without an entry are
// unknown.
type staticScorer struct {
	name   string
	scores map[int]ScoreMap
	err    error
	panics bool
	calls  atomic.Int32
}

func (s *staticScorer) Name() string {
	if s.name == "" {
		return "static"
	}
	return s.name
}

func (s *staticScorer) PredictScores(ctx context.Context, userID int) (ScoreMap, error) {
	s.calls.Add(1)
	if s.panics {
		panic("scorer exploded")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	scores, ok := s.scores[userID]
	if !ok {
		return nil, &UnknownUserError{UserID: userID}
	}
	out := make(ScoreMap, len(scores))
	for id, v := range scores {
		out[id] = v
	}
	return out, nil
}

func clicks(rows ...[3]int) []ClickEvent {
	out := make([]ClickEvent, len(rows))
	for i, r := range rows {
		out[i] = ClickEvent{UserID: r[0], ArticleID: r[1], CategoryID: r[2]}
	}
	return out
}
