// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package recommend

import (
	"context"
	"time"
)

// Model is an immutable, fully trained recommender. The engine swaps whole
// models atomically, so readers never observe a partially built one.
type Model struct {
	// Hybrid is the serving scorer.
	Hybrid *Hybrid

	// Content and Collaborative are the scorers Hybrid blends.
	Content       Scorer
	Collaborative Scorer

	// Candidates are the distinct article ids in the held-out clicks.
	Candidates []int

	// Test holds the held-out clicks used for evaluation.
	Test []ClickEvent

	TrainClicks int
	TrainUsers  int

	// Fingerprint identifies the training data and parameters the model was
	// built from.
	Fingerprint string

	// FromSnapshot is true when the collaborative factors were restored
	// instead of fitted.
	FromSnapshot bool

	// Version and TrainedAt are assigned by the engine on publication.
	Version   int
	TrainedAt time.Time
}

// NewModel assembles a Model from trained scorers.
func NewModel(content, collaborative Scorer, alpha float64, train, test []ClickEvent) (*Model, error) {
	hybrid, err := NewHybrid(content, collaborative, alpha)
	if err != nil {
		return nil, err
	}
	return &Model{
		Hybrid:        hybrid,
		Content:       content,
		Collaborative: collaborative,
		Candidates:    CandidateSet(test),
		Test:          test,
		TrainClicks:   len(train),
		TrainUsers:    len(DistinctUsers(train)),
	}, nil
}

// Status summarizes the model.
func (m *Model) Status() ModelStatus {
	return ModelStatus{
		Ready:        true,
		Version:      m.Version,
		TrainedAt:    m.TrainedAt,
		Alpha:        m.Hybrid.Alpha(),
		TrainClicks:  m.TrainClicks,
		TrainUsers:   m.TrainUsers,
		TestClicks:   len(m.Test),
		Candidates:   len(m.Candidates),
		Fingerprint:  m.Fingerprint,
		FromSnapshot: m.FromSnapshot,
	}
}

// ModelStatus describes the serving model and the training state.
type ModelStatus struct {
	Ready        bool      `json:"ready"`
	Version      int       `json:"version"`
	TrainedAt    time.Time `json:"trained_at,omitempty"`
	Alpha        float64   `json:"alpha"`
	TrainClicks  int       `json:"train_clicks"`
	TrainUsers   int       `json:"train_users"`
	TestClicks   int       `json:"test_clicks"`
	Candidates   int       `json:"candidates"`
	Fingerprint  string    `json:"fingerprint,omitempty"`
	FromSnapshot bool      `json:"from_snapshot"`
	Training     bool      `json:"training"`
	LastError    string    `json:"last_error,omitempty"`
}

// DataProvider supplies the inputs a model is built from. It is typically
// implemented by the database layer.
type DataProvider interface {
	// GetTrainClicks returns the training click log in file order.
	GetTrainClicks(ctx context.Context) ([]ClickEvent, error)

	// GetTestClicks returns the held-out click log in file order.
	GetTestClicks(ctx context.Context) ([]ClickEvent, error)

	// GetEmbeddings returns the article embedding table.
	GetEmbeddings(ctx context.Context) (*EmbeddingTable, error)
}

// ModelBuilder trains a complete model.
type ModelBuilder interface {
	Build(ctx context.Context) (*Model, error)
}

// Notifier receives engine activity. Implementations must not block.
type Notifier interface {
	NotifyRecommendation(ctx context.Context, served RecommendationServed)
	NotifyModelTrained(ctx context.Context, status ModelStatus)
}

// RecommendationServed describes one answered request.
type RecommendationServed struct {
	RequestID    string    `json:"request_id"`
	UserID       int       `json:"user_id"`
	K            int       `json:"k"`
	ArticleIDs   []int     `json:"article_ids"`
	ModelVersion int       `json:"model_version"`
	CacheHit     bool      `json:"cache_hit"`
	ServedAt     time.Time `json:"served_at"`
}
