// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package eventprocessor

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/newsreel/internal/recommend"
)

// Topics.
const (
	TopicRecommendationServed = subjectPrefix + "recommendation.served"
	TopicModelTrained         = subjectPrefix + "model.trained"
)

// Event is implemented by every published payload.
type Event interface {
	ID() string
	Topic() string
	Validate() error
}

// RecommendationServedEvent records one answered prediction.
type RecommendationServedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`

	RequestID    string `json:"request_id,omitempty"`
	UserID       int    `json:"user_id"`
	K            int    `json:"k"`
	ArticleIDs   []int  `json:"article_ids"`
	ModelVersion int    `json:"model_version"`
	CacheHit     bool   `json:"cache_hit"`
}

// NewRecommendationServedEvent converts an engine notification.
func NewRecommendationServedEvent(s *recommend.RecommendationServed) *RecommendationServedEvent {
	ts := s.ServedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return &RecommendationServedEvent{
		EventID:      uuid.New().String(),
		Timestamp:    ts.UTC(),
		RequestID:    s.RequestID,
		UserID:       s.UserID,
		K:            s.K,
		ArticleIDs:   s.ArticleIDs,
		ModelVersion: s.ModelVersion,
		CacheHit:     s.CacheHit,
	}
}

func (e *RecommendationServedEvent) ID() string    { return e.EventID }
func (e *RecommendationServedEvent) Topic() string { return TopicRecommendationServed }

// Validate checks required fields.
func (e *RecommendationServedEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if e.ModelVersion < 1 {
		return fmt.Errorf("%w: model_version must be positive", ErrInvalidEvent)
	}
	return nil
}

// ModelTrainedEvent records a published model.
type ModelTrainedEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`

	Status recommend.ModelStatus `json:"status"`
}

// NewModelTrainedEvent converts an engine notification.
func NewModelTrainedEvent(status *recommend.ModelStatus) *ModelTrainedEvent {
	return &ModelTrainedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Status:    *status,
	}
}

func (e *ModelTrainedEvent) ID() string    { return e.EventID }
func (e *ModelTrainedEvent) Topic() string { return TopicModelTrained }

// Validate checks required fields.
func (e *ModelTrainedEvent) Validate() error {
	if e.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	}
	if e.Status.Version < 1 {
		return fmt.Errorf("%w: status.version must be positive", ErrInvalidEvent)
	}
	return nil
}

// SerializeEvent validates and encodes an event.
func SerializeEvent(event Event) ([]byte, error) {
	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("validate event: %w", err)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// DeserializeEvent decodes data into the event type registered for topic.
func DeserializeEvent(topic string, data []byte) (Event, error) {
	var event Event
	switch topic {
	case TopicRecommendationServed:
		event = &RecommendationServedEvent{}
	case TopicModelTrained:
		event = &ModelTrainedEvent{}
	default:
		return nil, fmt.Errorf("%w: unknown topic %q", ErrInvalidEvent, topic)
	}
	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
