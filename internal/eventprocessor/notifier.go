// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package eventprocessor

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsreel/internal/metrics"
	"github.com/tomtom215/newsreel/internal/recommend"
)

// Notifier implements recommend.Notifier by queueing events for a
// background publisher. It never blocks the caller.
type Notifier struct {
	publisher *Publisher
	config    NotifierConfig
	logger    zerolog.Logger

	queue   chan Event
	dropped atomic.Int64
}

var _ recommend.Notifier = (*Notifier)(nil)

// NewNotifier creates a notifier publishing through p. Serve must run for
// events to leave the queue.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewNotifier(p *Publisher, cfg NotifierConfig, logger zerolog.Logger) *Notifier {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultNotifierConfig().QueueSize
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = DefaultNotifierConfig().PublishTimeout
	}
	return &Notifier{
		publisher: p,
		config:    cfg,
		logger:    logger.With().Str("component", "notifier").Logger(),
		queue:     make(chan Event, cfg.QueueSize),
	}
}

// NotifyRecommendation queues a recommendation.served event.
func (n *Notifier) NotifyRecommendation(_ context.Context, served recommend.RecommendationServed) {
	n.enqueue(NewRecommendationServedEvent(&served))
}

// NotifyModelTrained queues a model.trained event.
func (n *Notifier) NotifyModelTrained(_ context.Context, status recommend.ModelStatus) {
	n.enqueue(NewModelTrainedEvent(&status))
}

func (n *Notifier) enqueue(e Event) {
	select {
	case n.queue <- e:
	default:
		n.dropped.Add(1)
		metrics.RecordEventDropped(e.Topic())
	}
}

// Dropped returns the number of events discarded because the queue was full.
func (n *Notifier) Dropped() int64 {
	return n.dropped.Load()
}

// Serve publishes queued events until ctx is cancelled, then drains what
// is left. It implements suture.Service.
func (n *Notifier) Serve(ctx context.Context) error {
	for {
		select {
		case e := <-n.queue:
			n.publish(ctx, e)
		case <-ctx.Done():
			n.drain()
			return ctx.Err()
		}
	}
}

// drain publishes the remaining events with a fresh context so that
// shutdown does not lose the last model.trained event.
func (n *Notifier) drain() {
	for {
		select {
		case e := <-n.queue:
			n.publish(context.Background(), e)
		default:
			return
		}
	}
}

func (n *Notifier) publish(ctx context.Context, e Event) {
	ctx, cancel := context.WithTimeout(ctx, n.config.PublishTimeout)
	defer cancel()

	if err := n.publisher.PublishEvent(ctx, e); err != nil {
		n.logger.Warn().Err(err).
			Str("topic", e.Topic()).
			Str("event_id", e.ID()).
			Msg("event publish failed")
	}
}

// String identifies the service in supervisor logs.
func (n *Notifier) String() string {
	return "event-notifier"
}
