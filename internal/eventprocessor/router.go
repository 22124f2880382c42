// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package eventprocessor

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/newsreel/internal/metrics"
)

// Router consumes events with retry and panic recovery.
type Router struct {
	router *message.Router
}

// NewRouter creates a router. Handlers are added with AddConsumer.
func NewRouter(cfg *RouterConfig, logger watermill.LoggerAdapter) (*Router, error) {
	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      2,
		Logger:          logger,
	}
	wmRouter.AddMiddleware(
		middleware.Recoverer,
		middleware.CorrelationID,
		retry.Middleware,
	)

	return &Router{router: wmRouter}, nil
}

// AddConsumer registers handler for every message on topic.
func (r *Router) AddConsumer(name, topic string, sub message.Subscriber, handler message.NoPublishHandlerFunc) {
	r.router.AddNoPublisherHandler(name, topic, sub, handler)
}

// Serve runs the router until ctx is cancelled. It implements
// suture.Service.
func (r *Router) Serve(ctx context.Context) error {
	err := r.router.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Running is closed once every handler is subscribed.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

// Close stops the router.
func (r *Router) Close() error {
	return r.router.Close()
}

// String identifies the service in supervisor logs.
func (r *Router) String() string {
	return "event-router"
}

// ActivityLogHandler returns a handler that decodes events from topic,
// logs them and counts them. Malformed payloads are acked and logged so a
// single bad message cannot block the stream.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func ActivityLogHandler(topic string, logger zerolog.Logger) message.NoPublishHandlerFunc {
	logger = logger.With().Str("component", "activity").Str("topic", topic).Logger()
	return func(msg *message.Message) error {
		event, err := DeserializeEvent(topic, msg.Payload)
		if err != nil {
			metrics.RecordEventConsumed(topic, "invalid")
			logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("discarding malformed event")
			return nil
		}

		entry := logger.Debug().Str("event_id", event.ID())
		switch e := event.(type) {
		case *RecommendationServedEvent:
			entry = entry.Int("user_id", e.UserID).Int("k", e.K).Int("model_version", e.ModelVersion)
		case *ModelTrainedEvent:
			entry = entry.Int("model_version", e.Status.Version).Int("candidates", e.Status.Candidates)
		}
		entry.Msg("event consumed")

		metrics.RecordEventConsumed(topic, "ok")
		return nil
	}
}
