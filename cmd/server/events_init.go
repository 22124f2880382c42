// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/newsreel/internal/config"
	"github.com/tomtom215/newsreel/internal/eventprocessor"
	"github.com/tomtom215/newsreel/internal/logging"
	"github.com/tomtom215/newsreel/internal/recommend"
	"github.com/tomtom215/newsreel/internal/supervisor"
)

// EventComponents holds the messaging pieces owned by main.
type EventComponents struct {
	Bus       *eventprocessor.Bus
	Publisher *eventprocessor.Publisher
	Notifier  *eventprocessor.Notifier
	Router    *eventprocessor.Router
}

// Close shuts the publisher and transport down.
func (c *EventComponents) Close(ctx context.Context) error {
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing event publisher")
		}
	}
	return c.Bus.Close(ctx)
}

// initEvents connects the event bus, hooks the engine up to the notifier and
// registers the activity consumers. The notifier and router run in the
// messaging layer of tree.
func initEvents(ctx context.Context, cfg *config.Config, engine *recommend.Engine, tree *supervisor.SupervisorTree) (*EventComponents, error) {
	wmLogger := logging.NewWatermillLogger(logging.WithComponent("watermill"))

	bus, err := eventprocessor.NewBus(ctx, &cfg.NATS, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create event bus: %w", err)
	}
	components := &EventComponents{Bus: bus}

	publisher, err := eventprocessor.NewPublisher(bus.Publisher,
		eventprocessor.NewCircuitBreaker(eventprocessor.DefaultCircuitBreakerConfig()))
	if err != nil {
		_ = bus.Close(ctx) //nolint:errcheck // already failing
		return nil, err
	}
	components.Publisher = publisher

	notifier := eventprocessor.NewNotifier(publisher, eventprocessor.DefaultNotifierConfig(), logging.WithComponent("notifier"))
	components.Notifier = notifier
	engine.SetNotifier(notifier)

	routerCfg := eventprocessor.DefaultRouterConfig()
	router, err := eventprocessor.NewRouter(&routerCfg, wmLogger)
	if err != nil {
		_ = components.Close(ctx) //nolint:errcheck // already failing
		return nil, err
	}
	activityLogger := logging.WithComponent("events")
	for _, topic := range []string{eventprocessor.TopicRecommendationServed, eventprocessor.TopicModelTrained} {
		router.AddConsumer("activity-"+topic, topic, bus.Subscriber, eventprocessor.ActivityLogHandler(topic, activityLogger))
	}
	components.Router = router

	tree.AddMessagingService(notifier)
	tree.AddMessagingService(router)

	logging.Info().Str("transport", bus.Transport()).Msg("Event bus initialized")
	return components, nil
}
