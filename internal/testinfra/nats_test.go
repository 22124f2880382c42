// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

//go:build integration

package testinfra

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/tomtom215/newsreel/internal/config"
	"github.com/tomtom215/newsreel/internal/eventprocessor"
	"github.com/tomtom215/newsreel/internal/recommend"
)

func TestNATSContainer_BusRoundTrip(t *testing.T) {
	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	natsC, err := NewNATSContainer(ctx)
	if err != nil {
		t.Fatalf("NewNATSContainer() error = %v", err)
	}
	defer CleanupContainer(t, natsC)

	cfg := &config.NATSConfig{
		Enabled:             true,
		URL:                 natsC.URL,
		StreamName:          "NEWSREEL_IT",
		StreamRetentionDays: 1,
	}
	bus, err := eventprocessor.NewBus(ctx, cfg, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	defer func() { _ = bus.Close(context.Background()) }()

	if err := bus.Health(ctx); err != nil {
		t.Fatalf("Health() error = %v", err)
	}

	msgs, err := bus.Subscriber.Subscribe(ctx, eventprocessor.TopicModelTrained)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	pub, err := eventprocessor.NewPublisher(bus.Publisher, nil)
	if err != nil {
		t.Fatal(err)
	}
	event := eventprocessor.NewModelTrainedEvent(&recommend.ModelStatus{Ready: true, Version: 1})
	if err := pub.PublishEvent(ctx, event); err != nil {
		t.Fatalf("PublishEvent() error = %v", err)
	}

	select {
	case msg := <-msgs:
		msg.Ack()
		got, err := eventprocessor.DeserializeEvent(eventprocessor.TopicModelTrained, msg.Payload)
		if err != nil {
			t.Fatalf("DeserializeEvent() error = %v", err)
		}
		if got.ID() != event.ID() {
			t.Errorf("event id = %s, want %s", got.ID(), event.ID())
		}
	case <-time.After(30 * time.Second):
		t.Fatal("no message received from NATS")
	}
}
