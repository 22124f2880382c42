// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/tomtom215/newsreel/internal/config"
	"github.com/tomtom215/newsreel/internal/logging"
)

// Transport names reported by Bus.Transport.
const (
	TransportNATS      = "nats"
	TransportGoChannel = "gochannel"
)

// Bus owns the messaging transport: an optional embedded NATS server, the
// connection used for stream management, and the Watermill publisher and
// subscriber.
type Bus struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber

	transport string
	server    *EmbeddedServer
	conn      *natsgo.Conn
	stream    *StreamInitializer
}

// NewBus connects the transport selected by cfg. With NATS disabled it
// returns an in-memory gochannel bus.
func NewBus(ctx context.Context, cfg *config.NATSConfig, logger watermill.LoggerAdapter) (*Bus, error) {
	if !cfg.Enabled {
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, logger)
		logging.Info().Msg("NATS disabled, events use the in-memory channel")
		return &Bus{Publisher: ch, Subscriber: ch, transport: TransportGoChannel}, nil
	}

	b := &Bus{transport: TransportNATS}
	natsURL := cfg.URL

	if cfg.EmbeddedServer {
		serverCfg := ServerConfigFrom(cfg)
		srv, err := NewEmbeddedServer(&serverCfg)
		if err != nil {
			return nil, err
		}
		b.server = srv
		natsURL = srv.ClientURL()
		logging.Info().Str("url", natsURL).Msg("embedded NATS server started")
	} else {
		logging.Info().Str("url", natsURL).Msg("using external NATS server")
	}

	nc, err := natsgo.Connect(natsURL,
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2*time.Second),
	)
	if err != nil {
		b.closeQuietly()
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	b.conn = nc

	js, err := jetstream.New(nc)
	if err != nil {
		b.closeQuietly()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	streamCfg := StreamConfigFrom(cfg)
	b.stream, err = NewStreamInitializer(js, &streamCfg)
	if err != nil {
		b.closeQuietly()
		return nil, err
	}
	stream, err := b.stream.EnsureStream(ctx)
	if err != nil {
		b.closeQuietly()
		return nil, fmt.Errorf("ensure stream exists: %w", err)
	}
	info := stream.CachedInfo()
	logging.Info().
		Str("name", info.Config.Name).
		Strs("subjects", info.Config.Subjects).
		Dur("max_age", info.Config.MaxAge).
		Msg("JetStream stream ready")

	pubCfg := DefaultPublisherConfig(natsURL)
	b.Publisher, err = NewNATSPublisher(&pubCfg, logger)
	if err != nil {
		b.closeQuietly()
		return nil, err
	}

	subCfg := DefaultSubscriberConfig(natsURL, cfg.StreamName)
	b.Subscriber, err = NewNATSSubscriber(&subCfg, logger)
	if err != nil {
		b.closeQuietly()
		return nil, err
	}

	return b, nil
}

// Transport returns TransportNATS or TransportGoChannel.
func (b *Bus) Transport() string {
	return b.transport
}

// Health reports whether the transport can accept events.
func (b *Bus) Health(ctx context.Context) error {
	if b.transport == TransportGoChannel {
		return nil
	}
	if b.server != nil && !b.server.IsRunning() {
		return errors.New("embedded NATS server stopped")
	}
	if b.conn == nil || !b.conn.IsConnected() {
		return errors.New("NATS not connected")
	}
	if b.stream != nil && !b.stream.IsHealthy(ctx) {
		return fmt.Errorf("stream %s unavailable", b.stream.Config().Name)
	}
	return nil
}

// Close shuts the transport down in reverse start order.
func (b *Bus) Close(ctx context.Context) error {
	var errs []error
	if b.Subscriber != nil {
		if err := b.Subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subscriber: %w", err))
		}
	}
	// gochannel is both publisher and subscriber; it is already closed.
	if b.Publisher != nil && b.transport == TransportNATS {
		if err := b.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if b.conn != nil {
		b.conn.Close()
	}
	if b.server != nil {
		if err := b.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown NATS server: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) closeQuietly() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = b.Close(ctx) //nolint:errcheck // startup already failed
}
