// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package eventprocessor

import (
	"time"

	"github.com/tomtom215/newsreel/internal/config"
)

// Subject prefix shared by every topic.
const subjectPrefix = "newsreel."

// ServerConfig configures the embedded NATS server.
type ServerConfig struct {
	Host              string
	Port              int
	StoreDir          string
	JetStreamMaxMem   int64
	JetStreamMaxStore int64
}

// ServerConfigFrom maps the service configuration.
func ServerConfigFrom(cfg *config.NATSConfig) ServerConfig {
	return ServerConfig{
		Host:              cfg.Host,
		Port:              cfg.Port,
		StoreDir:          cfg.StoreDir,
		JetStreamMaxMem:   cfg.MaxMemory,
		JetStreamMaxStore: cfg.MaxStore,
	}
}

// StreamConfig describes the JetStream stream holding the events.
type StreamConfig struct {
	Name            string
	Subjects        []string
	MaxAge          time.Duration
	MaxBytes        int64
	MaxMsgs         int64
	DuplicateWindow time.Duration
	Replicas        int
}

// StreamConfigFrom maps the service configuration.
func StreamConfigFrom(cfg *config.NATSConfig) StreamConfig {
	return StreamConfig{
		Name:            cfg.StreamName,
		Subjects:        []string{subjectPrefix + ">"},
		MaxAge:          time.Duration(cfg.StreamRetentionDays) * 24 * time.Hour,
		MaxBytes:        -1,
		MaxMsgs:         -1,
		DuplicateWindow: 2 * time.Minute,
		Replicas:        1,
	}
}

// PublisherConfig configures the NATS connection of a publisher.
type PublisherConfig struct {
	URL              string
	MaxReconnects    int
	ReconnectWait    time.Duration
	ReconnectBuffer  int
	EnableTrackMsgID bool // nolint:revive // ID is correct per Go conventions
}

// DefaultPublisherConfig returns production defaults for url.
func DefaultPublisherConfig(url string) PublisherConfig {
	return PublisherConfig{
		URL:              url,
		MaxReconnects:    -1, // Unlimited
		ReconnectWait:    2 * time.Second,
		ReconnectBuffer:  8 * 1024 * 1024,
		EnableTrackMsgID: true,
	}
}

// SubscriberConfig configures a durable JetStream subscriber.
type SubscriberConfig struct {
	URL              string
	StreamName       string
	DurableName      string
	QueueGroup       string
	SubscribersCount int
	AckWaitTimeout   time.Duration
	MaxDeliver       int
	CloseTimeout     time.Duration
}

// DefaultSubscriberConfig returns production defaults for url and stream.
func DefaultSubscriberConfig(url, stream string) SubscriberConfig {
	return SubscriberConfig{
		URL:              url,
		StreamName:       stream,
		DurableName:      "newsreel-activity",
		QueueGroup:       "newsreel",
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		MaxDeliver:       5,
		CloseTimeout:     30 * time.Second,
	}
}

// CircuitBreakerConfig configures the publish circuit breaker.
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultCircuitBreakerConfig trips after five consecutive failures and
// probes again after 30 seconds.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             "event-publisher",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// RouterConfig configures the consuming router.
type RouterConfig struct {
	CloseTimeout         time.Duration
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
}

// DefaultRouterConfig returns production defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         30 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 500 * time.Millisecond,
		RetryMaxInterval:     10 * time.Second,
	}
}

// NotifierConfig configures the asynchronous notifier.
type NotifierConfig struct {
	// QueueSize bounds events waiting to be published.
	QueueSize int

	// PublishTimeout bounds one publish call.
	PublishTimeout time.Duration
}

// DefaultNotifierConfig returns production defaults.
func DefaultNotifierConfig() NotifierConfig {
	return NotifierConfig{
		QueueSize:      1024,
		PublishTimeout: 5 * time.Second,
	}
}
