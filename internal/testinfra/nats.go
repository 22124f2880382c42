// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultNATSImage is the NATS server image used in integration tests.
	DefaultNATSImage = "nats:2.10-alpine"

	natsClientPort = "4222/tcp"
)

// NATSContainer is a JetStream-enabled NATS server.
type NATSContainer struct {
	testcontainers.Container
	URL string
}

// NATSOption configures a NATSContainer.
type NATSOption func(*testcontainers.ContainerRequest)

// WithNATSImage overrides DefaultNATSImage.
func WithNATSImage(image string) NATSOption {
	return func(req *testcontainers.ContainerRequest) {
		req.Image = image
	}
}

// NewNATSContainer starts a NATS server with JetStream and waits until it
// accepts clients.
func NewNATSContainer(ctx context.Context, opts ...NATSOption) (*NATSContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        DefaultNATSImage,
		ExposedPorts: []string{natsClientPort},
		Cmd:          []string{"-js"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(natsClientPort),
			wait.ForLog("Server is ready"),
		).WithDeadline(60 * time.Second),
	}
	for _, opt := range opts {
		opt(&req)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start NATS container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // already failing
		return nil, fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, natsClientPort)
	if err != nil {
		_ = container.Terminate(ctx) //nolint:errcheck // already failing
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &NATSContainer{
		Container: container,
		URL:       fmt.Sprintf("nats://%s:%s", host, port.Port()),
	}, nil
}
