// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

// Package testinfra starts Docker-backed dependencies for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/testinfra/...
//
// NewNATSContainer runs a JetStream-enabled NATS server so the event bus can
// be exercised against a real broker instead of the embedded one.
package testinfra
