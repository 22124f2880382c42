// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package eventprocessor

import "errors"

var (
	// ErrPublisherClosed is returned by Publish after Close.
	ErrPublisherClosed = errors.New("publisher is closed")

	// ErrNilPublisher is returned when a nil Watermill publisher is wrapped.
	ErrNilPublisher = errors.New("publisher cannot be nil")

	// ErrInvalidEvent is returned for events missing required fields.
	ErrInvalidEvent = errors.New("invalid event")
)
