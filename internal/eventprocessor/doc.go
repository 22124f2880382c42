// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

/*
Package eventprocessor publishes recommender activity as Watermill messages.

Two event types are emitted:

  - newsreel.recommendation.served: one per answered prediction
  - newsreel.model.trained: one per published model

With NATS enabled, messages go to a JetStream stream (NEWSREEL_EVENTS by
default, subjects newsreel.>) through watermill-nats. The stream is created
or updated on startup by StreamInitializer, and an embedded nats-server can
host it in-process. Without NATS the same code publishes to an in-memory
Watermill gochannel, so the rest of the service never branches on transport.

Publishing is guarded by a gobreaker circuit breaker. Notifier decouples the
request path from the broker: the engine enqueues events without blocking
and a background service drains the queue. A full queue drops events
instead of slowing predictions down.

A Router consumes the events back with retry and panic recovery. The
default ActivityLogHandler logs each event and counts it, which is enough
for an audit trail and for verifying the pipeline end to end.
*/
package eventprocessor
