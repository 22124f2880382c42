// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

// Package services adapts Newsreel components to suture.Service.
//
// Each wrapper blocks in Serve until its context is canceled and returns a
// non-nil error on failure so the supervisor can restart it.
package services
