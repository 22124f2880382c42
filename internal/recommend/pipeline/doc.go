// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

// Package pipeline assembles trained recommendation models.
//
// Builder loads train clicks, test clicks and article embeddings from a
// recommend.DataProvider, fits the content-based and collaborative scorers
// and combines them into a recommend.Model. When a snapshot store is
// configured, fitted SVD parameters are saved under a fingerprint of the
// training clicks and hyperparameters, and later builds with identical
// inputs restore them instead of running SGD again.
package pipeline
