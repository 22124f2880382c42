// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

// Newsreel API
//
// @title Newsreel API
// @version 1.0
// @description Hybrid article recommendation service.
// @description
// @description Recommendations blend a content-based scorer over article embeddings with a
// @description biased SVD collaborative scorer. Every response uses the envelope
// @description `{"status": "success"|"error", "message": ..., "data": ...}`.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/newsreel
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api
//
// @securityDefinitions.apikey FunctionKey
// @in header
// @name x-functions-key
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main
