// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

/*
Package logging provides the process-wide zerolog logger for Newsreel.

Call Init once from main with the logging section of the configuration;
until then a JSON logger at info level writes to stderr.

	logging.Init(logging.Config{Level: "debug", Format: "console"})
	logging.Info().Str("addr", addr).Msg("HTTP server listening")

Components derive their own logger and keep it:

	logger := logging.WithComponent("pipeline")

Request handlers log through the request context so that the request id
set by the middleware appears on every line:

	logging.Ctx(r.Context()).Warn().Err(err).Msg("Prediction failed")

# Adapters

Two libraries in the stack want their own logger types. NewSlogLogger
returns a *slog.Logger for sutureslog, and NewWatermillLogger returns a
watermill.LoggerAdapter for the event publisher. Both write through
zerolog so there is a single output format.

# Environment Variables

  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include file:line (default: false)
*/
package logging
