// Newsreel - Hybrid Article Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsreel

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestWatermillLogger(t *testing.T) {
	var buf bytes.Buffer
	var adapter watermill.LoggerAdapter = NewWatermillLogger(zerolog.New(&buf))

	adapter = adapter.With(watermill.LogFields{"topic": "model.trained"})
	adapter.Error("publish failed", errors.New("no responders"), watermill.LogFields{"attempt": 2})

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["level"] != "error" || entry["message"] != "publish failed" {
		t.Errorf("entry = %v", entry)
	}
	if entry["topic"] != "model.trained" || entry["attempt"] != float64(2) {
		t.Errorf("fields missing: %v", entry)
	}
	if entry["error"] != "no responders" {
		t.Errorf("error = %v", entry["error"])
	}
}

func TestWatermillLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewWatermillLogger(zerolog.New(&buf))

	adapter.Info("connected", nil)
	adapter.Debug("debug line", watermill.LogFields{"k": "v"})

	out := buf.String()
	if !strings.Contains(out, "connected") {
		t.Errorf("info line missing: %q", out)
	}
}
