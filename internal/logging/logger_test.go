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

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// captureGlobal points the global logger at a buffer for one test.
func captureGlobal(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func decodeLine(t *testing.T, line string) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q: %v", line, err)
	}
	return entry
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" || cfg.Format != "json" {
		t.Errorf("DefaultConfig() level/format = %q/%q, want info/json", cfg.Level, cfg.Format)
	}
	if cfg.Caller {
		t.Error("DefaultConfig().Caller = true, want false")
	}
	if !cfg.Timestamp {
		t.Error("DefaultConfig().Timestamp = false, want true")
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	buf := captureGlobal(t, "warn")

	Info().Msg("dropped")
	Warn().Str("user", "7").Msg("kept")

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "dropped") {
		t.Errorf("info line written at warn level: %s", out)
	}
	entry := decodeLine(t, out)
	if entry["message"] != "kept" || entry["level"] != "warn" || entry["user"] != "7" {
		t.Errorf("entry = %v", entry)
	}
}

func TestInit_Console(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("console line")
	if !strings.Contains(buf.String(), "console line") {
		t.Errorf("console output = %q", buf.String())
	}
	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("console format produced JSON: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"verbose", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{"debug", "Info", "warn", "error"} {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false", level)
		}
	}
	for _, level := range []string{"", "loud", "information"} {
		if ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = true", level)
		}
	}
}

func TestWithComponent(t *testing.T) {
	buf := captureGlobal(t, "info")

	logger := WithComponent("pipeline")
	logger.Info().Msg("built")

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["component"] != "pipeline" {
		t.Errorf("component = %v, want pipeline", entry["component"])
	}
}

func TestErr(t *testing.T) {
	buf := captureGlobal(t, "info")

	Err(errors.New("boom")).Msg("failed")

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["error"] != "boom" || entry["level"] != "error" {
		t.Errorf("entry = %v", entry)
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Str("k", "v").Msg("replaced")

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	if entry["message"] != "replaced" || entry["k"] != "v" {
		t.Errorf("entry = %v", entry)
	}
}
