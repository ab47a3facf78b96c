// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"INFO", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInit_JSONOutput(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	Info().Str("component", "test").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("output missing message: %s", out)
	}
	if !strings.Contains(out, `"component":"test"`) {
		t.Errorf("output missing field: %s", out)
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	Debug().Msg("suppressed")
	Warn().Msg("emitted")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("debug message leaked through warn level: %s", out)
	}
	if !strings.Contains(out, "emitted") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestInit_DoesNotPanicOnConsoleFormat(t *testing.T) {
	prev := Logger()
	defer SetLogger(prev)

	Init(Config{Level: "debug", Format: "console"})
	Init(Config{Level: "info", Format: "json"})
}
