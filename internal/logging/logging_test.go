// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"bogus":    zerolog.InfoLevel,
	}
	for input, want := range tests {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	if !ValidLevel("warn") {
		t.Error("ValidLevel(warn) = false")
	}
	if ValidLevel("loud") {
		t.Error("ValidLevel(loud) = true")
	}
}

func TestCtx_AddsIDs(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(prev)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithCorrelationID(ctx, "abcd1234")
	Ctx(ctx).Info().Msg("rendered")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v (%s)", err, buf.String())
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v", entry["request_id"])
	}
	if entry["correlation_id"] != "abcd1234" {
		t.Errorf("correlation_id = %v", entry["correlation_id"])
	}
}

func TestCtx_NoIDs(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(prev)

	Ctx(context.Background()).Info().Msg("plain")
	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("unexpected request_id in %s", buf.String())
	}
}

func TestGenerateIDs(t *testing.T) {
	if got := len(GenerateCorrelationID()); got != 8 {
		t.Errorf("correlation id length = %d, want 8", got)
	}
	if GenerateRequestID() == GenerateRequestID() {
		t.Error("request ids must be unique")
	}
}

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(zerolog.New(&buf)))

	logger.WithGroup("supervisor").Warn("service restarted",
		"service", "http", "attempt", 2, "error", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"supervisor.service":"http"`, `"supervisor.attempt":2`, "boom", "service restarted"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}

func TestSlogHandler_WithAttrsDoesNotShare(t *testing.T) {
	var buf bytes.Buffer
	base := NewSlogHandlerWithLogger(zerolog.New(&buf))
	a := base.WithAttrs([]slog.Attr{slog.String("a", "1")})
	_ = base.WithAttrs([]slog.Attr{slog.String("b", "2")})

	slog.New(a).Info("x")
	if strings.Contains(buf.String(), `"b"`) {
		t.Errorf("attrs leaked between handlers: %s", buf.String())
	}
}
