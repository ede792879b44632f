package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "json", Output: &buf})

	logger.Info("hidden")
	logger.Component("stats").Warn().Msg("visible")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "visible" {
		t.Fatalf("expected message %q, got %v", "visible", entry["message"])
	}
	if entry["component"] != "stats" {
		t.Fatalf("expected component field, got %v", entry["component"])
	}
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })
	SetGlobalLogger(New(Config{Level: "debug", Output: &buf}))

	ctx := WithRequestID(context.Background(), "req-42")
	WithContext(ctx).Debug().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["request_id"] != "req-42" {
		t.Fatalf("expected request_id req-42, got %v", entry["request_id"])
	}
}

func TestRequestIDMissing(t *testing.T) {
	if got := RequestID(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}
}
