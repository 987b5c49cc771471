package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"Warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCtxAddsRequestAndOwner(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(Config{Level: LevelDebug, Format: "json", Output: &buf})

	ctx := WithLogger(context.Background(), l)
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithOwnerID(ctx, "owner-9")

	Ctx(ctx).Info("activity logged", String("activity_id", "a-1"), Int("duration_minutes", 30))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	for key, want := range map[string]any{
		"msg":              "activity logged",
		"request_id":       "req-1",
		"owner_id":         "owner-9",
		"activity_id":      "a-1",
		"duration_minutes": float64(30),
	} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %v", key, entry[key], want)
		}
	}
}

func TestWithRequestIDGeneratesWhenEmpty(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	if RequestIDFromContext(ctx) == "" {
		t.Error("expected a generated request id")
	}
}

func TestLevelFiltersEntries(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(Config{Level: LevelWarn, Format: "text", Output: &buf})

	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info entry written at warn level: %s", buf.String())
	}
	l.Warn("kept")
	if !bytes.Contains(buf.Bytes(), []byte("kept")) {
		t.Errorf("warn entry missing: %s", buf.String())
	}
}
