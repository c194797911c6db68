package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf, level)
	t.Cleanup(func() { SetOutput(os.Stdout, slog.LevelInfo) })
	return &buf
}

func TestInfoWritesJSONLine(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)

	Info("recommendation.complete", map[string]any{
		"predicted_career": "Data Scientist",
		"err":              errors.New("boom"),
	})

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if payload["msg"] != "recommendation.complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts field")
	}
	if payload["predicted_career"] != "Data Scientist" {
		t.Fatalf("unexpected predicted_career: %v", payload["predicted_career"])
	}
	if payload["err"] != "boom" {
		t.Fatalf("expected error rendered as string, got %v", payload["err"])
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)

	Debug("report.logo_skipped", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	Warn("report.logo_skipped", nil)
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
