package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandler_TeesRecords(t *testing.T) {
	var text, js bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&js, &slog.HandlerOptions{Level: slog.LevelDebug}),
		nil,
	)
	logger := slog.New(h).With("run", 1)

	logger.Info("info only in json")
	logger.Warn("in both", "path", "a.md")

	if strings.Contains(text.String(), "info only in json") {
		t.Errorf("text handler should filter Info, got: %q", text.String())
	}
	if !strings.Contains(text.String(), "path=a.md") || !strings.Contains(text.String(), "run=1") {
		t.Errorf("text handler missing attributes, got: %q", text.String())
	}

	lines := strings.Split(strings.TrimSpace(js.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON lines, got %d: %q", len(lines), js.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if rec["path"] != "a.md" {
		t.Errorf("path = %v, want a.md", rec["path"])
	}
}

func TestMultiHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))

	if h.Enabled(t.Context(), slog.LevelWarn) {
		t.Error("Warn should be disabled when the only handler is at Error")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("Error should be enabled")
	}
	if NewMultiHandler().Enabled(t.Context(), slog.LevelError) {
		t.Error("empty MultiHandler should not be enabled")
	}
}

func TestMultiHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewMultiHandler(NewHandler(&buf, nil))).WithGroup("doc")

	logger.Info("msg", "status", "checked")

	if !strings.Contains(buf.String(), "doc.status=checked") {
		t.Errorf("expected grouped key, got: %q", buf.String())
	}
}
