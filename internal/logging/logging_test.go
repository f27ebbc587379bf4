package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestInitSetsDefaultLevel(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(original)
	})

	Init(false)
	logger := slog.Default()
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("expected info to be disabled by default")
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatalf("expected warn to be enabled by default")
	}

	Init(true)
	logger = slog.Default()
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("expected debug to be enabled with verbose")
	}
}

func TestNewNonTerminalWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.LevelInfo, &buf)
	logger.Warn("coercion fallback", slog.Int("row", 3), slog.String("field", "cost_sek"))

	out := buf.String()
	if !strings.Contains(out, `"msg":"coercion fallback"`) {
		t.Fatalf("expected JSON message, got %q", out)
	}
	if !strings.Contains(out, `"field":"cost_sek"`) {
		t.Fatalf("expected field attribute, got %q", out)
	}
	if IsTerminal(&buf) {
		t.Fatal("expected buffer not to be a terminal")
	}
}
