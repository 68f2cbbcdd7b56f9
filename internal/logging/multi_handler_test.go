package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandlerPerHandlerLevels(t *testing.T) {
	var debugBuf, infoBuf bytes.Buffer
	multi := NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	logger := slog.New(multi).With("module", "control")

	if !multi.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("MultiHandler should be enabled when any handler is")
	}

	logger.Debug("flash toggled")
	logger.Info("mode changed")

	if !strings.Contains(debugBuf.String(), "flash toggled") || !strings.Contains(debugBuf.String(), "mode changed") {
		t.Errorf("debug handler output = %q", debugBuf.String())
	}
	if strings.Contains(infoBuf.String(), "flash toggled") {
		t.Errorf("info handler wrote a debug record: %q", infoBuf.String())
	}
	if !strings.Contains(infoBuf.String(), "module=control") {
		t.Errorf("WithAttrs not applied to every handler: %q", infoBuf.String())
	}
}

func TestMultiHandlerWithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewMultiHandler(slog.NewTextHandler(&buf, nil))).WithGroup("line")
	logger.Info("written", "pin", 23)

	if !strings.Contains(buf.String(), "line.pin=23") {
		t.Errorf("output = %q, want grouped key line.pin", buf.String())
	}
}
