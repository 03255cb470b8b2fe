package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriterRenamesErrorKey(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, slog.LevelInfo)
	log.Info("analysis failed", "error", errors.New("boom"), "charts", 2)

	out := buf.String()
	if !strings.Contains(out, "err=boom") {
		t.Errorf("output %q does not contain err=boom", out)
	}
	if strings.Contains(out, "error=") {
		t.Errorf("output %q still contains the error key", out)
	}
}

func TestNewWithWriterHonorsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewWithWriter(&buf, LevelFor(false))
	log.Debug("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
	if LevelFor(true) != slog.LevelDebug {
		t.Errorf("LevelFor(true) = %v, want debug", LevelFor(true))
	}
}

func TestNewNop(t *testing.T) {
	t.Parallel()
	NewNop().Error("discarded", "error", errors.New("x"))
}
