package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, false)
	log.Info().Str("screen", "next_race").Msg("rendered")
	log.Debug().Msg("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines: got %d, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["screen"] != "next_race" || entry["message"] != "rendered" {
		t.Errorf("entry: %v", entry)
	}
	if _, ok := entry["pid"]; !ok {
		t.Error("missing pid")
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing time")
	}
}

func TestNew_Debug(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, false)
	log.Debug().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug entry missing: %q", buf.String())
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, true)
	Since(log.Info(), time.Now()).Msg("serving")
	out := buf.String()
	if !strings.Contains(out, "serving") || strings.HasPrefix(out, "{") {
		t.Errorf("console output: %q", out)
	}
}
