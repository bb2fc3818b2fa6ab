package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/suspsim/internal/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New(config.LogConfig{Level: "info", Format: "json"}, "test", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer closer.Close()

	l.Debug().Msg("hidden")
	l.Info().Float64("speed", 13.88).Msg("evaluated")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["component"] != "test" || rec["message"] != "evaluated" || rec["speed"] != 13.88 {
		t.Fatalf("unexpected record %#v", rec)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l, _, err := New(config.LogConfig{Level: "debug", Format: "console"}, "dash", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Debug().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suspsim.log")
	l, closer, err := New(config.LogConfig{Level: "info", Format: "json", File: path}, "file", nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info().Msg("written")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "written") {
		t.Fatalf("expected log line in file, got %q", data)
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, _, err := New(config.LogConfig{Level: "loud"}, "x", nil); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
