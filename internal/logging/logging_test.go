package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/donaldgifford/diffpatch/internal/config"
)

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New(config.LogConfig{Level: "warn", Format: config.LogFormatConsole}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Warn("shown", zap.String("path", "a.txt"))
	cleanup()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "a.txt") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New(config.LogConfig{Level: "debug", Format: config.LogFormatJSON}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("located chunk", zap.Int("offset", 4))
	cleanup()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if entry["msg"] != "located chunk" {
		t.Errorf("msg: got %v, want %q", entry["msg"], "located chunk")
	}
	if entry["offset"] != float64(4) {
		t.Errorf("offset: got %v, want 4", entry["offset"])
	}
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diffpatch.log")
	var buf bytes.Buffer

	logger, cleanup, err := New(config.LogConfig{Level: "info", Format: config.LogFormatConsole, File: path}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("to file")
	cleanup()

	if buf.Len() != 0 {
		t.Errorf("writer received output with a file sink: %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for unknown level, got nil")
	}
}
