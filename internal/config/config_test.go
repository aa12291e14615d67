package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"Diff.ContextLines", cfg.Diff.ContextLines, 3},
		{"Diff.Algorithm", cfg.Diff.Algorithm, "myers"},
		{"Apply.Algorithm", cfg.Apply.Algorithm, "fuzzy"},
		{"Apply.Reverse", cfg.Apply.Reverse, false},
		{"Apply.RootDir", cfg.Apply.RootDir, ""},
		{"Apply.Workers", cfg.Apply.Workers, 1},
		{"Log.Level", cfg.Log.Level, "warn"},
		{"Log.Format", cfg.Log.Format, LogFormatConsole},
		{"Log.File", cfg.Log.File, ""},
		{"Output.Color", cfg.Output.Color, ColorAuto},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative context", func(c *Config) { c.Diff.ContextLines = -1 }, "diff.context_lines"},
		{"unknown diff algorithm", func(c *Config) { c.Diff.Algorithm = "patience" }, "diff.algorithm"},
		{"unknown apply algorithm", func(c *Config) { c.Apply.Algorithm = "magic" }, "apply.algorithm"},
		{"zero workers", func(c *Config) { c.Apply.Workers = 0 }, "apply.workers"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad color", func(c *Config) { c.Output.Color = "sometimes" }, "output.color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsEveryError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Diff.ContextLines = -2
	cfg.Apply.Workers = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"diff.context_lines", "apply.workers"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestValidateAlgorithmCaseInsensitive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Diff.Algorithm = "XDiff"
	cfg.Apply.Algorithm = "Strict"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")

	yaml := `diff:
  context_lines: 5
apply:
  algorithm: similar
  workers: 4
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Diff.ContextLines != 5 {
		t.Errorf("ContextLines: got %d, want 5", cfg.Diff.ContextLines)
	}
	if cfg.Apply.Algorithm != "similar" {
		t.Errorf("Apply.Algorithm: got %q, want %q", cfg.Apply.Algorithm, "similar")
	}
	if cfg.Apply.Workers != 4 {
		t.Errorf("Workers: got %d, want 4", cfg.Apply.Workers)
	}

	// Unspecified fields retain defaults.
	if cfg.Diff.Algorithm != "myers" {
		t.Errorf("Diff.Algorithm: got %q, want %q (default)", cfg.Diff.Algorithm, "myers")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level: got %q, want %q (default)", cfg.Log.Level, "warn")
	}
}

func TestLoadNoConfigReturnsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if *cfg != *DefaultConfig() {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestDiscoverPriority(t *testing.T) {
	dir := t.TempDir()
	content := []byte("diff:\n  context_lines: 1\n")

	names := []string{"diffpatch.yml", "diffpatch.yaml", ".diffpatch.yml", ".diffpatch.yaml"}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// Each file wins until it is removed.
	for _, name := range names {
		want := filepath.Join(dir, name)
		if got := Discover(dir); got != want {
			t.Errorf("Discover = %q, want %q", got, want)
		}
		if err := os.Remove(want); err != nil {
			t.Fatal(err)
		}
	}

	if got := Discover(dir); got != "" {
		t.Errorf("Discover in empty dir: got %q, want empty string", got)
	}
}

func TestLoadDiscovery(t *testing.T) {
	dir := t.TempDir()
	yaml := "log:\n  level: debug\n  format: json\n"
	if err := os.WriteFile(filepath.Join(dir, ".diffpatch.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level: got %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != LogFormatJSON {
		t.Errorf("Log.Format: got %q, want %q", cfg.Log.Format, LogFormatJSON)
	}
	if cfg.Diff.ContextLines != 3 {
		t.Errorf("ContextLines: got %d, want 3 (default)", cfg.Diff.ContextLines)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("diff: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
	if !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yml")
	if err := os.WriteFile(path, []byte("apply:\n  workers: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("unexpected error: %v", err)
	}

	// LoadFile does not validate.
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Apply.Workers != 0 {
		t.Errorf("Workers: got %d, want 0", cfg.Apply.Workers)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected default config, got %+v", cfg)
	}
}
