// Package config defines the configuration types and defaults for diffpatch.
package config

import (
	"errors"
	"fmt"

	"github.com/donaldgifford/diffpatch/pkg/diff"
	"github.com/donaldgifford/diffpatch/pkg/patcher"
)

// Config is the top-level configuration.
type Config struct {
	Diff   DiffConfig   `yaml:"diff"`
	Apply  ApplyConfig  `yaml:"apply"`
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
}

// DiffConfig holds patch generation settings.
type DiffConfig struct {
	ContextLines int    `yaml:"context_lines"`
	Algorithm    string `yaml:"algorithm"`
}

// ApplyConfig holds patch application settings.
type ApplyConfig struct {
	Algorithm string `yaml:"algorithm"`
	Reverse   bool   `yaml:"reverse"`
	RootDir   string `yaml:"root_dir"`
	Workers   int    `yaml:"workers"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// OutputConfig holds terminal output settings.
type OutputConfig struct {
	Color string `yaml:"color"`
}

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultConfig returns a Config with all default values.
func DefaultConfig() *Config {
	return &Config{
		Diff: DiffConfig{
			ContextLines: diff.DefaultContext,
			Algorithm:    "myers",
		},
		Apply: ApplyConfig{
			Algorithm: patcher.Fuzzy.String(),
			Workers:   1,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: LogFormatConsole,
		},
		Output: OutputConfig{
			Color: ColorAuto,
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Diff.ContextLines < 0 {
		errs = append(errs, fmt.Errorf("diff.context_lines must be >= 0, got %d", c.Diff.ContextLines))
	}
	if _, err := diff.Lookup(c.Diff.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("diff.algorithm: %w", err))
	}
	if _, err := patcher.ParseAlgorithm(c.Apply.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("apply.algorithm: %w", err))
	}
	if c.Apply.Workers < 1 {
		errs = append(errs, fmt.Errorf("apply.workers must be >= 1, got %d", c.Apply.Workers))
	}
	switch c.Log.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format must be %q or %q, got %q", LogFormatConsole, LogFormatJSON, c.Log.Format))
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("output.color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, c.Output.Color))
	}
	return errors.Join(errs...)
}
