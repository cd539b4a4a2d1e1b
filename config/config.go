// Package config loads editor settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"graphed/editor"
)

// Config holds graphed configuration.
type Config struct {
	Zoom      ZoomConfig      `toml:"zoom"`
	Selection SelectionConfig `toml:"selection"`
	Log       LogConfig       `toml:"log"`
}

// ZoomConfig bounds the zoom factor. Step is the factor applied per wheel
// notch.
type ZoomConfig struct {
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
	Step float64 `toml:"step"`
}

// SelectionConfig names the box selection merge policy used for each
// modifier key: "replace", "union", "toggle" or "subtract".
type SelectionConfig struct {
	Default string `toml:"default"`
	Shift   string `toml:"shift"`
	Ctrl    string `toml:"ctrl"`
	Alt     string `toml:"alt"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text", "json"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Zoom: ZoomConfig{
			Min:  editor.DefaultZoomRange.Min,
			Max:  editor.DefaultZoomRange.Max,
			Step: 1.1,
		},
		Selection: SelectionConfig{
			Default: "replace",
			Shift:   "union",
			Ctrl:    "toggle",
			Alt:     "subtract",
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Dir returns the graphed config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "graphed")
}

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads path over the defaults. A missing file yields the defaults;
// unknown keys and invalid values are errors.
func Load(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []error

	if err := c.ZoomRange().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Zoom.Step <= 1 {
		errs = append(errs, fmt.Errorf("zoom.step must be > 1, got %v", c.Zoom.Step))
	}

	for key, name := range map[string]string{
		"selection.default": c.Selection.Default,
		"selection.shift":   c.Selection.Shift,
		"selection.ctrl":    c.Selection.Ctrl,
		"selection.alt":     c.Selection.Alt,
	} {
		if _, ok := editor.LookupMergePolicy(name); !ok {
			errs = append(errs, fmt.Errorf("%s: unknown merge policy %q", key, name))
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// ZoomRange returns the configured zoom bounds.
func (c *Config) ZoomRange() editor.ZoomRange {
	return editor.ZoomRange{Min: c.Zoom.Min, Max: c.Zoom.Max}
}

// MergePolicy returns the policy for the held modifiers. Shift wins over
// Ctrl, Ctrl over Alt. Unknown names fall back to replace.
func (c *Config) MergePolicy(shift, ctrl, alt bool) editor.MergePolicy {
	name := c.Selection.Default
	switch {
	case shift:
		name = c.Selection.Shift
	case ctrl:
		name = c.Selection.Ctrl
	case alt:
		name = c.Selection.Alt
	}
	if p, ok := editor.LookupMergePolicy(name); ok {
		return p
	}
	return editor.ReplaceSelection
}
