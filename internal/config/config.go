// Package config loads editor settings from a TOML file. Defaults are
// applied first; a missing file is not an error.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full editor configuration.
type Config struct {
	Font   Font   `toml:"font"`
	Editor Editor `toml:"editor"`
	Files  Files  `toml:"files"`
}

// Font selects the measurement context used for glyph geometry.
type Font struct {
	Family     string  `toml:"family"`
	Size       float64 `toml:"size"`
	DPIScale   float64 `toml:"dpi_scale"`
	LineHeight float64 `toml:"line_height"`
}

// Editor holds editing behavior settings.
type Editor struct {
	TabWidth int `toml:"tab_width"`
}

// Files holds file handling settings.
type Files struct {
	Autosave         bool `toml:"autosave"`
	AutosaveInterval int  `toml:"autosave_interval"` // seconds
	WatchExternal    bool `toml:"watch_external"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Font: Font{
			Family:     "Courier Prime",
			Size:       12,
			DPIScale:   1,
			LineHeight: 16,
		},
		Editor: Editor{
			TabWidth: 4,
		},
		Files: Files{
			Autosave:         false,
			AutosaveInterval: 30,
			WatchExternal:    true,
		},
	}
}

// Load reads configuration from path over the defaults. A missing file
// yields the defaults with no error; a malformed file yields a
// *ParseError.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Message: err.Error(), Err: err}
	}

	cfg.normalize()
	return cfg, nil
}

// normalize clamps values that would break geometry or editing.
func (c *Config) normalize() {
	if c.Font.Size <= 0 {
		c.Font.Size = Default().Font.Size
	}
	if c.Font.DPIScale <= 0 {
		c.Font.DPIScale = 1
	}
	if c.Font.LineHeight <= 0 {
		c.Font.LineHeight = c.Font.Size * 4 / 3
	}
	if c.Editor.TabWidth < 1 {
		c.Editor.TabWidth = 1
	}
	if c.Files.AutosaveInterval < 1 {
		c.Files.AutosaveInterval = 1
	}
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
