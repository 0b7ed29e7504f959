// Package config holds the analyzer driver's configuration. Settings
// merge in ascending priority: built-in defaults, an optional YAML
// config file, PLANG_* environment variables, then command-line flags.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Color modes accepted by the "color" setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config carries the driver settings.
type Config struct {
	// DumpSymbolTables controls whether each scope's symbol table is
	// printed when the scope is popped.
	DumpSymbolTables bool `yaml:"dump-symbol-tables"`

	// Color controls ANSI coloring of diagnostics: auto, always, never.
	Color string `yaml:"color"`
}

// Default returns the built-in settings: dumping on, color auto.
func Default() *Config {
	return &Config{
		DumpSymbolTables: true,
		Color:            ColorAuto,
	}
}

// LoadFile overlays settings from a YAML file onto c. A missing file is
// not an error; a malformed one is.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return c.validate()
}

// LoadEnv overlays PLANG_DUMP_SYMBOL_TABLES and PLANG_COLOR onto c.
func (c *Config) LoadEnv() error {
	if v, ok := os.LookupEnv("PLANG_DUMP_SYMBOL_TABLES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid PLANG_DUMP_SYMBOL_TABLES value %q", v)
		}
		c.DumpSymbolTables = b
	}
	if v, ok := os.LookupEnv("PLANG_COLOR"); ok {
		c.Color = v
	}
	return c.validate()
}

func (c *Config) validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	}
	return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
}
