// Package config loads the previewhost TOML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// validate is shared; validator.Validate caches struct metadata.
var validate = validator.New()

// Plugin declares a scripted previewer class.
type Plugin struct {
	Class  string `toml:"class" validate:"required"`
	Name   string `toml:"name"`
	Script string `toml:"script" validate:"required"`
}

// Config is the on-disk configuration.
type Config struct {
	// Associations is the registry image used where no platform registry
	// exists. Relative paths resolve against the config file directory.
	Associations string   `toml:"associations"`
	LogFile      string   `toml:"log_file"`
	LogLevel     string   `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Theme        string   `toml:"theme" validate:"oneof=dark light"`
	Scale        float64  `toml:"scale" validate:"gt=0,lte=8"`
	Watch        bool     `toml:"watch"`
	ShowHidden   bool     `toml:"show_hidden"`
	Plugins      []Plugin `toml:"plugin" validate:"dive"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel: "info",
		Theme:    "dark",
		Scale:    1,
		Watch:    true,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/previewhost/config.toml, falling
// back to the user config directory.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		base = dir
	}
	return filepath.Join(base, "previewhost", "config.toml")
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := parse(path, bytes.NewReader(data))
	if err != nil {
		return Config{}, err
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes and validates configuration from r. Paths are left as
// written.
func Parse(r io.Reader) (Config, error) {
	return parse("<reader>", r)
}

func parse(source string, r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, &ParseError{Path: source, Err: err}
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w: %w", source, ErrInvalid, err)
	}
	return cfg, nil
}

func (c *Config) resolvePaths(dir string) {
	c.Associations = resolve(dir, c.Associations)
	c.LogFile = resolve(dir, c.LogFile)
	for i := range c.Plugins {
		c.Plugins[i].Script = resolve(dir, c.Plugins[i].Script)
	}
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return filepath.Join(dir, path)
}

// Level maps LogLevel to a slog level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Dark reports whether the dark theme is selected.
func (c Config) Dark() bool {
	return c.Theme != "light"
}
