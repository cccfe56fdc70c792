// Package config loads server and CLI settings from an optional YAML file and
// BORDERTUBE_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BORDERTUBE_"

// Log configures the process logger.
type Log struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Human bool   `yaml:"human"`
}

// Config is the effective configuration.
type Config struct {
	Addr           string        `yaml:"addr" validate:"required,hostname_port"`
	BasePath       string        `yaml:"base_path" validate:"required,startswith=/"`
	Catalog        string        `yaml:"catalog"`
	StylesheetBase string        `yaml:"stylesheet_base" validate:"omitempty,url"`
	Strict         bool          `yaml:"strict"`
	Minify         bool          `yaml:"minify"`
	Theme          string        `yaml:"theme"`
	ThemeVariant   string        `yaml:"theme_variant" validate:"omitempty,oneof=light dark"`
	Watch          bool          `yaml:"watch" validate:"excluded_without=Catalog"`
	Log            Log           `yaml:"log"`
	ShutdownGrace  time.Duration `yaml:"shutdown_grace" validate:"gt=0"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          ":8080",
		BasePath:      "/",
		Strict:        true,
		Log:           Log{Level: "info"},
		ShutdownGrace: 10 * time.Second,
	}
}

// Policy names the decoding policy selected by Strict.
func (c Config) Policy() string {
	if c.Strict {
		return "strict"
	}
	return "lenient"
}

// Load reads path (skipped when empty) over the defaults, applies environment
// overrides from lookup (os.LookupEnv when nil) and validates the result.
func Load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %s: %w", path, err)
		}
		defer f.Close()
		if err := decode(f, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Parse decodes YAML over the defaults without environment overrides.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := decode(bytes.NewReader(data), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ADDR":            &cfg.Addr,
		"BASE_PATH":       &cfg.BasePath,
		"CATALOG":         &cfg.Catalog,
		"STYLESHEET_BASE": &cfg.StylesheetBase,
		"THEME":           &cfg.Theme,
		"THEME_VARIANT":   &cfg.ThemeVariant,
		"LOG_LEVEL":       &cfg.Log.Level,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"STRICT":    &cfg.Strict,
		"MINIFY":    &cfg.Minify,
		"WATCH":     &cfg.Watch,
		"LOG_HUMAN": &cfg.Log.Human,
	}
	for key, dst := range bools {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Field: EnvPrefix + key, Message: fmt.Sprintf("invalid boolean %q", v), Err: err}
		}
		*dst = parsed
	}

	if v, ok := lookup(EnvPrefix + "SHUTDOWN_GRACE"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ValidationError{Field: EnvPrefix + "SHUTDOWN_GRACE", Message: fmt.Sprintf("invalid duration %q", v), Err: err}
		}
		cfg.ShutdownGrace = d
	}
	return nil
}
