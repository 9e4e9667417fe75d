// SPDX-License-Identifier: MIT

// Package config loads the dequad CLI settings from TOML or YAML files,
// with DEQUAD_* environment variables layered on top.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dequad/internal/logging"
	"github.com/katalvlaran/dequad/precision"
	"github.com/katalvlaran/dequad/tanhsinh"
)

// EnvPrefix prefixes every environment override, e.g. DEQUAD_DIGITS=50.
const EnvPrefix = "DEQUAD_"

var (
	// ErrUnknownFormat is returned for files whose extension is neither TOML nor YAML.
	ErrUnknownFormat = errors.New("config: unknown file format")

	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Format is the on-disk encoding of a config file.
type Format int

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// DetectFormat maps .toml, .yaml and .yml to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Config holds every setting shared by the CLI commands.
type Config struct {
	Mode     string  `toml:"mode" yaml:"mode"`
	Digits   int     `toml:"digits" yaml:"digits"`
	Tol      float64 `toml:"tol" yaml:"tol"`
	MaxLevel int     `toml:"max_level" yaml:"max_level"`
	Strict   bool    `toml:"strict" yaml:"strict"`
	Fallback bool    `toml:"fallback" yaml:"fallback"`
	Workers  int     `toml:"workers" yaml:"workers"`
	LogLevel string  `toml:"log_level" yaml:"log_level"`
	Metrics  bool    `toml:"metrics" yaml:"metrics"`
}

// Default returns the settings used when no file or override is given.
func Default() Config {
	return Config{
		Mode:     precision.Fixed.String(),
		Digits:   precision.InitialDigits,
		Tol:      1e-12,
		MaxLevel: tanhsinh.DefaultMaxLevel,
		Workers:  1,
		LogLevel: "warn",
	}
}

// Load reads path over Default, applies environment overrides and validates.
// An empty path skips the file.
func Load(path string) (Config, error) {
	return LoadFormat(path, FormatAuto)
}

// LoadFormat is Load with an explicit format.
func LoadFormat(path string, format Format) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, format, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func decodeFile(path string, format Format, cfg *Config) error {
	if format == FormatAuto {
		f, err := DetectFormat(path)
		if err != nil {
			return err
		}
		format = f
	}

	switch format {
	case FormatTOML:
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return fmt.Errorf("config: decode %s: %w", path, err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undec[0].String(), path)
		}
	case FormatYAML:
		fh, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		defer fh.Close()
		dec := yaml.NewDecoder(fh)
		dec.KnownFields(true)
		// An empty document leaves the defaults untouched.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("config: decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return nil
}

type lookupFunc func(string) (string, bool)

// applyEnv overrides fields from DEQUAD_MODE, DEQUAD_DIGITS, DEQUAD_TOL,
// DEQUAD_MAX_LEVEL, DEQUAD_STRICT, DEQUAD_FALLBACK, DEQUAD_WORKERS,
// DEQUAD_LOG_LEVEL and DEQUAD_METRICS.
func (c *Config) applyEnv(lookup lookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(EnvPrefix + key)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}
	bad := func(key, v string, err error) error {
		return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, EnvPrefix, key, v, err)
	}

	if v, ok := get("MODE"); ok {
		c.Mode = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	for key, dst := range map[string]*int{"DIGITS": &c.Digits, "MAX_LEVEL": &c.MaxLevel, "WORKERS": &c.Workers} {
		if v, ok := get(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return bad(key, v, err)
			}
			*dst = n
		}
	}
	for key, dst := range map[string]*bool{"STRICT": &c.Strict, "FALLBACK": &c.Fallback, "METRICS": &c.Metrics} {
		if v, ok := get(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return bad(key, v, err)
			}
			*dst = b
		}
	}
	if v, ok := get("TOL"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return bad("TOL", v, err)
		}
		c.Tol = f
	}

	return nil
}

// Validate checks every field against the limits of the integrator.
func (c Config) Validate() error {
	if _, err := precision.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Digits < 1 || c.Digits > precision.MaxDigits {
		return fmt.Errorf("%w: digits %d outside [1, %d]", ErrInvalidConfig, c.Digits, precision.MaxDigits)
	}
	if !(c.Tol > 0) || math.IsInf(c.Tol, 0) {
		return fmt.Errorf("%w: tol must be positive and finite, got %g", ErrInvalidConfig, c.Tol)
	}
	if c.MaxLevel < 0 || c.MaxLevel > tanhsinh.MaxLevelLimit {
		return fmt.Errorf("%w: max_level %d outside [0, %d]", ErrInvalidConfig, c.MaxLevel, tanhsinh.MaxLevelLimit)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// PrecisionMode returns the parsed Mode. It assumes Validate passed.
func (c Config) PrecisionMode() precision.Mode {
	m, _ := precision.ParseMode(c.Mode)
	return m
}

// Level returns the parsed log level, or info if it does not parse.
func (c Config) Level() slog.Level {
	l, _ := logging.ParseLevel(c.LogLevel)
	return l
}

// Options translates the integrator settings into tanhsinh options.
// Digits is left to the caller since only arbitrary mode uses it.
func (c Config) Options() []tanhsinh.Option {
	opts := []tanhsinh.Option{
		tanhsinh.WithMaxLevel(c.MaxLevel),
		tanhsinh.WithWorkers(c.Workers),
	}
	if c.Strict {
		opts = append(opts, tanhsinh.WithStrict())
	}

	return opts
}
