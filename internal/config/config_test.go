// SPDX-License-Identifier: MIT

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dequad/internal/config"
	"github.com/katalvlaran/dequad/precision"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, precision.Fixed, cfg.PrecisionMode())
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "dequad.toml", `
mode = "arbitrary"
digits = 50
tol = 1e-30
max_level = 12
strict = true
workers = 4
log_level = "debug"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, precision.Arbitrary, cfg.PrecisionMode())
	assert.Equal(t, 50, cfg.Digits)
	assert.Equal(t, 1e-30, cfg.Tol)
	assert.Equal(t, 12, cfg.MaxLevel)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Len(t, cfg.Options(), 3, "max level, workers and strict")
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "dequad.yml", "mode: fixed\ntol: 1e-10\nfallback: true\nmetrics: true\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-10, cfg.Tol)
	assert.True(t, cfg.Fallback)
	assert.True(t, cfg.Metrics)
	assert.Equal(t, precision.InitialDigits, cfg.Digits, "unset keys keep their defaults")
}

func TestLoad_EmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := config.Load(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_UnknownKeys(t *testing.T) {
	_, err := config.Load(writeFile(t, "bad.toml", "precision = 3\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(writeFile(t, "bad.yaml", "precision: 3\n"))
	assert.Error(t, err)
}

func TestLoad_UnknownFormat(t *testing.T) {
	_, err := config.Load(writeFile(t, "dequad.json", "{}"))
	assert.ErrorIs(t, err, config.ErrUnknownFormat)

	f, err := config.DetectFormat("a/b/C.YAML")
	require.NoError(t, err)
	assert.Equal(t, config.FormatYAML, f)
	assert.Equal(t, "yaml", f.String())
}

func TestLoad_ExplicitFormat(t *testing.T) {
	path := writeFile(t, "settings.conf", "digits = 40\n")
	cfg, err := config.LoadFormat(path, config.FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Digits)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DEQUAD_MODE", "big")
	t.Setenv("DEQUAD_DIGITS", "60")
	t.Setenv("DEQUAD_TOL", "1e-40")
	t.Setenv("DEQUAD_STRICT", "true")

	path := writeFile(t, "dequad.toml", "digits = 20\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, precision.Arbitrary, cfg.PrecisionMode())
	assert.Equal(t, 60, cfg.Digits, "environment wins over the file")
	assert.Equal(t, 1e-40, cfg.Tol)
	assert.True(t, cfg.Strict)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("DEQUAD_WORKERS", "many")
	_, err := config.Load("")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	mutate := map[string]func(*config.Config){
		"mode":      func(c *config.Config) { c.Mode = "quad" },
		"digits":    func(c *config.Config) { c.Digits = 0 },
		"tol zero":  func(c *config.Config) { c.Tol = 0 },
		"max level": func(c *config.Config) { c.MaxLevel = 99 },
		"workers":   func(c *config.Config) { c.Workers = 0 },
		"log level": func(c *config.Config) { c.LogLevel = "loud" },
	}
	for name, m := range mutate {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			m(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
	assert.NoError(t, config.Default().Validate())
}
