// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/dequad/internal/config"
	"github.com/katalvlaran/dequad/internal/logging"
	"github.com/katalvlaran/dequad/tanhsinh"
	"github.com/katalvlaran/dequad/telemetry"
)

// app is the state shared by every subcommand once the root has resolved
// the configuration.
type app struct {
	cfg       config.Config
	tolText   string // --tol as typed, kept for arbitrary mode
	log       *slog.Logger
	registry  *prometheus.Registry
	collector *telemetry.Collector
}

// options returns the integrator options for the resolved configuration.
func (a *app) options() []tanhsinh.Option {
	opts := append(a.cfg.Options(), tanhsinh.WithLogger(a.log))
	if a.collector != nil {
		opts = append(opts, tanhsinh.WithHooks(a.collector.Hooks()))
	}

	return opts
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{log: logging.NewNop()}
	root := &cobra.Command{
		Use:   "dequad",
		Short: "Tanh-sinh (double exponential) numerical integration",
		Long: `dequad integrates the built-in catalogue of test integrands with the
tanh-sinh rule, in float64 or at arbitrary decimal precision, and reports the
value, the error estimate and the level at which it converged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.resolve(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.registry == nil {
				return nil
			}
			return telemetry.WriteText(cmd.ErrOrStderr(), a.registry)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (.toml, .yaml or .yml)")
	pf.String("mode", "", "Precision mode: fixed or arbitrary")
	pf.Int("digits", 0, "Decimal digits in arbitrary mode")
	pf.String("tol", "", "Absolute error tolerance, a decimal such as 1e-40 (may be below the float64 range in arbitrary mode)")
	pf.Int("max-level", 0, "Deepest refinement level")
	pf.Bool("strict", false, "Fail when the tolerance is not reached")
	pf.Bool("fallback", false, "Ignore explicit derivatives and use finite differences")
	pf.Int("workers", 0, "Goroutines used to build node levels")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.Bool("metrics", false, "Write Prometheus metrics to stderr on exit")

	root.AddCommand(
		newListCmd(a),
		newRunCmd(a),
		newBenchCmd(a),
		newNodesCmd(a),
		newVersionCmd(),
	)

	return root
}

// resolve loads the config file, lets explicitly set flags win, and builds
// the logger and metrics registry.
func (a *app) resolve(cmd *cobra.Command) error {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if flags.Changed("mode") {
		cfg.Mode, _ = flags.GetString("mode")
	}
	if flags.Changed("digits") {
		cfg.Digits, _ = flags.GetInt("digits")
	}
	if flags.Changed("tol") {
		text, _ := flags.GetString("tol")
		if cfg.Tol, err = parseTol(text); err != nil {
			return err
		}
		a.tolText = strings.TrimSpace(text)
	}
	if flags.Changed("max-level") {
		cfg.MaxLevel, _ = flags.GetInt("max-level")
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("fallback") {
		cfg.Fallback, _ = flags.GetBool("fallback")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("metrics") {
		cfg.Metrics, _ = flags.GetBool("metrics")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logging.New(cmd.ErrOrStderr(), cfg.Level())
	if cfg.Metrics {
		a.registry = prometheus.NewRegistry()
		if a.collector, err = telemetry.NewCollector(a.registry); err != nil {
			return err
		}
	}
	a.log.Debug("configuration resolved",
		"mode", cfg.Mode, "digits", cfg.Digits, "tol", cfg.Tol,
		"max_level", cfg.MaxLevel, "workers", cfg.Workers)

	return nil
}

// parseTol accepts any positive finite decimal. A value below the float64
// range becomes the smallest float64; arbitrary mode uses the text instead.
func parseTol(text string) (float64, error) {
	f, _, err := big.ParseFloat(strings.TrimSpace(text), 10, 0, big.ToNearestEven)
	if err != nil {
		return 0, fmt.Errorf("%w: tol %q: %v", config.ErrInvalidConfig, text, err)
	}
	if f.Sign() <= 0 || f.IsInf() {
		return 0, fmt.Errorf("%w: tol must be positive and finite, got %q", config.ErrInvalidConfig, text)
	}
	v, _ := f.Float64()
	if v == 0 {
		v = math.SmallestNonzeroFloat64
	}

	return v, nil
}
