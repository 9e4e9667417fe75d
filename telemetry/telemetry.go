// SPDX-License-Identifier: MIT

// Package telemetry exports integration metrics to Prometheus through
// tanhsinh.Hooks.
//
//	reg := prometheus.NewRegistry()
//	col, err := telemetry.NewCollector(reg)
//	...
//	res, err := tanhsinh.Integrate(f, a, b, tol, tanhsinh.WithHooks(col.Hooks()))
package telemetry

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/dequad/tanhsinh"
)

// Namespace prefixes every metric name.
const Namespace = "dequad"

// Outcome label values beyond tanhsinh.Status.String().
const (
	outcomeError = "error"
)

// Collector owns the integration metrics.
type Collector struct {
	integrations *prometheus.CounterVec
	evaluations  *prometheus.CounterVec
	levels       *prometheus.CounterVec
	finalLevel   *prometheus.HistogramVec
	duration     *prometheus.HistogramVec
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		integrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "integrations_total",
				Help:      "Completed integrations by precision mode and outcome.",
			},
			[]string{"mode", "status"},
		),
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "evaluations_total",
				Help:      "Integrand evaluations, finite-difference stencils included.",
			},
			[]string{"mode"},
		),
		levels: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "levels_folded_total",
				Help:      "Refinement levels folded, per half of a two-sided call.",
			},
			[]string{"mode", "half"},
		),
		finalLevel: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "final_level",
				Help:      "Refinement level at which integrations stopped.",
				Buckets:   prometheus.LinearBuckets(0, 1, tanhsinh.MaxLevelLimit+1),
			},
			[]string{"mode"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "integration_duration_seconds",
				Help:      "Wall time of integrations.",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
			},
			[]string{"mode"},
		),
	}
	for _, m := range []prometheus.Collector{c.integrations, c.evaluations, c.levels, c.finalLevel, c.duration} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("telemetry: register: %w", err)
		}
	}

	return c, nil
}

// Hooks returns callbacks that feed the collector.
func (c *Collector) Hooks() tanhsinh.Hooks {
	return tanhsinh.Hooks{
		OnLevel: c.ObserveLevel,
		OnDone:  c.ObserveDone,
	}
}

// ObserveLevel counts one folded level.
func (c *Collector) ObserveLevel(e *tanhsinh.LevelEvent) {
	half := string(e.Half)
	if half == "" {
		half = "whole"
	}
	c.levels.WithLabelValues(e.Mode.String(), half).Inc()
}

// ObserveDone records a finished integration.
func (c *Collector) ObserveDone(e *tanhsinh.DoneEvent) {
	mode := e.Mode.String()
	c.integrations.WithLabelValues(mode, StatusLabel(e)).Inc()
	c.evaluations.WithLabelValues(mode).Add(float64(e.Evaluations))
	c.duration.WithLabelValues(mode).Observe(e.Elapsed.Seconds())
	if e.Err == nil || errors.Is(e.Err, tanhsinh.ErrNonConvergence) {
		c.finalLevel.WithLabelValues(mode).Observe(float64(e.Level))
	}
}

// StatusLabel maps a DoneEvent to the status label: "converged",
// "max_level_reached" (strict failures included) or "error".
func StatusLabel(e *tanhsinh.DoneEvent) string {
	switch {
	case e.Err == nil:
		return e.Status.String()
	case errors.Is(e.Err, tanhsinh.ErrNonConvergence):
		return tanhsinh.MaxLevelReached.String()
	default:
		return outcomeError
	}
}

// Chain runs several hook sets in order. Nil callbacks are skipped.
func Chain(hs ...tanhsinh.Hooks) tanhsinh.Hooks {
	return tanhsinh.Hooks{
		OnLevel: func(e *tanhsinh.LevelEvent) {
			for _, h := range hs {
				if h.OnLevel != nil {
					h.OnLevel(e)
				}
			}
		},
		OnDone: func(e *tanhsinh.DoneEvent) {
			for _, h := range hs {
				if h.OnDone != nil {
					h.OnDone(e)
				}
			}
		},
	}
}

// WriteText writes every metric family gathered from g in the Prometheus
// text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("telemetry: gather: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("telemetry: write %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
