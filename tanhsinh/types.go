// SPDX-License-Identifier: MIT

package tanhsinh

import (
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/dequad/precision"
)

const (
	// DefaultMaxLevel is the deepest refinement level tried by default.
	DefaultMaxLevel = 10

	// MaxLevelLimit bounds WithMaxLevel. Level 20 already samples several
	// million nodes in float64.
	MaxLevelLimit = 20
)

// Status reports how an integration finished.
type Status int

const (
	// Converged means the error estimate reached tol at some level k ≥ 1.
	Converged Status = iota

	// MaxLevelReached means MaxLevel was folded without reaching tol. The
	// Result still carries the last value and its (too large) estimate.
	MaxLevelReached
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case MaxLevelReached:
		return "max_level_reached"
	default:
		return "unknown"
	}
}

// Result is the outcome of one integration. It is never mutated after return.
//
// Fields:
//   - Value       – approximation of the integral.
//   - Estimate    – error estimate max(D_k, E_k) at the final level.
//   - Level       – final refinement level (the maximum of both halves for
//     IntegrateLR).
//   - Evaluations – number of integrand calls, finite-difference stencils
//     included.
//   - Status      – Converged or MaxLevelReached.
type Result[T any] struct {
	Value       T
	Estimate    T
	Level       int
	Evaluations int
	Status      Status
}

// Converged reports whether the estimate reached the requested tolerance.
func (r Result[T]) Converged() bool { return r.Status == Converged }

// Half names the part of a two-sided integration an event belongs to.
type Half string

const (
	// Whole marks a one-sided integration.
	Whole Half = ""
	// LeftHalf is [0, b/2] of IntegrateLR.
	LeftHalf Half = "left"
	// RightHalf is the mirrored [b/2, b] of IntegrateLR.
	RightHalf Half = "right"
)

// LevelEvent is emitted after every folded level.
type LevelEvent struct {
	Mode        precision.Mode
	Half        Half
	Level       int
	Summands    int
	Evaluations int
	Value       float64
	Estimate    float64
	Derivative  float64 // D_k
	Empirical   float64 // E_k, +Inf at level 0
}

// DoneEvent is emitted once per public call, after validation succeeded.
type DoneEvent struct {
	Mode        precision.Mode
	Status      Status
	Level       int
	Evaluations int
	Estimate    float64
	Elapsed     time.Duration
	Err         error
}

// Hooks are optional observability callbacks. They run synchronously on
// the integrating goroutine and must not call back into the same integration.
type Hooks struct {
	OnLevel func(*LevelEvent)
	OnDone  func(*DoneEvent)
}

// Options configures an integration. Build it with DefaultOptions and Option
// setters; the zero value is not ready for use.
type Options struct {
	// MaxLevel is the deepest level folded, in [0, MaxLevelLimit].
	MaxLevel int

	// Strict turns MaxLevelReached into ErrNonConvergence (the Result is
	// still returned).
	Strict bool

	// Digits is the decimal working precision of IntegrateBig and
	// IntegrateLRBig. Zero means precision.DefaultDigits().
	Digits int

	// Workers > 1 generates node batches concurrently. The integrand itself
	// is always called from one goroutine.
	Workers int

	Logger *slog.Logger
	Hooks  Hooks
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns MaxLevel = DefaultMaxLevel, non-strict, process-wide
// digits, serial node generation, a discarding logger and no hooks.
func DefaultOptions() Options {
	return Options{
		MaxLevel: DefaultMaxLevel,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithMaxLevel sets the deepest refinement level.
// Panics with ErrBadMaxLevel outside [0, MaxLevelLimit].
func WithMaxLevel(level int) Option {
	if level < 0 || level > MaxLevelLimit {
		panic(ErrBadMaxLevel.Error())
	}

	return func(o *Options) { o.MaxLevel = level }
}

// WithStrict makes non-convergence an error.
func WithStrict() Option {
	return func(o *Options) { o.Strict = true }
}

// WithDigits sets the working precision of the arbitrary-precision entry
// points. Ignored by Integrate. Panics with precision.ErrBadDigits outside
// [1, precision.MaxDigits].
func WithDigits(digits int) Option {
	if digits < 1 || digits > precision.MaxDigits {
		panic(precision.ErrBadDigits.Error())
	}

	return func(o *Options) { o.Digits = digits }
}

// WithWorkers sets the number of goroutines generating nodes.
// Panics with ErrBadWorkers for n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(ErrBadWorkers.Error())
	}

	return func(o *Options) { o.Workers = n }
}

// WithLogger routes per-level debug records to l. A nil l keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithHooks installs observability callbacks.
func WithHooks(h Hooks) Option {
	return func(o *Options) { o.Hooks = h }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

func (o *Options) validate() error {
	if o.MaxLevel < 0 || o.MaxLevel > MaxLevelLimit {
		return ErrBadMaxLevel
	}
	if o.Workers < 0 {
		return ErrBadWorkers
	}

	return nil
}
