// SPDX-License-Identifier: MIT

package tanhsinh

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/katalvlaran/dequad/precision"
)

// Integrate approximates ∫_a^b f(x) dx in float64 to the absolute tolerance
// tol.
//
// Inputs are validated before f is called for the first time:
// ErrNilIntegrand, ErrInvalidDomain (a ≥ b or a non-finite bound),
// ErrInvalidTolerance (tol ≤ 0 or non-finite) and ErrBadMaxLevel.
//
// Without WithStrict a call that exhausts MaxLevel returns its best Result
// with Status MaxLevelReached and a nil error. When f fails, the Result only
// carries the number of evaluations made.
func Integrate(f Integrand[float64], a, b, tol float64, opts ...Option) (Result[float64], error) {
	o := buildOptions(opts)

	return integrate[float64](precision.Float64{}, f, a, b, tol, &o)
}

// IntegrateBig is Integrate in *big.Float. The working precision comes from
// WithDigits, or precision.DefaultDigits when unset, and is installed as the
// process-wide setting until the call returns, so integrands may build
// constants with precision.NewFloat.
func IntegrateBig(f Integrand[*big.Float], a, b, tol *big.Float, opts ...Option) (Result[*big.Float], error) {
	o := buildOptions(opts)
	be, release, err := acquireBig(&o)
	if err != nil {
		return Result[*big.Float]{}, err
	}
	defer release()

	return integrate[*big.Float](be, f, a, b, tol, &o)
}

// IntegrateWith is Integrate under an arbitrary backend. It does not touch
// the process-wide precision setting.
func IntegrateWith[T any](be precision.Backend[T], f Integrand[T], a, b, tol T, opts ...Option) (Result[T], error) {
	o := buildOptions(opts)

	return integrate(be, f, a, b, tol, &o)
}

func integrate[T any](be precision.Backend[T], f Integrand[T], a, b, tol T, o *Options) (Result[T], error) {
	if err := validate(be, a, b, tol, o, f); err != nil {
		return Result[T]{}, err
	}
	start := time.Now()
	res, err := newController(be, f, a, b, tol, newArena(be, o.Workers), o, Whole).run()

	return finish(be, res, err, tol, o, start)
}

// acquireBig resolves the working digits of an arbitrary-precision call and
// installs them process-wide. release is always safe to call.
func acquireBig(o *Options) (be precision.BigFloat, release func(), err error) {
	digits := o.Digits
	if digits == 0 {
		digits = precision.DefaultDigits()
	}
	if be, err = precision.NewBigFloat(digits); err != nil {
		return be, func() {}, err
	}
	release, err = precision.Acquire(digits)

	return be, release, err
}

func validate[T any](be precision.Backend[T], a, b, tol T, o *Options, fs ...Integrand[T]) error {
	if err := o.validate(); err != nil {
		return err
	}
	for _, f := range fs {
		if f.f == nil {
			return ErrNilIntegrand
		}
	}
	if !be.IsFinite(a) || !be.IsFinite(b) {
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidDomain)
	}
	if be.Cmp(a, b) >= 0 {
		return fmt.Errorf("%w: need a < b, got a=%s b=%s", ErrInvalidDomain, be.String(a), be.String(b))
	}
	if !be.IsFinite(tol) {
		return ErrInvalidTolerance
	}
	if be.Sign(tol) <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTolerance, be.String(tol))
	}

	return nil
}

// finish applies strict mode and fires OnDone.
func finish[T any](be precision.Backend[T], res Result[T], err error, tol T, o *Options, start time.Time) (Result[T], error) {
	completed := err == nil
	if completed && o.Strict && res.Status == MaxLevelReached {
		err = fmt.Errorf("%w: estimate %s > tol %s at level %d",
			ErrNonConvergence, be.String(res.Estimate), be.String(tol), res.Level)
	}
	if o.Hooks.OnDone != nil {
		ev := &DoneEvent{
			Mode:        be.Mode(),
			Status:      res.Status,
			Level:       res.Level,
			Evaluations: res.Evaluations,
			Estimate:    math.NaN(),
			Elapsed:     time.Since(start),
			Err:         err,
		}
		if completed {
			ev.Estimate = be.Float64(res.Estimate)
		}
		o.Hooks.OnDone(ev)
	}

	return res, err
}
