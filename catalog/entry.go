// SPDX-License-Identifier: MIT

package catalog

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/katalvlaran/dequad/precision"
	"github.com/katalvlaran/dequad/tanhsinh"
)

// Func is a float64 integrand or derivative.
type Func func(x float64) float64

// BigFunc is a *big.Float integrand or derivative. It computes at the
// process-wide precision (precision.Current), which IntegrateBig installs.
type BigFunc func(x *big.Float) *big.Float

// Entry is one catalog integrand.
//
// One-sided entries set F (and optionally D1, D2) over [A, B]. Two-sided
// entries set Left and Right over [0, B] with A = 0: Left(s) is the
// integrand at s and Right(s) the integrand at B - s. Their derivatives are
// taken with respect to s.
type Entry struct {
	Name    string
	Formula string
	A, B    Bound
	// Exact is a decimal or p/q literal with at least 60 significant digits.
	Exact   string

	F, D1, D2   Func
	Left, Right Func

	LeftD1, LeftD2   Func
	RightD1, RightD2 Func

	BigF, BigD1, BigD2 BigFunc
	BigLeft, BigRight  BigFunc

	BigLeftD1, BigLeftD2   BigFunc
	BigRightD1, BigRightD2 BigFunc
}

// TwoSided reports whether the entry needs tanhsinh.IntegrateLR.
func (e Entry) TwoSided() bool { return e.Left != nil }

// HasDerivatives reports whether explicit float64 derivatives exist, for
// both halves of a two-sided entry.
func (e Entry) HasDerivatives() bool {
	if e.TwoSided() {
		return e.LeftD1 != nil && e.LeftD2 != nil && e.RightD1 != nil && e.RightD2 != nil
	}

	return e.D1 != nil && e.D2 != nil
}

// HasBig reports whether a *big.Float form exists.
func (e Entry) HasBig() bool { return e.BigF != nil || e.BigLeft != nil }

// Integrand returns the float64 one-sided integrand, with derivatives when known.
func (e Entry) Integrand() tanhsinh.Integrand[float64] {
	if e.HasDerivatives() {
		return tanhsinh.Derivatives[float64](e.F, e.D1, e.D2)
	}

	return tanhsinh.Func[float64](e.F)
}

// Halves returns the float64 halves of a two-sided entry, with derivatives
// when known.
func (e Entry) Halves() (left, right tanhsinh.Integrand[float64]) {
	if e.HasDerivatives() {
		return tanhsinh.Derivatives[float64](e.Left, e.LeftD1, e.LeftD2),
			tanhsinh.Derivatives[float64](e.Right, e.RightD1, e.RightD2)
	}

	return tanhsinh.Func[float64](e.Left), tanhsinh.Func[float64](e.Right)
}

// BigIntegrand returns the *big.Float one-sided integrand.
func (e Entry) BigIntegrand() tanhsinh.Integrand[*big.Float] {
	return tanhsinh.Derivatives[*big.Float](e.BigF, e.BigD1, e.BigD2)
}

// BigHalves returns the *big.Float halves of a two-sided entry.
func (e Entry) BigHalves() (left, right tanhsinh.Integrand[*big.Float]) {
	return tanhsinh.Derivatives[*big.Float](e.BigLeft, e.BigLeftD1, e.BigLeftD2),
		tanhsinh.Derivatives[*big.Float](e.BigRight, e.BigRightD1, e.BigRightD2)
}

// ExactBig parses Exact under be.
func (e Entry) ExactBig(be precision.BigFloat) (*big.Float, error) {
	r, ok := new(big.Rat).SetString(e.Exact)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %q", ErrBadExact, e.Name, e.Exact)
	}

	return be.FromInt(0).SetRat(r), nil
}

// ExactFloat64 rounds Exact to float64.
func (e Entry) ExactFloat64() float64 {
	r, ok := new(big.Rat).SetString(e.Exact)
	if !ok {
		return math.NaN()
	}
	f, _ := r.Float64()

	return f
}

// RunConfig selects how an entry is integrated.
type RunConfig struct {
	Mode precision.Mode
	// Digits applies to precision.Arbitrary; zero keeps the process default.
	Digits int
	Tol    float64
	// TolText, when set, replaces Tol in arbitrary mode. It is parsed at the
	// working precision, so it may lie below the float64 range ("1e-400").
	TolText string
	// Fallback drops explicit derivatives.
	Fallback bool
	Options  []tanhsinh.Option
}

// Outcome summarises one run in float64 terms, plus the value at full
// working precision.
type Outcome struct {
	Entry       string
	Mode        precision.Mode
	Value       string
	Estimate    float64
	Error       float64 // |Value - Exact|
	Level       int
	Evaluations int
	Status      tanhsinh.Status
	Elapsed     time.Duration
}

// Within reports whether the actual error is no larger than tol.
func (o Outcome) Within(tol float64) bool { return o.Error <= tol }

// Run integrates e under cfg. A strict-mode failure still returns the
// Outcome together with tanhsinh.ErrNonConvergence.
func (e Entry) Run(cfg RunConfig) (Outcome, error) {
	start := time.Now()
	var (
		out Outcome
		err error
	)
	switch cfg.Mode {
	case precision.Fixed:
		out, err = e.runFixed(cfg)
	case precision.Arbitrary:
		out, err = e.runBig(cfg)
	default:
		return Outcome{}, fmt.Errorf("%w: %v", precision.ErrUnknownMode, cfg.Mode)
	}
	out.Entry, out.Mode, out.Elapsed = e.Name, cfg.Mode, time.Since(start)

	return out, err
}

func (e Entry) runFixed(cfg RunConfig) (Outcome, error) {
	var (
		res tanhsinh.Result[float64]
		err error
	)
	if e.TwoSided() {
		left, right := e.Halves()
		if cfg.Fallback {
			left, right = left.ValueOnly(), right.ValueOnly()
		}
		res, err = tanhsinh.IntegrateLR(left, right, e.B.Float64(), cfg.Tol, cfg.Options...)
	} else {
		in := e.Integrand()
		if cfg.Fallback {
			in = in.ValueOnly()
		}
		res, err = tanhsinh.Integrate(in, e.A.Float64(), e.B.Float64(), cfg.Tol, cfg.Options...)
	}
	if err != nil && !errors.Is(err, tanhsinh.ErrNonConvergence) {
		return Outcome{}, err
	}

	return Outcome{
		Value:       precision.Float64{}.String(res.Value),
		Estimate:    res.Estimate,
		Error:       math.Abs(res.Value - e.ExactFloat64()),
		Level:       res.Level,
		Evaluations: res.Evaluations,
		Status:      res.Status,
	}, err
}

func (e Entry) runBig(cfg RunConfig) (Outcome, error) {
	if !e.HasBig() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNoArbitrary, e.Name)
	}
	digits := cfg.Digits
	if digits == 0 {
		digits = precision.DefaultDigits()
	}
	be, err := precision.NewBigFloat(digits)
	if err != nil {
		return Outcome{}, err
	}
	exact, err := e.ExactBig(be)
	if err != nil {
		return Outcome{}, err
	}
	opts := append([]tanhsinh.Option{tanhsinh.WithDigits(digits)}, cfg.Options...)
	tol := be.FromFloat64(cfg.Tol)
	if cfg.TolText != "" {
		if tol, err = be.FromString(cfg.TolText); err != nil {
			return Outcome{}, fmt.Errorf("%w: %v", tanhsinh.ErrInvalidTolerance, err)
		}
	}

	var res tanhsinh.Result[*big.Float]
	if e.TwoSided() {
		left, right := e.BigHalves()
		if cfg.Fallback {
			left, right = left.ValueOnly(), right.ValueOnly()
		}
		res, err = tanhsinh.IntegrateLRBig(left, right, e.B.Big(be), tol, opts...)
	} else {
		in := e.BigIntegrand()
		if cfg.Fallback {
			in = in.ValueOnly()
		}
		res, err = tanhsinh.IntegrateBig(in, e.A.Big(be), e.B.Big(be), tol, opts...)
	}
	if err != nil && !errors.Is(err, tanhsinh.ErrNonConvergence) {
		return Outcome{}, err
	}

	return Outcome{
		Value:       be.String(res.Value),
		Estimate:    be.Float64(res.Estimate),
		Error:       be.Float64(be.Abs(be.Sub(res.Value, exact))),
		Level:       res.Level,
		Evaluations: res.Evaluations,
		Status:      res.Status,
	}, err
}
