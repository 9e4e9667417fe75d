// SPDX-License-Identifier: MIT

package tanhsinh

import (
	"fmt"
	"math/big"
	"time"

	"github.com/katalvlaran/dequad/precision"
)

// IntegrateLR approximates ∫_0^b g(x) dx for g singular at both ends.
//
// left(s) must equal g(s) and right(s) must equal g(b - s); each is
// integrated over [0, b/2] with tol/2, so near x = b the caller evaluates
// g from the small distance s instead of the rounded b - s. Values and
// estimates add, Level is the deeper of the two halves and Evaluations add.
// The Status is MaxLevelReached if either half did not converge.
//
// A failing half fails the call; the left half runs first, so its error
// wins. Strict mode applies to the combined result.
func IntegrateLR(left, right Integrand[float64], b, tol float64, opts ...Option) (Result[float64], error) {
	o := buildOptions(opts)

	return integrateLR[float64](precision.Float64{}, left, right, b, tol, &o)
}

// IntegrateLRBig is IntegrateLR in *big.Float; precision handling matches
// IntegrateBig.
func IntegrateLRBig(left, right Integrand[*big.Float], b, tol *big.Float, opts ...Option) (Result[*big.Float], error) {
	o := buildOptions(opts)
	be, release, err := acquireBig(&o)
	if err != nil {
		return Result[*big.Float]{}, err
	}
	defer release()

	return integrateLR[*big.Float](be, left, right, b, tol, &o)
}

// IntegrateLRWith is IntegrateLR under an arbitrary backend.
func IntegrateLRWith[T any](be precision.Backend[T], left, right Integrand[T], b, tol T, opts ...Option) (Result[T], error) {
	o := buildOptions(opts)

	return integrateLR(be, left, right, b, tol, &o)
}

func integrateLR[T any](be precision.Backend[T], left, right Integrand[T], b, tol T, o *Options) (Result[T], error) {
	zero := be.FromInt(0)
	if err := validate(be, zero, b, tol, o, left, right); err != nil {
		return Result[T]{}, err
	}
	mid := be.Ldexp(b, -1)
	if be.Sign(mid) <= 0 {
		return Result[T]{}, fmt.Errorf("%w: b=%s too small to split", ErrInvalidDomain, be.String(b))
	}

	start := time.Now()
	sub := be.Ldexp(tol, -1)
	ar := newArena(be, o.Workers)

	lres, err := newController(be, left, zero, mid, sub, ar, o, LeftHalf).run()
	if err != nil {
		return finish(be, lres, err, tol, o, start)
	}
	rres, err := newController(be, right, zero, be.Sub(b, mid), sub, ar, o, RightHalf).run()
	if err != nil {
		rres.Evaluations += lres.Evaluations
		rres.Level = max(rres.Level, lres.Level)
		return finish(be, rres, err, tol, o, start)
	}

	res := Result[T]{
		Value:       be.Add(lres.Value, rres.Value),
		Estimate:    be.Add(lres.Estimate, rres.Estimate),
		Level:       max(lres.Level, rres.Level),
		Evaluations: lres.Evaluations + rres.Evaluations,
		Status:      Converged,
	}
	if lres.Status != Converged || rres.Status != Converged {
		res.Status = MaxLevelReached
	}

	return finish(be, res, nil, tol, o, start)
}
