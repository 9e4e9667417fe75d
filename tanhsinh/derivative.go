// SPDX-License-Identifier: MIT

package tanhsinh

import (
	"fmt"

	"github.com/katalvlaran/dequad/precision"
)

// fdSafety multiplies the derivative-based estimate when f' and f'' come from
// finite differences. Both stencils below carry O(√ε) relative error, and
// doubling the bound keeps every catalog integrand's estimate above its
// actual error.
const fdSafety = 2

// noiseUlps is the rounding error assumed per integrand value, in units of ε.
// The stencil noise it implies is subtracted from |ΣF''| so that the
// derivative term can fall below ε^¾ when the integrand is smooth.
const noiseUlps = 4

// estimator supplies φ'(s) and φ''(s) for the side function
// φ(s) = f(origin + dir·s) and folds them into F''(t), the second derivative
// of the transformed summand.
type estimator[T any] struct {
	be       precision.Backend[T]
	in       Integrand[T]
	eval     func(x T) (T, error)
	explicit bool
	rel1     T // √ε
	rel2     T // ε^(1/4)
	ulp      T // noiseUlps·ε
	three    T
	four     T
	kappa    T
	zero     T
}

func newEstimator[T any](be precision.Backend[T], in Integrand[T], eval func(T) (T, error)) *estimator[T] {
	eps := be.Epsilon()
	rel1 := be.Sqrt(eps)
	es := &estimator[T]{
		be:       be,
		in:       in,
		eval:     eval,
		explicit: in.HasDerivatives(),
		rel1:     rel1,
		rel2:     be.Sqrt(rel1),
		ulp:      be.Mul(be.FromInt(noiseUlps), eps),
		three:    be.FromInt(3),
		four:     be.FromInt(4),
		kappa:    be.FromInt(1),
		zero:     be.FromInt(0),
	}
	if !es.explicit {
		es.kappa = be.FromInt(fdSafety)
	}

	return es
}

// stencil holds φ', φ'' and, for finite differences, the step sizes that
// produced them.
type stencil[T any] struct {
	d1, d2 T
	h1, h2 T
}

// derivs returns φ'(s) and φ''(s). x = origin + dir·s and v = φ(s) are
// already known. Offsets are interior, so the difference stencils never
// leave (origin, origin + 2·dir·s).
func (es *estimator[T]) derivs(sd side[T], s, x, v T) (stencil[T], error) {
	be := es.be
	if es.explicit {
		d1, d2 := es.in.d1(x), es.in.d2(x)
		if !be.IsFinite(d1) || !be.IsFinite(d2) {
			return stencil[T]{}, fmt.Errorf("%w: derivative at x=%s", ErrEvaluation, be.String(x))
		}
		if sd.dir < 0 {
			d1 = be.Neg(d1)
		}
		return stencil[T]{d1: d1, d2: d2}, nil
	}

	st := stencil[T]{h1: be.Mul(es.rel1, s), h2: be.Mul(es.rel2, s)}
	var (
		vals [4]T
		err  error
	)
	offs := [4]T{be.Add(s, st.h1), be.Sub(s, st.h1), be.Add(s, st.h2), be.Sub(s, st.h2)}
	for i, off := range offs {
		if vals[i], err = es.eval(sd.at(be, off)); err != nil {
			return stencil[T]{}, err
		}
	}
	st.d1 = be.Quo(be.Sub(vals[0], vals[1]), be.Ldexp(st.h1, 1))
	// divide twice: h2² underflows for offsets near the endpoint
	st.d2 = be.Quo(be.Quo(be.Add(be.Sub(vals[2], be.Ldexp(v, 1)), vals[3]), st.h2), st.h2)

	return st, nil
}

// curvature returns F''(t) for the summand F(t) = φ(g(t))·(-g'(t)) with
// g = H·y: F'' = φ''·g'³ + 3φ'·g'·g'' + φ·g'''.
//
// The second result bounds the rounding noise the finite-difference stencils
// add to F''; it is zero for explicit derivatives. ok is false when the
// stencils overflowed and the node carries no usable curvature.
func (es *estimator[T]) curvature(sd side[T], n *Node[T], half, s, x, v T) (fpp, noise T, ok bool, err error) {
	be := es.be
	st, err := es.derivs(sd, s, x, v)
	if err != nil {
		return es.zero, es.zero, false, err
	}
	g1 := be.Neg(be.Mul(half, n.Weight))
	g2 := be.Mul(half, n.D2)
	g3 := be.Mul(half, n.D3)

	a := be.Mul(st.d2, be.Mul(g1, be.Mul(g1, g1)))
	b := be.Mul(es.three, be.Mul(st.d1, be.Mul(g1, g2)))
	c := be.Mul(v, g3)
	fpp = be.Add(be.Add(a, b), c)
	if es.explicit {
		return fpp, es.zero, true, nil
	}

	// e = noiseUlps·ε·(|x·φ'| + |φ|) is the error of one stencil value;
	// φ'' inherits 4e/h2² and φ' inherits e/h1.
	e := be.Mul(es.ulp, be.Add(be.Abs(be.Mul(x, st.d1)), be.Abs(v)))
	ag1 := be.Abs(g1)
	n2 := be.Mul(be.Quo(be.Quo(be.Mul(es.four, e), st.h2), st.h2), be.Mul(ag1, be.Mul(ag1, ag1)))
	n1 := be.Mul(es.three, be.Mul(be.Quo(e, st.h1), be.Abs(be.Mul(g1, g2))))
	noise = be.Add(n2, n1)
	if !be.IsFinite(fpp) || !be.IsFinite(noise) {
		return es.zero, es.zero, false, nil
	}

	return fpp, noise, true, nil
}
