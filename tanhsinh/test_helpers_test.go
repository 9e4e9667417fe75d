// SPDX-License-Identifier: MIT

package tanhsinh_test

import (
	"math"
	"math/big"

	"github.com/katalvlaran/dequad/precision"
	"github.com/katalvlaran/dequad/tanhsinh"
)

// Exact values used across the tests.
const (
	sqrtLogExact = -4.0 / 9.0
	bailey7Exact = 1.19814023473559220743992249228032387822721266321565155826367
	bailey1Exact = 0.25
)

// sqrtLog is √x·ln x on [0, 1], with explicit derivatives when deriv is set.
func sqrtLog(deriv bool) tanhsinh.Integrand[float64] {
	f := func(x float64) float64 { return math.Sqrt(x) * math.Log(x) }
	if !deriv {
		return tanhsinh.Func(f)
	}

	return tanhsinh.Derivatives(f,
		func(x float64) float64 { return math.Log(x)/(2*math.Sqrt(x)) + 1/math.Sqrt(x) },
		func(x float64) float64 { return -math.Log(x) / (4 * x * math.Sqrt(x)) },
	)
}

// xLog1p is x·log1p(x) on [0, 1]; its integral is 1/4.
func xLog1p(deriv bool) tanhsinh.Integrand[float64] {
	f := func(x float64) float64 { return x * math.Log1p(x) }
	if !deriv {
		return tanhsinh.Func(f)
	}

	return tanhsinh.Derivatives(f,
		func(x float64) float64 { return math.Log1p(x) + x/(1+x) },
		func(x float64) float64 { return 1/(1+x) + 1/((1+x)*(1+x)) },
	)
}

// bailey7 returns the halves of √(x/(1-x²)) on [0, 1] for IntegrateLR.
func bailey7() (left, right tanhsinh.Integrand[float64]) {
	left = tanhsinh.Func(bailey7Left)
	right = tanhsinh.Func(bailey7Right)

	return left, right
}

// sqrtLogBig is √x·ln x in *big.Float at the process-wide precision.
func sqrtLogBig(deriv bool) tanhsinh.Integrand[*big.Float] {
	f := func(x *big.Float) *big.Float {
		be := precision.Current()
		return be.Mul(be.Sqrt(x), be.Log(x))
	}
	if !deriv {
		return tanhsinh.Func(f)
	}
	d1 := func(x *big.Float) *big.Float {
		be := precision.Current()
		r := be.Sqrt(x)
		return be.Add(be.Quo(be.Log(x), be.Ldexp(r, 1)), be.Quo(be.FromInt(1), r))
	}
	d2 := func(x *big.Float) *big.Float {
		be := precision.Current()
		den := be.Ldexp(be.Mul(x, be.Sqrt(x)), 2)
		return be.Neg(be.Quo(be.Log(x), den))
	}

	return tanhsinh.Derivatives(f, d1, d2)
}

// counting wraps f and counts its calls.
func counting(f func(float64) float64) (tanhsinh.Integrand[float64], *int) {
	n := new(int)

	return tanhsinh.Func(func(x float64) float64 {
		*n++
		return f(x)
	}), n
}

func bigOf(v float64) *big.Float { return precision.NewFloat(v) }

// rightQuarticExact is ∫_{-1}^{1} (x-½)⁴·[x>½] dx = (½)⁵/5.
const rightQuarticExact = 0.00625

// rightQuartic is (x-½)⁴ for x > ½ and zero elsewhere.
func rightQuartic(deriv bool) tanhsinh.Integrand[float64] {
	f := func(x float64) float64 {
		if x <= 0.5 {
			return 0
		}
		d := x - 0.5
		return d * d * d * d
	}
	if !deriv {
		return tanhsinh.Func(f)
	}

	return tanhsinh.Derivatives(f,
		func(x float64) float64 {
			if x <= 0.5 {
				return 0
			}
			d := x - 0.5
			return 4 * d * d * d
		},
		func(x float64) float64 {
			if x <= 0.5 {
				return 0
			}
			d := x - 0.5
			return 12 * d * d
		},
	)
}

// bailey7Derivatives is bailey7 with f' and f'' of each half, taken with
// respect to the distance s from its endpoint.
func bailey7Derivatives() (left, right tanhsinh.Integrand[float64]) {
	lf, rf := bailey7Left, bailey7Right
	la := func(s float64) float64 { return 1/(2*s) + s/(1-s*s) }
	lda := func(s float64) float64 { return -1/(2*s*s) + (1+s*s)/((1-s*s)*(1-s*s)) }
	ra := func(s float64) float64 { return -1/(2*(1-s)) - 1/(2*s) + 1/(2*(2-s)) }
	rda := func(s float64) float64 { return -1/(2*(1-s)*(1-s)) + 1/(2*s*s) + 1/(2*(2-s)*(2-s)) }

	left = tanhsinh.Derivatives(lf,
		func(s float64) float64 { return lf(s) * la(s) },
		func(s float64) float64 { a := la(s); return lf(s) * (a*a + lda(s)) },
	)
	right = tanhsinh.Derivatives(rf,
		func(s float64) float64 { return rf(s) * ra(s) },
		func(s float64) float64 { a := ra(s); return rf(s) * (a*a + rda(s)) },
	)

	return left, right
}

func bailey7Left(s float64) float64  { return math.Sqrt(s / (1 - s*s)) }
func bailey7Right(s float64) float64 { return math.Sqrt((1 - s) / (2*s - s*s)) }
