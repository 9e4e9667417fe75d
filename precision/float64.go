// SPDX-License-Identifier: MIT

package precision

import (
	"math"
	"strconv"
)

// smallestNormal is the smallest positive normal float64 (2^-1022).
const smallestNormal = 2.2250738585072014e-308

// Float64 is the fixed-precision backend. The zero value is ready to use.
type Float64 struct{}

var _ Backend[float64] = Float64{}

func (Float64) Mode() Mode  { return Fixed }
func (Float64) Digits() int { return 15 }

func (Float64) FromFloat64(v float64) float64 { return v }
func (Float64) FromInt(v int64) float64       { return float64(v) }
func (Float64) Float64(x float64) float64     { return x }
func (Float64) String(x float64) string       { return strconv.FormatFloat(x, 'g', 17, 64) }

func (Float64) Add(x, y float64) float64 { return x + y }
func (Float64) Sub(x, y float64) float64 { return x - y }
func (Float64) Mul(x, y float64) float64 { return x * y }
func (Float64) Quo(x, y float64) float64 { return x / y }
func (Float64) Neg(x float64) float64    { return -x }
func (Float64) Abs(x float64) float64    { return math.Abs(x) }

func (Float64) Ldexp(x float64, k int) float64 { return math.Ldexp(x, k) }

func (Float64) Cmp(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func (Float64) Sign(x float64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

func (Float64) Sqrt(x float64) float64 { return math.Sqrt(x) }
func (Float64) Exp(x float64) float64  { return math.Exp(x) }
func (Float64) Sinh(x float64) float64 { return math.Sinh(x) }
func (Float64) Cosh(x float64) float64 { return math.Cosh(x) }
func (Float64) Tanh(x float64) float64 { return math.Tanh(x) }
func (Float64) Atan(x float64) float64 { return math.Atan(x) }
func (Float64) Pi() float64            { return math.Pi }

func (Float64) Inf(sign int) float64 {
	if sign >= 0 {
		return math.Inf(1)
	}

	return math.Inf(-1)
}

func (Float64) IsFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Epsilon returns 2^-52, the spacing of float64 values at 1.
func (Float64) Epsilon() float64 { return 0x1p-52 }

// LogTiny returns ln(2^-1022): offsets below the smallest normal lose precision.
func (Float64) LogTiny() float64 { return math.Log(smallestNormal) }

// Sum adds xs with Neumaier's compensated summation. The error is bounded
// independently of len(xs) to first order, so the fold order of a level does
// not move the result by more than a few ulps.
func (Float64) Sum(xs []float64) float64 {
	var (
		s, c, t float64
		x       float64
	)
	for _, x = range xs {
		t = s + x
		if math.Abs(s) >= math.Abs(x) {
			c += (s - t) + x
		} else {
			c += (x - t) + s
		}
		s = t
	}

	return s + c
}
