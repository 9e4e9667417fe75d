// SPDX-License-Identifier: MIT

package catalog

import (
	"math"
	"math/big"

	"github.com/katalvlaran/dequad/precision"
)

// The two-sided entries give their derivatives through the logarithmic
// derivative a = (ln f)': f' = f·a and f'' = f·(a² + a'). Each half is a
// product of powers, so a and a' are sums of simple fractions.

func logD1(f, a Func) Func {
	return func(s float64) float64 { return f(s) * a(s) }
}

func logD2(f, a, da Func) Func {
	return func(s float64) float64 {
		v := a(s)
		return f(s) * (v*v + da(s))
	}
}

func negate(f Func) Func { return func(s float64) float64 { return -f(s) } }

func bigLogD1(f, a BigFunc) BigFunc {
	return func(s *big.Float) *big.Float {
		return precision.Current().Mul(f(s), a(s))
	}
}

func bigLogD2(f, a, da BigFunc) BigFunc {
	return func(s *big.Float) *big.Float {
		be := precision.Current()
		v := a(s)
		return be.Mul(f(s), be.Add(be.Mul(v, v), da(s)))
	}
}

func bigNegate(f BigFunc) BigFunc {
	return func(s *big.Float) *big.Float { return precision.Current().Neg(f(s)) }
}

// halfRecip returns 1/(2x).
func halfRecip(be precision.BigFloat, x *big.Float) *big.Float {
	return be.Quo(be.FromInt(1), be.Ldexp(x, 1))
}

// bailey7: √(x/(1-x²)) on [0, 1].

func bailey7Left(s float64) float64  { return math.Sqrt(s / (1 - s*s)) }
func bailey7Right(s float64) float64 { return math.Sqrt((1 - s) / (2*s - s*s)) }

func bailey7LeftLog(s float64) float64 { return 1/(2*s) + s/(1-s*s) }

func bailey7RightLog(s float64) float64 { return -1/(2*(1-s)) - 1/(2*s) + 1/(2*(2-s)) }

func bigBailey7Left(s *big.Float) *big.Float {
	be := precision.Current()
	return be.Sqrt(be.Quo(s, be.Sub(be.FromInt(1), be.Mul(s, s))))
}

func bigBailey7Right(s *big.Float) *big.Float {
	be := precision.Current()
	den := be.Sub(be.Ldexp(s, 1), be.Mul(s, s))
	return be.Sqrt(be.Quo(be.Sub(be.FromInt(1), s), den))
}

func bigBailey7LeftLog(s *big.Float) *big.Float {
	be := precision.Current()
	return be.Add(halfRecip(be, s), be.Quo(s, be.Sub(be.FromInt(1), be.Mul(s, s))))
}

func bigBailey7RightLog(s *big.Float) *big.Float {
	be := precision.Current()
	c := be.Sub(be.FromInt(1), s)
	t := be.Sub(be.FromInt(2), s)
	return be.Sub(halfRecip(be, t), be.Add(halfRecip(be, c), halfRecip(be, s)))
}

// bailey10: √tan x on [0, π/2]; the right half at π/2 - s is √cot s.

func bailey10Left(s float64) float64  { return math.Sqrt(math.Tan(s)) }
func bailey10Right(s float64) float64 { return 1 / math.Sqrt(math.Tan(s)) }

func bailey10Log(s float64) float64 { return 1 / math.Sin(2*s) }

func bailey10LogD(s float64) float64 {
	d := math.Sin(2 * s)
	return -2 * math.Cos(2*s) / (d * d)
}

func bigBailey10Left(s *big.Float) *big.Float {
	be := precision.Current()
	return be.Sqrt(be.Quo(be.Sin(s), be.Cos(s)))
}

func bigBailey10Right(s *big.Float) *big.Float {
	be := precision.Current()
	return be.Sqrt(be.Quo(be.Cos(s), be.Sin(s)))
}

func bigBailey10Log(s *big.Float) *big.Float {
	be := precision.Current()
	return be.Quo(be.FromInt(1), be.Sin(be.Ldexp(s, 1)))
}

func bigBailey10LogD(s *big.Float) *big.Float {
	be := precision.Current()
	s2 := be.Ldexp(s, 1)
	d := be.Sin(s2)
	return be.Neg(be.Quo(be.Ldexp(be.Cos(s2), 1), be.Mul(d, d)))
}

// bailey12: exp(1-1/x)/√(x³-x⁴) on [0, 1]; the right half at 1 - s is
// exp(-s/(1-s))/√(s·(1-s)³).

func bailey12Left(s float64) float64 {
	return math.Exp(1-1/s) / math.Sqrt(s*s*s-s*s*s*s)
}

func bailey12Right(s float64) float64 {
	return math.Exp(s/(s-1)) / math.Sqrt(s*(s*((3-s)*s-3)+1))
}

func bailey12LeftLog(s float64) float64 { return 1/(s*s) - 3/(2*s) + 1/(2*(1-s)) }

func bailey12RightLog(s float64) float64 {
	c := 1 - s
	return -1/(c*c) - 1/(2*s) + 3/(2*c)
}

func bigBailey12Left(s *big.Float) *big.Float {
	be := precision.Current()
	one := be.FromInt(1)
	s3 := be.Mul(s, be.Mul(s, s))
	num := be.Exp(be.Sub(one, be.Quo(one, s)))
	return be.Quo(num, be.Sqrt(be.Sub(s3, be.Mul(s3, s))))
}

func bigBailey12Right(s *big.Float) *big.Float {
	be := precision.Current()
	c := be.Sub(be.FromInt(1), s)
	num := be.Exp(be.Neg(be.Quo(s, c)))
	return be.Quo(num, be.Sqrt(be.Mul(s, be.Mul(c, be.Mul(c, c)))))
}

func bigBailey12LeftLog(s *big.Float) *big.Float {
	be := precision.Current()
	inv := be.Quo(be.FromInt(1), s)
	c := be.Sub(be.FromInt(1), s)
	a := be.Sub(be.Mul(inv, inv), be.Mul(be.FromInt(3), halfRecip(be, s)))
	return be.Add(a, halfRecip(be, c))
}

func bigBailey12RightLog(s *big.Float) *big.Float {
	be := precision.Current()
	c := be.Sub(be.FromInt(1), s)
	a := be.Neg(be.Quo(be.FromInt(1), be.Mul(c, c)))
	return be.Add(be.Sub(a, halfRecip(be, s)), be.Mul(be.FromInt(3), halfRecip(be, c)))
}
