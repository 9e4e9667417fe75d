// SPDX-License-Identifier: MIT

package precision

import (
	"fmt"
	"math"
	"math/big"
	"sync"

	"github.com/ALTree/bigfloat"
)

const (
	// MaxDigits bounds the decimal precision accepted by NewBigFloat.
	MaxDigits = 10000

	// guardBits are carried on top of the requested digits so that the last
	// requested digit survives the rounding of a few chained operations.
	guardBits = 16

	// extraBits widen the internal precision of series and cancellation-prone
	// formulas (Sinh, Tanh, Atan, Sum) before rounding back.
	extraBits = 64

	// atanReduce is the argument below which the Atan Taylor series is summed.
	atanReduce = 1.0 / 256

	// trigReduce is the argument below which the Sin Taylor series is summed.
	trigReduce = 1.0 / 256
)

// piCache maps a precision in bits to π rounded to that precision.
var piCache sync.Map

// BigFloat is the arbitrary-precision backend over *big.Float. All results
// are rounded to Prec() bits, which represents Digits() decimal digits plus
// guard bits.
type BigFloat struct {
	digits int
	prec   uint
}

var _ Backend[*big.Float] = BigFloat{}

// PrecFor converts decimal digits into the mantissa size used by BigFloat.
func PrecFor(digits int) uint {
	return uint(math.Ceil(float64(digits)*math.Log2(10))) + guardBits
}

// NewBigFloat returns a backend carrying digits significant decimal digits.
// Errors: ErrBadDigits when digits is outside [1, MaxDigits].
func NewBigFloat(digits int) (BigFloat, error) {
	if digits < 1 || digits > MaxDigits {
		return BigFloat{}, fmt.Errorf("%w: %d", ErrBadDigits, digits)
	}

	return BigFloat{digits: digits, prec: PrecFor(digits)}, nil
}

// MustBigFloat is NewBigFloat that panics on invalid digits.
func MustBigFloat(digits int) BigFloat {
	b, err := NewBigFloat(digits)
	if err != nil {
		panic(err.Error())
	}

	return b
}

func (b BigFloat) Mode() Mode  { return Arbitrary }
func (b BigFloat) Digits() int { return b.digits }

// Prec returns the mantissa precision in bits.
func (b BigFloat) Prec() uint { return b.prec }

func (b BigFloat) newFloat() *big.Float { return new(big.Float).SetPrec(b.prec) }

func (b BigFloat) wide() *big.Float { return new(big.Float).SetPrec(b.prec + extraBits) }

// FromFloat64 converts v exactly (then rounds to Prec). It panics on NaN,
// like big.Float.SetFloat64.
func (b BigFloat) FromFloat64(v float64) *big.Float { return b.newFloat().SetFloat64(v) }

func (b BigFloat) FromInt(v int64) *big.Float { return b.newFloat().SetInt64(v) }

// FromString parses a decimal literal such as "-0.444444444444444444444" at
// the backend precision.
func (b BigFloat) FromString(s string) (*big.Float, error) {
	f, ok := b.newFloat().SetString(s)
	if !ok {
		return nil, fmt.Errorf("precision: cannot parse %q as a number", s)
	}

	return f, nil
}

func (b BigFloat) Float64(x *big.Float) float64 {
	f, _ := x.Float64()

	return f
}

func (b BigFloat) String(x *big.Float) string { return x.Text('g', b.digits) }

func (b BigFloat) Add(x, y *big.Float) *big.Float { return b.newFloat().Add(x, y) }
func (b BigFloat) Sub(x, y *big.Float) *big.Float { return b.newFloat().Sub(x, y) }
func (b BigFloat) Mul(x, y *big.Float) *big.Float { return b.newFloat().Mul(x, y) }
func (b BigFloat) Quo(x, y *big.Float) *big.Float { return b.newFloat().Quo(x, y) }
func (b BigFloat) Neg(x *big.Float) *big.Float    { return b.newFloat().Neg(x) }
func (b BigFloat) Abs(x *big.Float) *big.Float    { return b.newFloat().Abs(x) }

func (b BigFloat) Ldexp(x *big.Float, k int) *big.Float { return b.newFloat().SetMantExp(x, k) }

func (b BigFloat) Cmp(x, y *big.Float) int { return x.Cmp(y) }
func (b BigFloat) Sign(x *big.Float) int   { return x.Sign() }

// Sqrt panics for negative x, like big.Float.Sqrt.
func (b BigFloat) Sqrt(x *big.Float) *big.Float { return b.newFloat().Sqrt(x) }

func (b BigFloat) Exp(x *big.Float) *big.Float {
	return b.newFloat().Set(bigfloat.Exp(b.newFloat().Set(x)))
}

// Log returns the natural logarithm of x. It panics for negative x.
func (b BigFloat) Log(x *big.Float) *big.Float {
	return b.newFloat().Set(bigfloat.Log(b.newFloat().Set(x)))
}

func (b BigFloat) Sinh(x *big.Float) *big.Float {
	e := bigfloat.Exp(b.wide().Set(x))
	inv := b.wide().Quo(big.NewFloat(1), e)
	e.Sub(e, inv)

	return b.newFloat().SetMantExp(e, -1)
}

func (b BigFloat) Cosh(x *big.Float) *big.Float {
	e := bigfloat.Exp(b.wide().Set(x))
	inv := b.wide().Quo(big.NewFloat(1), e)
	e.Add(e, inv)

	return b.newFloat().SetMantExp(e, -1)
}

// Tanh evaluates (1-e)/(1+e) with e = exp(-2|x|), which stays finite for any x.
func (b BigFloat) Tanh(x *big.Float) *big.Float {
	if x.IsInf() {
		return b.FromInt(int64(x.Sign()))
	}
	ax := b.wide().Abs(x)
	e := bigfloat.Exp(ax.Neg(ax.SetMantExp(ax, 1)))
	one := b.wide().SetInt64(1)
	num := b.wide().Sub(one, e)
	den := b.wide().Add(one, e)
	r := b.newFloat().Quo(num, den)
	if x.Sign() < 0 {
		r.Neg(r)
	}

	return r
}

func (b BigFloat) Atan(x *big.Float) *big.Float {
	wp := b.prec + extraBits
	if x.IsInf() {
		r := b.newFloat().SetMantExp(piAt(wp), -1)
		if x.Sign() < 0 {
			r.Neg(r)
		}
		return r
	}

	z := new(big.Float).SetPrec(wp).Abs(x)
	one := new(big.Float).SetPrec(wp).SetInt64(1)
	invert := z.Cmp(one) > 0
	if invert {
		z.Quo(one, z)
	}
	r := atanUnit(z, wp)
	if invert {
		halfPi := new(big.Float).SetPrec(wp).SetMantExp(piAt(wp), -1)
		r.Sub(halfPi, r)
	}
	if x.Sign() < 0 {
		r.Neg(r)
	}

	return b.newFloat().Set(r)
}

// Sin returns sin x. It panics with big.ErrNaN for infinite x.
func (b BigFloat) Sin(x *big.Float) *big.Float {
	s, _ := sinCos(x, b.prec+extraBits)

	return b.newFloat().Set(s)
}

// Cos returns cos x. It panics with big.ErrNaN for infinite x.
func (b BigFloat) Cos(x *big.Float) *big.Float {
	_, c := sinCos(x, b.prec+extraBits)

	return b.newFloat().Set(c)
}

func (b BigFloat) Pi() *big.Float { return b.newFloat().Set(piAt(b.prec + extraBits)) }

func (b BigFloat) Inf(sign int) *big.Float { return b.newFloat().SetInf(sign < 0) }

// IsFinite reports whether x is non-nil and not ±Inf (big.Float has no NaN).
func (b BigFloat) IsFinite(x *big.Float) bool { return x != nil && !x.IsInf() }

// Epsilon returns 10^-Digits.
func (b BigFloat) Epsilon() *big.Float {
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(b.digits)), nil)
	den := b.newFloat().SetInt(p)

	return b.newFloat().Quo(b.FromInt(1), den)
}

// LogTiny returns ln(10^(-16·Digits)). The exponent range of big.Float is
// practically unbounded, so the cut-off scales with the precision instead.
func (b BigFloat) LogTiny() float64 { return -16 * float64(b.digits) * math.Ln10 }

// Sum accumulates in Prec()+64 bits and rounds once.
func (b BigFloat) Sum(xs []*big.Float) *big.Float {
	acc := b.wide()
	var x *big.Float
	for _, x = range xs {
		acc.Add(acc, x)
	}

	return b.newFloat().Set(acc)
}

// atanUnit evaluates atan(z) for 0 <= z <= 1 at wp bits. The argument is
// halved with atan(z) = 2·atan(z/(1+sqrt(1+z²))) until it drops below
// atanReduce, then the Taylor series is summed.
func atanUnit(z *big.Float, wp uint) *big.Float {
	z = new(big.Float).SetPrec(wp).Set(z)
	if z.Sign() == 0 {
		return z
	}
	one := new(big.Float).SetPrec(wp).SetInt64(1)
	limit := new(big.Float).SetPrec(wp).SetFloat64(atanReduce)
	sq := new(big.Float).SetPrec(wp)
	root := new(big.Float).SetPrec(wp)

	var k int
	for z.Cmp(limit) > 0 {
		sq.Mul(z, z)
		sq.Add(sq, one)
		root.Sqrt(sq)
		root.Add(root, one)
		z.Quo(z, root)
		k++
	}

	var (
		sum  = new(big.Float).SetPrec(wp).Set(z)
		term = new(big.Float).SetPrec(wp).Set(z)
		z2   = new(big.Float).SetPrec(wp).Mul(z, z)
		tol  = new(big.Float).SetPrec(wp).SetMantExp(one, -int(wp))
		div  = new(big.Float).SetPrec(wp)
		q    = new(big.Float).SetPrec(wp)
		aq   = new(big.Float).SetPrec(wp)
		n    int64
	)
	for n = 3; ; n += 2 {
		term.Mul(term, z2)
		term.Neg(term)
		q.Quo(term, div.SetInt64(n))
		if aq.Abs(q).Cmp(tol) < 0 {
			break
		}
		sum.Add(sum, q)
	}

	return sum.SetMantExp(sum, k)
}

// sinCos returns sin x and cos x at wp bits. x is reduced to r = x - n·π/2
// with |r| <= π/4, carrying as many extra bits as x has integer bits, and
// the quadrant n mod 4 selects the signs.
func sinCos(x *big.Float, wp uint) (sin, cos *big.Float) {
	if x.IsInf() {
		panic(big.ErrNaN{})
	}
	if x.Sign() == 0 {
		return new(big.Float).SetPrec(wp), new(big.Float).SetPrec(wp).SetInt64(1)
	}
	if e := x.MantExp(nil); e > 0 {
		wp += uint(e)
	}

	halfPi := new(big.Float).SetPrec(wp).SetMantExp(piAt(wp), -1)
	q := new(big.Float).SetPrec(wp).Quo(x, halfPi)
	n := nearestInt(q)
	r := new(big.Float).SetPrec(wp).SetInt(n)
	r.Mul(r, halfPi)
	r.Sub(x, r)

	sin, cos = sinCosSmall(r, wp)
	switch new(big.Int).Mod(n, big.NewInt(4)).Int64() {
	case 1:
		sin, cos = cos, sin.Neg(sin)
	case 2:
		sin.Neg(sin)
		cos.Neg(cos)
	case 3:
		sin, cos = cos.Neg(cos), sin
	}

	return sin, cos
}

// sinCosSmall evaluates sin and cos for |r| <= π/4. r is halved until it
// drops below trigReduce, the sine series is summed, and the angle is
// doubled back with sin 2a = 2·sin a·cos a and cos 2a = 1 - 2·sin²a.
func sinCosSmall(r *big.Float, wp uint) (sin, cos *big.Float) {
	z := new(big.Float).SetPrec(wp).Set(r)
	if z.Sign() == 0 {
		return z, new(big.Float).SetPrec(wp).SetInt64(1)
	}
	limit := new(big.Float).SetPrec(wp).SetFloat64(trigReduce)
	az := new(big.Float).SetPrec(wp).Abs(z)

	var k int
	for az.Cmp(limit) > 0 {
		z.SetMantExp(z, -1)
		az.SetMantExp(az, -1)
		k++
	}

	var (
		one  = new(big.Float).SetPrec(wp).SetInt64(1)
		sum  = new(big.Float).SetPrec(wp).Set(z)
		term = new(big.Float).SetPrec(wp).Set(z)
		z2   = new(big.Float).SetPrec(wp).Mul(z, z)
		tol  = new(big.Float).SetPrec(wp).SetMantExp(az, -int(wp))
		div  = new(big.Float).SetPrec(wp)
		at   = new(big.Float).SetPrec(wp)
		n    int64
	)
	for n = 2; ; n += 2 {
		term.Mul(term, z2)
		term.Neg(term)
		term.Quo(term, div.SetInt64(n*(n+1)))
		if at.Abs(term).Cmp(tol) < 0 {
			break
		}
		sum.Add(sum, term)
	}

	sin = sum
	cos = new(big.Float).SetPrec(wp).Mul(sin, sin)
	cos.Sub(one, cos)
	cos.Sqrt(cos)

	sq := new(big.Float).SetPrec(wp)
	for ; k > 0; k-- {
		sq.Mul(sin, sin)
		sin.Mul(sin, cos)
		sin.SetMantExp(sin, 1)
		cos.SetMantExp(sq, 1)
		cos.Sub(one, cos)
	}

	return sin, cos
}

// nearestInt rounds q to the nearest integer; ties round up.
func nearestInt(q *big.Float) *big.Int {
	t := new(big.Float).SetPrec(q.Prec() + 1).Add(q, big.NewFloat(0.5))
	n, acc := t.Int(nil)
	if t.Sign() < 0 && acc == big.Above {
		n.Sub(n, big.NewInt(1))
	}

	return n
}

// piAt returns π at wp bits from Machin's formula π = 16·atan(1/5) − 4·atan(1/239).
// The result is shared through piCache and must not be mutated.
func piAt(wp uint) *big.Float {
	if v, ok := piCache.Load(wp); ok {
		return v.(*big.Float)
	}
	one := new(big.Float).SetPrec(wp).SetInt64(1)
	a := atanUnit(new(big.Float).SetPrec(wp).Quo(one, big.NewFloat(5)), wp)
	c := atanUnit(new(big.Float).SetPrec(wp).Quo(one, big.NewFloat(239)), wp)
	a.SetMantExp(a, 4)
	c.SetMantExp(c, 2)
	pi := new(big.Float).SetPrec(wp).Sub(a, c)
	v, _ := piCache.LoadOrStore(wp, pi)

	return v.(*big.Float)
}
