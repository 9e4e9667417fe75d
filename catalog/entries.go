// SPDX-License-Identifier: MIT

package catalog

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strings"

	"github.com/katalvlaran/dequad/precision"
)

var halfPi = Bound{Num: 1, Den: 2, Pi: true}

var entries = []Entry{
	{
		Name: "const", Formula: "1", A: whole(-1), B: whole(1), Exact: "2",
		F:     func(float64) float64 { return 1 },
		D1:    func(float64) float64 { return 0 },
		D2:    func(float64) float64 { return 0 },
		BigF:  func(*big.Float) *big.Float { return precision.NewFloat(1) },
		BigD1: func(*big.Float) *big.Float { return precision.NewFloat(0) },
		BigD2: func(*big.Float) *big.Float { return precision.NewFloat(0) },
	},
	{
		Name: "const5", Formula: "1", A: whole(0), B: whole(5), Exact: "5",
		F:    func(float64) float64 { return 1 },
		BigF: func(*big.Float) *big.Float { return precision.NewFloat(1) },
	},
	{
		Name: "linear", Formula: "x", A: whole(0), B: whole(1), Exact: "1/2",
		F:     func(x float64) float64 { return x },
		D1:    func(float64) float64 { return 1 },
		D2:    func(float64) float64 { return 0 },
		BigF:  func(x *big.Float) *big.Float { return x },
		BigD1: func(*big.Float) *big.Float { return precision.NewFloat(1) },
		BigD2: func(*big.Float) *big.Float { return precision.NewFloat(0) },
	},
	{
		Name: "square", Formula: "x²", A: whole(-1), B: whole(1), Exact: "2/3",
		F:  func(x float64) float64 { return x * x },
		D1: func(x float64) float64 { return 2 * x },
		D2: func(float64) float64 { return 2 },
		BigF: func(x *big.Float) *big.Float {
			return precision.Current().Mul(x, x)
		},
		BigD1: func(x *big.Float) *big.Float { return precision.Current().Ldexp(x, 1) },
		BigD2: func(*big.Float) *big.Float { return precision.NewFloat(2) },
	},
	{
		Name: "bailey1", Formula: "x·log(1+x)", A: whole(0), B: whole(1), Exact: "1/4",
		F:  func(x float64) float64 { return x * math.Log1p(x) },
		D1: func(x float64) float64 { return math.Log1p(x) + x/(1+x) },
		D2: func(x float64) float64 { return 1/(1+x) + 1/((1+x)*(1+x)) },
		BigF: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Mul(x, be.Log(be.Add(be.FromInt(1), x)))
		},
		BigD1: func(x *big.Float) *big.Float {
			be := precision.Current()
			p := be.Add(be.FromInt(1), x)
			return be.Add(be.Log(p), be.Quo(x, p))
		},
		BigD2: func(x *big.Float) *big.Float {
			be := precision.Current()
			r := be.Quo(be.FromInt(1), be.Add(be.FromInt(1), x))
			return be.Add(r, be.Mul(r, r))
		},
	},
	{
		Name: "bailey2", Formula: "x²·atan x", A: whole(0), B: whole(1),
		Exact: "0.210657251225806988108092302182988001695680805674634694101359",
		F:     func(x float64) float64 { return x * x * math.Atan(x) },
		D1:    func(x float64) float64 { return 2*x*math.Atan(x) + x*x/(1+x*x) },
		D2: func(x float64) float64 {
			q := 1 + x*x
			return 2*math.Atan(x) + 2*x/q + 2*x/(q*q)
		},
		BigF: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Mul(be.Mul(x, x), be.Atan(x))
		},
		BigD1: func(x *big.Float) *big.Float {
			be := precision.Current()
			x2 := be.Mul(x, x)
			return be.Add(be.Mul(be.Ldexp(x, 1), be.Atan(x)), be.Quo(x2, be.Add(be.FromInt(1), x2)))
		},
		BigD2: func(x *big.Float) *big.Float {
			be := precision.Current()
			q := be.Add(be.FromInt(1), be.Mul(x, x))
			x2 := be.Ldexp(x, 1)
			return be.Add(be.Ldexp(be.Atan(x), 1), be.Add(be.Quo(x2, q), be.Quo(x2, be.Mul(q, q))))
		},
	},
	{
		Name: "bailey3", Formula: "eˣ·cos x", A: whole(0), B: halfPi,
		Exact: "1.90523869048267582773651783335191656319508543733226747001041",
		F:     func(x float64) float64 { return math.Exp(x) * math.Cos(x) },
		D1:    func(x float64) float64 { return math.Exp(x) * (math.Cos(x) - math.Sin(x)) },
		D2:    func(x float64) float64 { return -2 * math.Exp(x) * math.Sin(x) },
		BigF: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Mul(be.Exp(x), be.Cos(x))
		},
		BigD1: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Mul(be.Exp(x), be.Sub(be.Cos(x), be.Sin(x)))
		},
		BigD2: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Neg(be.Ldexp(be.Mul(be.Exp(x), be.Sin(x)), 1))
		},
	},
	{
		Name: "bailey4", Formula: "atan(√(2+x²)) / ((1+x²)·√(2+x²))", A: whole(0), B: whole(1),
		Exact: "0.514041895890070761397629739576882871630921844127124511792362",
		F: func(x float64) float64 {
			r := math.Sqrt(2 + x*x)
			return math.Atan(r) / ((1 + x*x) * r)
		},
		BigF: func(x *big.Float) *big.Float {
			be := precision.Current()
			x2 := be.Mul(x, x)
			r := be.Sqrt(be.Add(be.FromInt(2), x2))
			return be.Quo(be.Atan(r), be.Mul(be.Add(be.FromInt(1), x2), r))
		},
	},
	{
		Name: "bailey5", Formula: "√x·log x", A: whole(0), B: whole(1), Exact: "-4/9",
		F:  func(x float64) float64 { return math.Sqrt(x) * math.Log(x) },
		D1: func(x float64) float64 { return math.Log(x)/(2*math.Sqrt(x)) + 1/math.Sqrt(x) },
		D2: func(x float64) float64 { return -math.Log(x) / (4 * x * math.Sqrt(x)) },
		BigF: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Mul(be.Sqrt(x), be.Log(x))
		},
		BigD1: func(x *big.Float) *big.Float {
			be := precision.Current()
			r := be.Sqrt(x)
			return be.Add(be.Quo(be.Log(x), be.Ldexp(r, 1)), be.Quo(be.FromInt(1), r))
		},
		BigD2: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Neg(be.Quo(be.Log(x), be.Ldexp(be.Mul(x, be.Sqrt(x)), 2)))
		},
	},
	{
		Name: "bailey6", Formula: "√(2x-x²)", A: whole(0), B: whole(1),
		Exact: "0.785398163397448309615660845819875721049292349843776455243736",
		F:     func(x float64) float64 { return math.Sqrt(2*x - x*x) },
		D1:    func(x float64) float64 { return (1 - x) / math.Sqrt(2*x-x*x) },
		D2: func(x float64) float64 {
			r := math.Sqrt(2*x - x*x)
			return -1 / (r * r * r)
		},
		BigF: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Sqrt(be.Sub(be.Ldexp(x, 1), be.Mul(x, x)))
		},
	},
	{
		Name: "bailey7", Formula: "√(x/(1-x²))", A: whole(0), B: whole(1),
		Exact: "1.19814023473559220743992249228032387822721266321565155826367",
		Left:  bailey7Left,
		Right: bailey7Right,
		// (ln L)' = 1/(2s) + s/(1-s²)
		LeftD1: logD1(bailey7Left, bailey7LeftLog),
		LeftD2: logD2(bailey7Left, bailey7LeftLog, func(s float64) float64 {
			return -1/(2*s*s) + (1+s*s)/((1-s*s)*(1-s*s))
		}),
		// (ln R)' = -1/(2(1-s)) - 1/(2s) + 1/(2(2-s))
		RightD1: logD1(bailey7Right, bailey7RightLog),
		RightD2: logD2(bailey7Right, bailey7RightLog, func(s float64) float64 {
			return -1/(2*(1-s)*(1-s)) + 1/(2*s*s) + 1/(2*(2-s)*(2-s))
		}),
		BigLeft:   bigBailey7Left,
		BigRight:  bigBailey7Right,
		BigLeftD1: bigLogD1(bigBailey7Left, bigBailey7LeftLog),
		BigLeftD2: bigLogD2(bigBailey7Left, bigBailey7LeftLog, func(s *big.Float) *big.Float {
			be := precision.Current()
			one := be.FromInt(1)
			q := be.Sub(one, be.Mul(s, s))
			return be.Sub(be.Quo(be.Add(one, be.Mul(s, s)), be.Mul(q, q)), halfRecip(be, be.Mul(s, s)))
		}),
		BigRightD1: bigLogD1(bigBailey7Right, bigBailey7RightLog),
		BigRightD2: bigLogD2(bigBailey7Right, bigBailey7RightLog, func(s *big.Float) *big.Float {
			be := precision.Current()
			c := be.Sub(be.FromInt(1), s)
			t := be.Sub(be.FromInt(2), s)
			return be.Add(be.Sub(halfRecip(be, be.Mul(s, s)), halfRecip(be, be.Mul(c, c))), halfRecip(be, be.Mul(t, t)))
		}),
	},
	{
		Name: "bailey8", Formula: "log²x", A: whole(0), B: whole(1), Exact: "2",
		F: func(x float64) float64 {
			l := math.Log(x)
			return l * l
		},
		D1: func(x float64) float64 { return 2 * math.Log(x) / x },
		D2: func(x float64) float64 { return (2 - 2*math.Log(x)) / (x * x) },
		BigF: func(x *big.Float) *big.Float {
			be := precision.Current()
			l := be.Log(x)
			return be.Mul(l, l)
		},
		BigD1: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Quo(be.Ldexp(be.Log(x), 1), x)
		},
		BigD2: func(x *big.Float) *big.Float {
			be := precision.Current()
			num := be.Ldexp(be.Sub(be.FromInt(1), be.Log(x)), 1)
			return be.Quo(num, be.Mul(x, x))
		},
	},
	{
		Name: "bailey9", Formula: "log sin x", A: whole(0), B: halfPi,
		Exact: "-1.08879304515180106525034444911880697366929185018464314716290",
		F:     func(x float64) float64 { return math.Log(math.Sin(x)) },
		D1:    func(x float64) float64 { return math.Cos(x) / math.Sin(x) },
		D2: func(x float64) float64 {
			s := math.Sin(x)
			return -1 / (s * s)
		},
		BigF: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Log(be.Sin(x))
		},
		BigD1: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Quo(be.Cos(x), be.Sin(x))
		},
		BigD2: func(x *big.Float) *big.Float {
			be := precision.Current()
			s := be.Sin(x)
			return be.Neg(be.Quo(be.FromInt(1), be.Mul(s, s)))
		},
	},
	{
		Name: "bailey10", Formula: "√tan x", A: whole(0), B: halfPi,
		Exact: "2.22144146907918312350794049503034684930731084468784511154270",
		Left:  bailey10Left,
		Right: bailey10Right,
		// (ln L)' = 1/sin 2s = -(ln R)'
		LeftD1:  logD1(bailey10Left, bailey10Log),
		LeftD2:  logD2(bailey10Left, bailey10Log, bailey10LogD),
		RightD1: logD1(bailey10Right, negate(bailey10Log)),
		RightD2: logD2(bailey10Right, negate(bailey10Log), negate(bailey10LogD)),
		BigLeft:    bigBailey10Left,
		BigRight:   bigBailey10Right,
		BigLeftD1:  bigLogD1(bigBailey10Left, bigBailey10Log),
		BigLeftD2:  bigLogD2(bigBailey10Left, bigBailey10Log, bigBailey10LogD),
		BigRightD1: bigLogD1(bigBailey10Right, bigNegate(bigBailey10Log)),
		BigRightD2: bigLogD2(bigBailey10Right, bigNegate(bigBailey10Log), bigNegate(bigBailey10LogD)),
	},
	{
		Name: "bailey11", Formula: "1/(1-2x+2x²)", A: whole(0), B: whole(1),
		Exact: "1.57079632679489661923132169163975144209858469968755291048747",
		F:     func(x float64) float64 { return 1 / (1 - 2*x + 2*x*x) },
		D1: func(x float64) float64 {
			q := 1 - 2*x + 2*x*x
			return -(4*x - 2) / (q * q)
		},
		D2: func(x float64) float64 {
			q := 1 - 2*x + 2*x*x
			return 2*(4*x-2)*(4*x-2)/(q*q*q) - 4/(q*q)
		},
		BigF: func(x *big.Float) *big.Float {
			be := precision.Current()
			return be.Quo(be.FromInt(1), bailey11Denominator(be, x))
		},
		BigD1: func(x *big.Float) *big.Float {
			be := precision.Current()
			q := bailey11Denominator(be, x)
			lin := be.Sub(be.Ldexp(x, 2), be.FromInt(2))
			return be.Neg(be.Quo(lin, be.Mul(q, q)))
		},
		BigD2: func(x *big.Float) *big.Float {
			be := precision.Current()
			q := bailey11Denominator(be, x)
			lin := be.Sub(be.Ldexp(x, 2), be.FromInt(2))
			q2 := be.Mul(q, q)
			a := be.Quo(be.Ldexp(be.Mul(lin, lin), 1), be.Mul(q2, q))
			return be.Sub(a, be.Quo(be.FromInt(4), q2))
		},
	},
	{
		Name: "bailey12", Formula: "exp(1-1/x)/√(x³-x⁴)", A: whole(0), B: whole(1),
		Exact: "1.77245385090551602729816748334114518279754945612238712821381",
		Left:  bailey12Left,
		Right: bailey12Right,
		// (ln L)' = 1/s² - 3/(2s) + 1/(2(1-s))
		LeftD1: logD1(bailey12Left, bailey12LeftLog),
		LeftD2: logD2(bailey12Left, bailey12LeftLog, func(s float64) float64 {
			return -2/(s*s*s) + 3/(2*s*s) + 1/(2*(1-s)*(1-s))
		}),
		// (ln R)' = -1/(1-s)² - 1/(2s) + 3/(2(1-s))
		RightD1: logD1(bailey12Right, bailey12RightLog),
		RightD2: logD2(bailey12Right, bailey12RightLog, func(s float64) float64 {
			c := 1 - s
			return -2/(c*c*c) + 1/(2*s*s) + 3/(2*c*c)
		}),
		BigLeft:   bigBailey12Left,
		BigRight:  bigBailey12Right,
		BigLeftD1: bigLogD1(bigBailey12Left, bigBailey12LeftLog),
		BigLeftD2: bigLogD2(bigBailey12Left, bigBailey12LeftLog, func(s *big.Float) *big.Float {
			be := precision.Current()
			s2 := be.Mul(s, s)
			c := be.Sub(be.FromInt(1), s)
			a := be.Neg(be.Quo(be.FromInt(2), be.Mul(s2, s)))
			b := be.Mul(be.FromInt(3), halfRecip(be, s2))
			return be.Add(be.Add(a, b), halfRecip(be, be.Mul(c, c)))
		}),
		BigRightD1: bigLogD1(bigBailey12Right, bigBailey12RightLog),
		BigRightD2: bigLogD2(bigBailey12Right, bigBailey12RightLog, func(s *big.Float) *big.Float {
			be := precision.Current()
			c := be.Sub(be.FromInt(1), s)
			c2 := be.Mul(c, c)
			a := be.Neg(be.Quo(be.FromInt(2), be.Mul(c2, c)))
			b := halfRecip(be, be.Mul(s, s))
			return be.Add(be.Add(a, b), be.Mul(be.FromInt(3), halfRecip(be, c2)))
		}),
	},
	{
		Name: "bailey13", Formula: "exp(-(1/x-1)²/2)/x²", A: whole(0), B: whole(1),
		Exact: "1.25331413731550025120788264240552262650349337030496915831496",
		F: func(s float64) float64 {
			u := 1/s - 1
			return math.Exp(-u*u/2) / (s * s)
		},
		BigF: func(s *big.Float) *big.Float {
			be := precision.Current()
			u := be.Sub(be.Quo(be.FromInt(1), s), be.FromInt(1))
			return be.Quo(be.Exp(be.Neg(be.Ldexp(be.Mul(u, u), -1))), be.Mul(s, s))
		},
	},
	{
		Name: "bailey14", Formula: "exp(1-1/x)·cos(1/x-1)/x²", A: whole(0), B: whole(1), Exact: "1/2",
		F: func(s float64) float64 {
			return math.Exp(1-1/s) * math.Cos(1/s-1) / (s * s)
		},
		BigF: func(s *big.Float) *big.Float {
			be := precision.Current()
			u := be.Sub(be.Quo(be.FromInt(1), s), be.FromInt(1))
			return be.Quo(be.Mul(be.Exp(be.Neg(u)), be.Cos(u)), be.Mul(s, s))
		},
	},
}

func bailey11Denominator(be precision.BigFloat, x *big.Float) *big.Float {
	// 1 - 2x + 2x²
	return be.Add(be.FromInt(1), be.Ldexp(be.Sub(be.Mul(x, x), x), 1))
}

// All returns every entry in catalog order. The slice is a copy.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	return out
}

// Names returns the entry names in catalog order.
func Names() []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}

	return names
}

// Lookup finds an entry by exact name.
func Lookup(name string) (Entry, error) {
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}

	return Entry{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownEntry, name, strings.Join(sortedNames(), ", "))
}

// Filter returns the entries whose name contains substr; an empty substr
// selects everything.
func Filter(substr string) []Entry {
	var out []Entry
	for _, e := range entries {
		if strings.Contains(e.Name, substr) {
			out = append(out, e)
		}
	}

	return out
}

func sortedNames() []string {
	names := Names()
	sort.Strings(names)

	return names
}
