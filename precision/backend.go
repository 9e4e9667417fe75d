// SPDX-License-Identifier: MIT

package precision

import (
	"fmt"
	"strings"
)

// Mode selects the numeric backend of an integration.
type Mode int

const (
	// Fixed evaluates everything in float64.
	Fixed Mode = iota

	// Arbitrary evaluates everything in *big.Float at a configured number of digits.
	Arbitrary
)

// String returns the lower-case mode name used by the CLI and by metric labels.
func (m Mode) String() string {
	switch m {
	case Fixed:
		return "fixed"
	case Arbitrary:
		return "arbitrary"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "fixed"/"float64" and "arbitrary"/"big"/"mp" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "float64", "double":
		return Fixed, nil
	case "arbitrary", "big", "mp":
		return Arbitrary, nil
	default:
		return Fixed, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Backend is the numeric contract consumed by the quadrature engine.
//
// Every method returns a fresh value and never mutates its arguments, so a
// Backend may be shared between goroutines as long as the values it is handed
// are not mutated concurrently.
type Backend[T any] interface {
	// Mode reports which precision mode the backend implements.
	Mode() Mode
	// Digits is the number of significant decimal digits carried.
	Digits() int

	FromFloat64(v float64) T
	FromInt(v int64) T
	Float64(x T) float64
	String(x T) string

	Add(x, y T) T
	Sub(x, y T) T
	Mul(x, y T) T
	Quo(x, y T) T
	Neg(x T) T
	Abs(x T) T
	// Ldexp returns x·2^k exactly.
	Ldexp(x T, k int) T
	Cmp(x, y T) int
	Sign(x T) int

	Sqrt(x T) T
	Exp(x T) T
	Sinh(x T) T
	Cosh(x T) T
	Tanh(x T) T
	Atan(x T) T
	Pi() T

	// Inf returns +Inf for sign >= 0 and -Inf otherwise.
	Inf(sign int) T
	IsFinite(x T) bool

	// Epsilon is the unit of the working precision.
	Epsilon() T
	// LogTiny is the natural log of the smallest abscissa offset that is
	// still worth generating nodes for.
	LogTiny() float64

	// Sum adds xs with more care than a naive left fold.
	Sum(xs []T) T
}

// Max returns the larger of x and y under be.
func Max[T any](be Backend[T], x, y T) T {
	if be.Cmp(x, y) >= 0 {
		return x
	}

	return y
}
