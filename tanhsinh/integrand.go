// SPDX-License-Identifier: MIT

package tanhsinh

import "github.com/katalvlaran/dequad/precision"

// Integrand is the function being integrated, optionally with its first and
// second derivatives. Build it with Func, FuncE or Derivatives; the engine
// resolves the variant once per call and never retains it afterwards.
type Integrand[T any] struct {
	f  func(x T) (T, error)
	d1 func(x T) T
	d2 func(x T) T
}

// Func wraps a value-only integrand. The derivative-based error estimate
// falls back to finite differences, which costs four extra evaluations per
// node.
func Func[T any](f func(x T) T) Integrand[T] {
	if f == nil {
		return Integrand[T]{}
	}

	return Integrand[T]{f: func(x T) (T, error) { return f(x), nil }}
}

// FuncE wraps an integrand that can fail. Its errors abort the integration
// and are returned unmodified.
func FuncE[T any](f func(x T) (T, error)) Integrand[T] {
	return Integrand[T]{f: f}
}

// Derivatives wraps an integrand together with f' and f''. When either
// derivative is nil the integrand behaves like Func(f).
func Derivatives[T any](f, d1, d2 func(x T) T) Integrand[T] {
	in := Func(f)
	if in.f != nil && d1 != nil && d2 != nil {
		in.d1, in.d2 = d1, d2
	}

	return in
}

// HasDerivatives reports whether explicit f' and f'' are attached.
func (in Integrand[T]) HasDerivatives() bool { return in.d1 != nil && in.d2 != nil }

// ValueOnly drops the derivatives, forcing the finite-difference estimate.
func (in Integrand[T]) ValueOnly() Integrand[T] { return Integrand[T]{f: in.f} }

// side is one half of the symmetric node set: arguments are origin + dir·s
// for offsets s in (0, H].
type side[T any] struct {
	origin T
	dir    int // +1 from a, -1 from b
}

func (sd side[T]) at(be precision.Backend[T], s T) T {
	if sd.dir < 0 {
		return be.Sub(sd.origin, s)
	}

	return be.Add(sd.origin, s)
}
