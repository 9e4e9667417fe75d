// SPDX-License-Identifier: MIT

package tanhsinh

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dequad/precision"
)

// Node is one abscissa/weight pair of the tanh-sinh rule on (-1, 1), for an
// offset t ≥ 0. The mirrored node at -t has abscissa -Abscissa and the same
// weight.
type Node[T any] struct {
	// Offset is t = j·2^-k.
	Offset T
	// Abscissa is x(t) = tanh(π/2·sinh t).
	Abscissa T
	// Complement is y(t) = 1 - x(t), computed without cancellation.
	Complement T
	// Weight is w(t) = -y'(t) = (π/2·cosh t) / cosh²(π/2·sinh t).
	Weight T
	// D2 and D3 are y''(t) and y'''(t), used by the error estimate.
	D2 T
	D3 T
}

// minChunk is the smallest batch a worker is handed.
const minChunk = 64

// generator evaluates nodes under one backend.
type generator[T any] struct {
	be     precision.Backend[T]
	one    T
	six    T
	halfPi T
	tmax   float64
}

func newGenerator[T any](be precision.Backend[T]) *generator[T] {
	return &generator[T]{
		be:     be,
		one:    be.FromInt(1),
		six:    be.FromInt(6),
		halfPi: be.Ldexp(be.Pi(), -1),
		tmax:   maxOffset(be.LogTiny()),
	}
}

// maxOffset returns the offset beyond which y(t) ≈ 2·exp(-π·sinh t) drops
// below exp(logTiny).
func maxOffset(logTiny float64) float64 {
	u := (math.Ln2 - logTiny) / 2

	return math.Asinh(2 * u / math.Pi)
}

// indices returns the node indices j (t = j·2^-level) new at level.
func (g *generator[T]) indices(level int) []int64 {
	last := int64(math.Floor(math.Ldexp(g.tmax, level)))
	if level == 0 {
		js := make([]int64, 0, last+1)
		for j := int64(0); j <= last; j++ {
			js = append(js, j)
		}
		return js
	}
	js := make([]int64, 0, (last+1)/2)
	for j := int64(1); j <= last; j += 2 {
		js = append(js, j)
	}

	return js
}

// node computes the rule at t. With u = π/2·sinh t and e = exp(-2u):
//
//	y = 2e/(1+e), x = (1-e)/(1+e), sech²u = 4e/(1+e)², w = sech²u·u'
//	y''  = sech²u·(2x·u'² - u)
//	y''' = sech²u·(u'³(2sech²u - 4x²) + 6x·u'·u - u')
//
// using u'' = u.
func (g *generator[T]) node(t T) (Node[T], error) {
	be := g.be
	u := be.Mul(g.halfPi, be.Sinh(t))
	du := be.Mul(g.halfPi, be.Cosh(t))
	e := be.Exp(be.Neg(be.Ldexp(u, 1)))
	den := be.Add(g.one, e)

	y := be.Quo(be.Ldexp(e, 1), den)
	x := be.Quo(be.Sub(g.one, e), den)
	sech2 := be.Quo(be.Ldexp(e, 2), be.Mul(den, den))
	w := be.Mul(sech2, du)

	du2 := be.Mul(du, du)
	d2 := be.Mul(sech2, be.Sub(be.Mul(be.Ldexp(x, 1), du2), u))
	cubic := be.Mul(be.Mul(du2, du), be.Sub(be.Ldexp(sech2, 1), be.Ldexp(be.Mul(x, x), 2)))
	cross := be.Mul(g.six, be.Mul(x, be.Mul(du, u)))
	d3 := be.Mul(sech2, be.Sub(be.Add(cubic, cross), du))

	if !be.IsFinite(w) || !be.IsFinite(y) || !be.IsFinite(d3) {
		return Node[T]{}, fmt.Errorf("%w: node weight at t=%s", ErrEvaluation, be.String(t))
	}

	return Node[T]{Offset: t, Abscissa: x, Complement: y, Weight: w, D2: d2, D3: d3}, nil
}

// batch computes all nodes new at level, in increasing offset.
func (g *generator[T]) batch(level, workers int) ([]Node[T], error) {
	js := g.indices(level)
	out := make([]Node[T], len(js))
	fill := func(lo, hi int) error {
		var err error
		for i := lo; i < hi; i++ {
			t := g.be.Ldexp(g.be.FromInt(js[i]), -level)
			if out[i], err = g.node(t); err != nil {
				return err
			}
		}
		return nil
	}
	if workers <= 1 || len(js) < 2*minChunk {
		return out, fill(0, len(js))
	}

	chunk := (len(js) + workers - 1) / workers
	if chunk < minChunk {
		chunk = minChunk
	}
	var eg errgroup.Group
	eg.SetLimit(workers)
	for lo := 0; lo < len(js); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(js))
		eg.Go(func() error { return fill(lo, hi) })
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// arena caches node batches by level for the lifetime of one call. Both
// halves of IntegrateLR share it. Not safe for concurrent use.
type arena[T any] struct {
	gen     *generator[T]
	workers int
	levels  [][]Node[T]
}

func newArena[T any](be precision.Backend[T], workers int) *arena[T] {
	return &arena[T]{gen: newGenerator(be), workers: workers}
}

// level returns the nodes new at k, generating missing levels on demand.
func (ar *arena[T]) level(k int) ([]Node[T], error) {
	for len(ar.levels) <= k {
		b, err := ar.gen.batch(len(ar.levels), ar.workers)
		if err != nil {
			return nil, err
		}
		ar.levels = append(ar.levels, b)
	}

	return ar.levels[k], nil
}

// Nodes returns the nodes new at level under be, in increasing offset:
// t = 0, 1, 2, ... at level 0 and the odd multiples of 2^-level above.
// Errors: ErrBadMaxLevel when level is outside [0, MaxLevelLimit].
func Nodes[T any](be precision.Backend[T], level int) ([]Node[T], error) {
	if level < 0 || level > MaxLevelLimit {
		return nil, fmt.Errorf("%w: %d", ErrBadMaxLevel, level)
	}

	return newGenerator(be).batch(level, 1)
}
