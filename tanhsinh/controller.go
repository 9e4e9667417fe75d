// SPDX-License-Identifier: MIT

package tanhsinh

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/dequad/precision"
)

// phase is the controller state: initial → refining → converged | exhausted.
type phase int

const (
	phaseInitial phase = iota
	phaseRefining
	phaseConverged
	phaseExhausted
)

// controller folds levels of one interval until the estimate reaches tol or
// MaxLevel is exhausted.
type controller[T any] struct {
	be    precision.Backend[T]
	in    Integrand[T]
	est   *estimator[T]
	arena *arena[T]
	opts  *Options
	half  Half

	sides [2]side[T]
	h     T // (b-a)/2
	tol   T
	eps   T
	tailW T // √ε·π/2, √ε times the centre weight
	twoPi T

	phase    phase
	level    int
	summands []T
	curv     []T
	noise    []T
	l1       T
	value    T
	estimate T
	evals    int
}

func newController[T any](be precision.Backend[T], in Integrand[T], a, b, tol T, ar *arena[T], opts *Options, half Half) *controller[T] {
	c := &controller[T]{
		be:    be,
		in:    in,
		arena: ar,
		opts:  opts,
		half:  half,
		sides: [2]side[T]{{origin: a, dir: 1}, {origin: b, dir: -1}},
		h:     be.Ldexp(be.Sub(b, a), -1),
		tol:   tol,
		eps:   be.Epsilon(),
		tailW: be.Mul(be.Ldexp(be.Pi(), -1), be.Sqrt(be.Epsilon())),
		twoPi: be.Ldexp(be.Pi(), 1),
		l1:    be.FromInt(0),
	}
	c.est = newEstimator(be, in, c.eval)

	return c
}

// eval calls the integrand once and rejects non-finite values. A big.ErrNaN
// panic raised by *big.Float arithmetic inside the integrand is reported the
// same way.
func (c *controller[T]) eval(x T) (v T, err error) {
	c.evals++
	defer func() {
		if r := recover(); r != nil {
			nan, ok := r.(big.ErrNaN)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("%w: at x=%s: %s", ErrEvaluation, c.be.String(x), nan.Error())
		}
	}()
	v, err = c.in.f(x)
	if err != nil {
		return v, err
	}
	if !c.be.IsFinite(v) {
		return v, fmt.Errorf("%w: at x=%s", ErrEvaluation, c.be.String(x))
	}

	return v, nil
}

// run drives the state machine to a terminal phase.
func (c *controller[T]) run() (Result[T], error) {
	var prev T
	c.phase = phaseRefining
	for {
		if err := c.fold(c.level); err != nil {
			return Result[T]{Level: c.level, Evaluations: c.evals}, err
		}
		step := c.be.Ldexp(c.be.FromInt(1), -c.level)
		sum := c.be.Mul(step, c.be.Sum(c.summands))

		// D_k = κ·h·(h/2π)²·max(|ΣF''| - ΣN, 0)
		r := c.be.Quo(step, c.twoPi)
		deriv := c.be.Mul(c.est.kappa, c.be.Mul(step, c.be.Mul(r, r)))
		curv := c.be.Sub(c.be.Abs(c.be.Sum(c.curv)), c.be.Sum(c.noise))
		if c.be.Sign(curv) < 0 {
			curv = c.be.FromInt(0)
		}
		deriv = c.be.Mul(deriv, curv)

		emp := c.be.Inf(1)
		if c.level > 0 {
			emp = c.be.Abs(c.be.Sub(sum, prev))
		}
		c.value, c.estimate = sum, precision.Max(c.be, deriv, emp)
		c.report(deriv, emp)

		if c.level >= 1 && c.be.Cmp(c.estimate, c.tol) <= 0 {
			c.phase = phaseConverged
			break
		}
		if c.level >= c.opts.MaxLevel {
			c.phase = phaseExhausted
			break
		}
		prev = sum
		c.level++
	}

	res := Result[T]{
		Value:       c.value,
		Estimate:    c.estimate,
		Level:       c.level,
		Evaluations: c.evals,
		Status:      Converged,
	}
	if c.phase == phaseExhausted {
		res.Status = MaxLevelReached
		c.opts.Logger.Debug("max level reached",
			"half", string(c.half),
			"level", c.level,
			"estimate", c.be.String(c.estimate),
			"tol", c.be.String(c.tol),
		)
	}

	return res, nil
}

// fold evaluates the nodes new at level k on both sides. The centre node
// (t = 0, level 0 only) is taken once, on the left side.
//
// A side stops after two consecutive nodes whose weight is below tailW and
// whose weight times the largest |f| seen so far on that side cannot move the
// sum by ε relative to the running L1 norm. Bounding by the weight rather than
// by the summand itself keeps interior zeros and tiny values of f from cutting
// the side short.
func (c *controller[T]) fold(k int) error {
	nodes, err := c.arena.level(k)
	if err != nil {
		return err
	}
	for i := range c.sides {
		sd := c.sides[i]
		small := 0
		peak := c.be.FromInt(0)
		for j := range nodes {
			n := &nodes[j]
			if i == 1 && k == 0 && j == 0 {
				continue
			}
			s := c.be.Mul(c.h, n.Complement)
			x := sd.at(c.be, s)
			if c.be.Cmp(x, sd.origin) == 0 {
				break // collapsed onto the endpoint
			}
			v, err := c.eval(x)
			if err != nil {
				return err
			}
			term := c.be.Mul(c.h, c.be.Mul(n.Weight, v))
			mag := c.be.Abs(term)
			peak = precision.Max(c.be, peak, c.be.Abs(v))
			if c.negligible(n.Weight, peak) {
				if small++; small >= 2 {
					break
				}
			} else {
				small = 0
			}
			c.summands = append(c.summands, term)
			c.l1 = c.be.Add(c.l1, mag)

			fpp, noise, ok, err := c.est.curvature(sd, n, c.h, s, x, v)
			if err != nil {
				return err
			}
			if ok {
				c.curv = append(c.curv, fpp)
				c.noise = append(c.noise, noise)
			}
		}
	}

	return nil
}

// negligible reports whether a node of weight w is past the tail: w ≤ tailW
// and H·w·peak ≤ ε·L1.
func (c *controller[T]) negligible(w, peak T) bool {
	if c.be.Cmp(w, c.tailW) > 0 {
		return false
	}
	bound := c.be.Mul(c.h, c.be.Mul(w, peak))

	return c.be.Cmp(bound, c.be.Mul(c.eps, c.l1)) <= 0
}

func (c *controller[T]) report(deriv, emp T) {
	c.opts.Logger.Debug("level folded",
		"half", string(c.half),
		"level", c.level,
		"summands", len(c.summands),
		"evaluations", c.evals,
		"value", c.be.String(c.value),
		"estimate", c.be.String(c.estimate),
		"derivative", c.be.Float64(deriv),
		"empirical", c.be.Float64(emp),
	)
	if c.opts.Hooks.OnLevel == nil {
		return
	}
	c.opts.Hooks.OnLevel(&LevelEvent{
		Mode:        c.be.Mode(),
		Half:        c.half,
		Level:       c.level,
		Summands:    len(c.summands),
		Evaluations: c.evals,
		Value:       c.be.Float64(c.value),
		Estimate:    c.be.Float64(c.estimate),
		Derivative:  c.be.Float64(deriv),
		Empirical:   c.be.Float64(emp),
	})
}
