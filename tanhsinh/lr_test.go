// SPDX-License-Identifier: MIT

package tanhsinh_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dequad/precision"
	"github.com/katalvlaran/dequad/tanhsinh"
)

// TestIntegrateLR_Bailey7 integrates √(x/(1-x²)) over [0, 1], singular at 1.
func TestIntegrateLR_Bailey7(t *testing.T) {
	left, right := bailey7()
	res, err := tanhsinh.IntegrateLR(left, right, 1, 1e-12)
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.InDelta(t, bailey7Exact, res.Value, 1e-11)
	assert.LessOrEqual(t, res.Estimate, 1e-12)
	assert.GreaterOrEqual(t, res.Level, 1)
}

// TestIntegrateLR_Derivatives runs the halves with explicit derivatives and
// compares against the finite-difference run.
func TestIntegrateLR_Derivatives(t *testing.T) {
	left, right := bailey7Derivatives()
	require.True(t, left.HasDerivatives())
	require.True(t, right.HasDerivatives())

	res, err := tanhsinh.IntegrateLR(left, right, 1, 1e-12)
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.InDelta(t, bailey7Exact, res.Value, 1e-12)
	assert.LessOrEqual(t, res.Estimate, 1e-12)

	fl, fr := bailey7()
	fd, err := tanhsinh.IntegrateLR(fl, fr, 1, 1e-12)
	require.NoError(t, err)
	assert.InDelta(t, fd.Value, res.Value, 1e-13)
	assert.Less(t, res.Evaluations, fd.Evaluations, "no stencil evaluations with explicit derivatives")
}

// TestIntegrateLR_SumOfHalves checks the combination rules against two
// direct one-sided calls on the halves.
func TestIntegrateLR_SumOfHalves(t *testing.T) {
	left, right := bailey7()
	res, err := tanhsinh.IntegrateLR(left, right, 1, 1e-10)
	require.NoError(t, err)

	l, err := tanhsinh.Integrate(left, 0, 0.5, 0.5e-10)
	require.NoError(t, err)
	r, err := tanhsinh.Integrate(right, 0, 0.5, 0.5e-10)
	require.NoError(t, err)

	assert.Equal(t, l.Value+r.Value, res.Value)
	assert.Equal(t, l.Estimate+r.Estimate, res.Estimate)
	assert.Equal(t, max(l.Level, r.Level), res.Level)
	assert.Equal(t, l.Evaluations+r.Evaluations, res.Evaluations)
}

func TestIntegrateLR_SymmetricSplit(t *testing.T) {
	// ∫_0^π/2 √tan x dx = π/√2, singular behaviour handled by both halves
	left := tanhsinh.Func(func(s float64) float64 { return math.Sqrt(math.Tan(s)) })
	right := tanhsinh.Func(func(s float64) float64 { return 1 / math.Sqrt(math.Tan(s)) })
	res, err := tanhsinh.IntegrateLR(left, right, math.Pi/2, 1e-12)
	require.NoError(t, err)
	assert.True(t, res.Converged())
	assert.InDelta(t, math.Pi/math.Sqrt2, res.Value, 1e-11)
}

func TestIntegrateLR_InvalidInput(t *testing.T) {
	left, calls := counting(math.Exp)
	right, _ := counting(math.Exp)

	for _, b := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err := tanhsinh.IntegrateLR(left, right, b, 1e-8)
		assert.ErrorIs(t, err, tanhsinh.ErrInvalidDomain, "b=%g", b)
	}
	_, err := tanhsinh.IntegrateLR(left, right, 1, 0)
	assert.ErrorIs(t, err, tanhsinh.ErrInvalidTolerance)
	_, err = tanhsinh.IntegrateLR(left, tanhsinh.Integrand[float64]{}, 1, 1e-8)
	assert.ErrorIs(t, err, tanhsinh.ErrNilIntegrand)
	assert.Zero(t, *calls)
}

// TestIntegrateLR_LeftErrorWins checks the right half never runs after a
// failing left half.
func TestIntegrateLR_LeftErrorWins(t *testing.T) {
	errLeft := errors.New("left failed")
	errRight := errors.New("right failed")
	rightCalls := 0
	left := tanhsinh.FuncE(func(float64) (float64, error) { return 0, errLeft })
	right := tanhsinh.FuncE(func(float64) (float64, error) {
		rightCalls++
		return 0, errRight
	})

	_, err := tanhsinh.IntegrateLR(left, right, 1, 1e-8)
	assert.Equal(t, errLeft, err)
	assert.Zero(t, rightCalls)

	ok := tanhsinh.Func(func(float64) float64 { return 1 })
	_, err = tanhsinh.IntegrateLR(ok, right, 1, 1e-8)
	assert.Equal(t, errRight, err)
}

// TestIntegrateLR_StrictCombined checks strict mode sees the combined status.
func TestIntegrateLR_StrictCombined(t *testing.T) {
	left, right := bailey7()
	res, err := tanhsinh.IntegrateLR(left, right, 1, 1e-15, tanhsinh.WithMaxLevel(2), tanhsinh.WithStrict())
	assert.ErrorIs(t, err, tanhsinh.ErrNonConvergence)
	assert.Equal(t, tanhsinh.MaxLevelReached, res.Status)
	assert.Equal(t, 2, res.Level)
}

func TestIntegrateLR_HooksSeeBothHalves(t *testing.T) {
	halves := map[tanhsinh.Half]int{}
	done := 0
	hooks := tanhsinh.Hooks{
		OnLevel: func(e *tanhsinh.LevelEvent) { halves[e.Half]++ },
		OnDone:  func(*tanhsinh.DoneEvent) { done++ },
	}
	left, right := bailey7()
	_, err := tanhsinh.IntegrateLR(left, right, 1, 1e-8, tanhsinh.WithHooks(hooks))
	require.NoError(t, err)
	assert.Positive(t, halves[tanhsinh.LeftHalf])
	assert.Positive(t, halves[tanhsinh.RightHalf])
	assert.Zero(t, halves[tanhsinh.Whole])
	assert.Equal(t, 1, done)
}

// TestIntegrateLRBig_Bailey7 runs the two-sided case at 30 digits.
func TestIntegrateLRBig_Bailey7(t *testing.T) {
	one := func() *big.Float { return precision.NewFloat(1) }
	left := tanhsinh.Func(func(s *big.Float) *big.Float {
		be := precision.Current()
		return be.Sqrt(be.Quo(s, be.Sub(one(), be.Mul(s, s))))
	})
	right := tanhsinh.Func(func(s *big.Float) *big.Float {
		be := precision.Current()
		den := be.Sub(be.Ldexp(s, 1), be.Mul(s, s))
		return be.Sqrt(be.Quo(be.Sub(one(), s), den))
	})

	res, err := tanhsinh.IntegrateLRBig(left, right, big.NewFloat(1), big.NewFloat(1e-14), tanhsinh.WithDigits(30))
	require.NoError(t, err)
	assert.True(t, res.Converged())

	be := precision.MustBigFloat(30)
	exact, err := be.FromString("1.19814023473559220743992249228032387822721266321565155826367")
	require.NoError(t, err)
	diff := be.Abs(be.Sub(res.Value, exact))
	assert.True(t, diff.Cmp(big.NewFloat(1e-14)) <= 0, "error %s", diff.Text('g', 5))
}
