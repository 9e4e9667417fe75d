// SPDX-License-Identifier: MIT

// Package tanhsinh computes definite integrals of one-dimensional real
// functions over finite intervals with tanh-sinh (double-exponential)
// quadrature.
//
// The substitution x = tanh(π/2·sinh t) maps (-1, 1) onto the real line and
// makes the transformed integrand decay double-exponentially in |t|, so the
// trapezoidal rule with step h converges very fast even when the integrand
// has integrable endpoint singularities (log, algebraic, 1/√).
//
// Algorithm:
//
//	– Level k uses the step h_k = 2^-k. Level 0 samples t = 0, 1, 2, ...;
//	  every later level adds only the odd multiples of h_k, so no node is
//	  ever evaluated twice.
//	– Nodes are produced from the complement y(t) = 1 - x(t) = 2e/(1+e),
//	  e = exp(-π·sinh t), which never rounds to zero before the node would
//	  be useless anyway. Integrand arguments are formed as a + H·y on the
//	  left and b - H·y on the right (H = (b-a)/2), so offsets next to an
//	  endpoint keep full relative precision.
//	– A side stops extending once two consecutive nodes have weight below
//	  √ε·π/2 and H·w·max|f| at most ε·L1 (L1 is the running sum of
//	  |summand|, max|f| the largest value seen on that side at this level),
//	  or once the argument rounds onto the endpoint. Zeros of f away from
//	  the endpoint never end a side early.
//	– After each level the error is estimated as max(D_k, E_k), where
//	  E_k = |S_k - S_{k-1}| and D_k = κ·h·(h/2π)²·|Σ F''| is Bailey's
//	  derivative-based bound. F'' needs f' and f''; they come from the
//	  integrand when supplied (κ = 1) or from central differences (κ = 2).
//	  For differences, the rounding noise the stencils can carry is bounded
//	  per node and subtracted from |Σ F''| before scaling, so D_k keeps
//	  falling with the level instead of stalling near ε^¾.
//	– The call converges at the first level k ≥ 1 whose estimate is within
//	  tol. Otherwise it stops at MaxLevel with Status MaxLevelReached.
//
// Precision:
//
//	Integrate runs in float64. IntegrateBig runs in *big.Float with the
//	working precision taken from WithDigits or precision.DefaultDigits, and
//	holds that precision as the process-wide setting for the duration of the
//	call. IntegrateWith accepts any precision.Backend.
//
// Two-sided singularities:
//
//	IntegrateLR handles integrands singular at both ends of [0, b] by
//	splitting at b/2. The caller supplies the left half as a function of the
//	distance from 0 and the right half as a function of the distance from b,
//	which avoids forming b - x near x = b.
//
// Summation:
//
//	Summands are kept per call and added with precision.Backend.Sum (Neumaier
//	for float64, widened accumulator for *big.Float). Results do not depend on
//	the fold order beyond last-ulp effects.
//
// Errors (sentinel):
//
//	– ErrInvalidDomain    a ≥ b, a non-finite bound, or b ≤ 0 for IntegrateLR.
//	– ErrInvalidTolerance tol ≤ 0 or non-finite (also matches ErrInvalidDomain).
//	– ErrBadMaxLevel      MaxLevel outside [0, MaxLevelLimit].
//	– ErrNilIntegrand     the integrand has no value function.
//	– ErrEvaluation       the integrand produced a non-finite value, or
//	                      *big.Float arithmetic inside it panicked with
//	                      big.ErrNaN.
//	– ErrNonConvergence   strict mode only; returned with the best result.
//
// Errors returned by a FuncE integrand are passed through unmodified.
//
// Example usage:
//
//	f := tanhsinh.Func(func(x float64) float64 { return math.Sqrt(x) * math.Log(x) })
//	res, err := tanhsinh.Integrate(f, 0, 1, 1e-12)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Value, res.Estimate, res.Level)
package tanhsinh
