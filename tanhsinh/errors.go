// SPDX-License-Identifier: MIT

package tanhsinh

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the integration entry points.
var (
	// ErrInvalidDomain indicates a ≥ b, a non-finite (or nil) bound, or a
	// non-positive upper bound for the two-sided adapter.
	ErrInvalidDomain = errors.New("tanhsinh: invalid integration domain")

	// ErrInvalidTolerance indicates tol ≤ 0, non-finite or nil. It wraps
	// ErrInvalidDomain so callers that only check the domain still match.
	ErrInvalidTolerance = fmt.Errorf("%w: tolerance must be positive and finite", ErrInvalidDomain)

	// ErrNonConvergence is returned in strict mode, together with the best
	// available result, when MaxLevel is reached above tolerance.
	ErrNonConvergence = errors.New("tanhsinh: tolerance not reached at max level")

	// ErrEvaluation indicates that the integrand (or one of its derivatives)
	// returned a non-finite value.
	ErrEvaluation = errors.New("tanhsinh: integrand returned a non-finite value")

	// ErrBadMaxLevel indicates MaxLevel outside [0, MaxLevelLimit].
	ErrBadMaxLevel = errors.New("tanhsinh: MaxLevel out of range")

	// ErrBadWorkers indicates a negative worker count.
	ErrBadWorkers = errors.New("tanhsinh: Workers must be non-negative")

	// ErrNilIntegrand indicates an Integrand without a value function.
	ErrNilIntegrand = errors.New("tanhsinh: integrand is nil")
)
