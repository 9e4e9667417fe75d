// SPDX-License-Identifier: MIT

// Package dequad is a tanh-sinh (double exponential) quadrature library for
// integrals over finite intervals, including integrands with endpoint
// singularities, in float64 or at arbitrary decimal precision.
//
// What is inside?
//
//   - tanhsinh/  – the integrator: Integrate, IntegrateBig, IntegrateLR and the
//     generic IntegrateWith, with derivative-based error estimates
//   - precision/ – the numeric backends (float64 and *big.Float) plus the
//     scoped process-wide digit setting
//   - catalog/   – the Bailey test integrands with exact values
//   - telemetry/ – Prometheus metrics fed by integration hooks
//   - cmd/dequad – a CLI to list, run and bench the catalogue
//
// Quick example:
//
//	f := tanhsinh.Func(func(x float64) float64 { return math.Sqrt(x) * math.Log(x) })
//	res, err := tanhsinh.Integrate(f, 0, 1, 1e-12)
//	// res.Value ≈ -4/9
//
//	go get github.com/katalvlaran/dequad
package dequad

// Version is the release of the library and CLI.
const Version = "0.1.0"
