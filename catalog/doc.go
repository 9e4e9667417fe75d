// SPDX-License-Identifier: MIT

// Package catalog holds named test integrands with exact values: a few
// polynomial sanity cases and the fourteen examples of Bailey, Jeyabalan and
// Li, "A comparison of three high-precision quadrature schemes" (2005).
//
// Every entry has a float64 form; entries built only from +, -, ·, /, √, exp,
// log and atan also have a *big.Float form for arbitrary precision. Entries
// 7, 10 and 12 are singular at both ends and are integrated with
// tanhsinh.IntegrateLR.
//
//	e, _ := catalog.Lookup("bailey5")
//	out, err := e.Run(catalog.RunConfig{Mode: precision.Fixed, Tol: 1e-12})
package catalog
