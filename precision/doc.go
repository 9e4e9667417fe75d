// SPDX-License-Identifier: MIT

// Package precision supplies the working number type and the elementary
// functions that the tanh-sinh engine runs on.
//
// Two backends satisfy the generic Backend contract:
//
//   - Float64   – IEEE-754 double precision, Neumaier-compensated sums.
//   - BigFloat  – *big.Float carrying a configured number of decimal digits;
//     Exp and Log come from github.com/ALTree/bigfloat, Atan and Pi are
//     evaluated by series at the working precision.
//
// The working precision of arbitrary mode is an explicit value carried by the
// BigFloat backend. For interoperability with integrands that build their own
// constants, a process-wide digits setting is also kept; Acquire raises it for
// the duration of one integration and the returned release func restores the
// previous value:
//
//	release, err := precision.Acquire(50)
//	if err != nil {
//		return err
//	}
//	defer release()
//	c := precision.NewFloat(0.5) // 50-digit *big.Float
package precision
