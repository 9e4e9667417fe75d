// SPDX-License-Identifier: MIT

package catalog_test

import (
	"fmt"

	"github.com/katalvlaran/dequad/catalog"
	"github.com/katalvlaran/dequad/precision"
)

// ExampleEntry_Run integrates Bailey's fifth example in float64.
func ExampleEntry_Run() {
	e, err := catalog.Lookup("bailey5")
	if err != nil {
		fmt.Println(err)
		return
	}
	out, err := e.Run(catalog.RunConfig{Mode: precision.Fixed, Tol: 1e-12})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(e.Formula, out.Status, out.Within(1e-12))
	// Output: √x·log x converged true
}
