// SPDX-License-Identifier: MIT

package tanhsinh_test

import (
	"fmt"
	"math"
	"math/big"

	"github.com/katalvlaran/dequad/precision"
	"github.com/katalvlaran/dequad/tanhsinh"
)

// ExampleIntegrate integrates √x·ln x, which has a log singularity at 0.
func ExampleIntegrate() {
	f := tanhsinh.Func(func(x float64) float64 { return math.Sqrt(x) * math.Log(x) })
	res, err := tanhsinh.Integrate(f, 0, 1, 1e-12)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%.12f %v\n", res.Value, res.Converged())
	// Output: -0.444444444444 true
}

// ExampleIntegrateLR splits √(x/(1-x²)) at 1/2; the right half is written in
// terms of the distance s = 1 - x.
func ExampleIntegrateLR() {
	left := tanhsinh.Func(func(s float64) float64 { return math.Sqrt(s / (1 - s*s)) })
	right := tanhsinh.Func(func(s float64) float64 { return math.Sqrt((1 - s) / (2*s - s*s)) })
	res, err := tanhsinh.IntegrateLR(left, right, 1, 1e-12)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%.10f\n", res.Value)
	// Output: 1.1981402347
}

// ExampleIntegrateBig integrates eˣ over [0, 1] with 40 digits.
func ExampleIntegrateBig() {
	exp := func(x *big.Float) *big.Float { return precision.Current().Exp(x) }
	f := tanhsinh.Derivatives(exp, exp, exp)
	res, err := tanhsinh.IntegrateBig(f, big.NewFloat(0), big.NewFloat(1), big.NewFloat(1e-30),
		tanhsinh.WithDigits(40))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Value.Text('f', 25))
	// Output: 1.7182818284590452353602875
}
