// SPDX-License-Identifier: MIT

// Command dequad runs the tanh-sinh integrator against the built-in
// integrand catalogue.
package main

func main() {
	Execute()
}
