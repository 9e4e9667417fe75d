// SPDX-License-Identifier: MIT

package catalog

import (
	"math"
	"math/big"
	"strconv"

	"github.com/katalvlaran/dequad/precision"
)

// Bound is an interval endpoint Num/Den, times π when Pi is set. It keeps
// endpoints such as π/2 exact at any working precision.
type Bound struct {
	Num, Den int64
	Pi       bool
}

func whole(n int64) Bound { return Bound{Num: n, Den: 1} }

// Float64 rounds the bound to float64.
func (b Bound) Float64() float64 {
	v := float64(b.Num) / float64(b.Den)
	if b.Pi {
		v *= math.Pi
	}

	return v
}

// Big evaluates the bound under be.
func (b Bound) Big(be precision.BigFloat) *big.Float {
	v := be.Quo(be.FromInt(b.Num), be.FromInt(b.Den))
	if b.Pi {
		v = be.Mul(v, be.Pi())
	}

	return v
}

func (b Bound) String() string {
	num := strconv.FormatInt(b.Num, 10)
	if b.Pi {
		switch b.Num {
		case 1:
			num = "π"
		case -1:
			num = "-π"
		default:
			num += "π"
		}
	}
	if b.Den == 1 {
		return num
	}

	return num + "/" + strconv.FormatInt(b.Den, 10)
}
