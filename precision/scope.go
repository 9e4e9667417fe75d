// SPDX-License-Identifier: MIT

package precision

import (
	"fmt"
	"math/big"
	"sync"
)

// InitialDigits is the process-wide decimal precision before any call to
// SetDefaultDigits or Acquire.
const InitialDigits = 30

var (
	scopeMu sync.Mutex
	current = InitialDigits
)

// DefaultDigits returns the process-wide decimal precision.
func DefaultDigits() int {
	scopeMu.Lock()
	defer scopeMu.Unlock()

	return current
}

// SetDefaultDigits replaces the process-wide decimal precision.
// Errors: ErrBadDigits when d is outside [1, MaxDigits].
func SetDefaultDigits(d int) error {
	if d < 1 || d > MaxDigits {
		return fmt.Errorf("%w: %d", ErrBadDigits, d)
	}
	scopeMu.Lock()
	current = d
	scopeMu.Unlock()

	return nil
}

// Acquire sets the process-wide precision to d and returns a func that puts
// the previous value back. The release func is idempotent; callers defer it
// right after a successful Acquire so the setting is restored on every exit
// path, panics included.
//
// Nested scopes restore in LIFO order. Concurrent scopes with different
// digits interleave on the shared setting; engines never read it while
// integrating (they carry an explicit BigFloat backend), so only integrands
// that call NewFloat observe the interleaving.
func Acquire(d int) (release func(), err error) {
	if d < 1 || d > MaxDigits {
		return func() {}, fmt.Errorf("%w: %d", ErrBadDigits, d)
	}
	scopeMu.Lock()
	prev := current
	current = d
	scopeMu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			scopeMu.Lock()
			current = prev
			scopeMu.Unlock()
		})
	}, nil
}

// NewFloat returns v as a *big.Float at the process-wide precision.
func NewFloat(v float64) *big.Float {
	return new(big.Float).SetPrec(PrecFor(DefaultDigits())).SetFloat64(v)
}

// Current returns a BigFloat backend at the process-wide precision.
func Current() BigFloat {
	return MustBigFloat(DefaultDigits())
}
