// SPDX-License-Identifier: MIT

package precision

import "errors"

var (
	// ErrBadDigits is returned when a decimal precision is outside [1, MaxDigits].
	ErrBadDigits = errors.New("precision: digits out of range")

	// ErrUnknownMode is returned by ParseMode for an unrecognised mode name.
	ErrUnknownMode = errors.New("precision: unknown mode")
)
