// SPDX-License-Identifier: MIT

package catalog

import "errors"

var (
	// ErrUnknownEntry indicates a name that is not in the catalog.
	ErrUnknownEntry = errors.New("catalog: unknown entry")

	// ErrNoArbitrary indicates an entry that has no *big.Float form.
	ErrNoArbitrary = errors.New("catalog: entry has no arbitrary-precision form")

	// ErrBadExact indicates an exact value that does not parse.
	ErrBadExact = errors.New("catalog: malformed exact value")
)
