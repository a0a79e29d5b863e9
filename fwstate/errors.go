// SPDX-License-Identifier: MIT

package fwstate

import "errors"

var (
	// ErrUnencodable indicates a state that does not fit the packed layout
	// (non-integral or oversized distance, too many vertices).
	ErrUnencodable = errors.New("fwstate: state not encodable")

	// ErrCorrupt indicates a buffer that is not a valid packed state.
	ErrCorrupt = errors.New("fwstate: corrupt encoded state")
)
