// SPDX-License-Identifier: MIT

package tilemap

import (
	"errors"
	"fmt"
)

// Sentinel errors for tilemap operations.
var (
	// ErrMalformedGrid is returned (wrapped) for every map Parse rejects.
	ErrMalformedGrid = errors.New("tilemap: malformed grid")
	// ErrEmptyGrid indicates the map has no rows or no columns.
	ErrEmptyGrid = errors.New("tilemap: map must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("tilemap: all rows must have the same length")
	// ErrUnknownSymbol indicates a rune that is neither open nor wall in strict mode.
	ErrUnknownSymbol = errors.New("tilemap: unknown tile symbol")
	// ErrOutOfBounds indicates a cell or vertex outside the grid.
	ErrOutOfBounds = errors.New("tilemap: cell out of bounds")
)

// malformed joins the umbrella sentinel with the detail so callers can match either.
func malformed(detail error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrMalformedGrid, detail, fmt.Sprintf(format, args...))
}
