// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - 1D <-> 2D interchange for row-major tables (dist, next) consumed by
//     presentation layers that index [row][col].
//
// Contract:
//   - Reshape2D never aliases: the returned rows are fresh slices.
//   - Index is the single formula for row-major offsets: row*cols + col.

package matrix

// Index returns the row-major offset of (row, col) in a table with cols columns.
func Index(row, col, cols int) int { return row*cols + col }

// Reshape2D splits a row-major flat slice into rows of length cols.
//
// Errors: ErrInvalidDimensions when cols<=0; ErrDimensionMismatch when
// len(flat) is not a multiple of cols.
// Complexity: O(len(flat)).
func Reshape2D[T any](flat []T, cols int) ([][]T, error) {
	if cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(flat)%cols != 0 {
		return nil, matrixErrorf("Reshape2D", ErrDimensionMismatch)
	}
	rows := len(flat) / cols
	out := make([][]T, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]T, cols)
		copy(out[i], flat[i*cols:(i+1)*cols])
	}

	return out, nil
}

// Flatten concatenates rectangular rows into a row-major slice.
//
// Errors: ErrDimensionMismatch for ragged input.
// Complexity: O(rows*cols).
func Flatten[T any](rows [][]T) ([]T, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols := len(rows[0])
	out := make([]T, 0, len(rows)*cols)
	for _, row := range rows {
		if len(row) != cols {
			return nil, matrixErrorf("Flatten", ErrDimensionMismatch)
		}
		out = append(out, row...)
	}

	return out, nil
}
