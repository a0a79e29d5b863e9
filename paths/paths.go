// SPDX-License-Identifier: MIT

// Package paths reconstructs concrete vertex sequences from a row-major
// Floyd–Warshall next-hop table.
//
// Reconstruct is only meaningful once the closure is complete; on a partial
// table it may hit a null hop or a loop, reported as ErrIncomplete or
// ErrCycle rather than spinning forever.
package paths

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fwstep/matrix"
)

// NoVertex marks an absent next hop.
const NoVertex = matrix.NoHop

var (
	// ErrOutOfRange indicates an endpoint outside [0,V) or a table that is not V×V.
	ErrOutOfRange = errors.New("paths: vertex or table out of range")

	// ErrIncomplete indicates a null or invalid hop in the middle of a walk.
	ErrIncomplete = errors.New("paths: next-hop chain is incomplete")

	// ErrCycle indicates a walk longer than V hops.
	ErrCycle = errors.New("paths: next-hop chain does not terminate")
)

// Reconstruct returns the vertices of the path u → … → v recorded in next.
//
// The result is empty (not nil) when next[u][v] is NoVertex, and [u] when
// u == v and next[u][u] == u.
// Errors: ErrOutOfRange, ErrIncomplete, ErrCycle.
// Complexity: O(V) time and memory.
func Reconstruct(next []int, n, u, v int) ([]int, error) {
	if n <= 0 || len(next) != n*n {
		return nil, fmt.Errorf("%w: table of %d cells for V=%d", ErrOutOfRange, len(next), n)
	}
	if u < 0 || u >= n || v < 0 || v >= n {
		return nil, fmt.Errorf("%w: (%d,%d) with V=%d", ErrOutOfRange, u, v, n)
	}
	if next[matrix.Index(u, v, n)] == NoVertex {
		return []int{}, nil
	}

	path := []int{u}
	for cur := u; cur != v; {
		cur = next[matrix.Index(cur, v, n)]
		if cur == NoVertex || cur < 0 || cur >= n {
			return nil, fmt.Errorf("%w: hop %d towards %d", ErrIncomplete, cur, v)
		}
		path = append(path, cur)
		if len(path) > n {
			return nil, fmt.Errorf("%w: %d → %d exceeds %d hops", ErrCycle, u, v, n)
		}
	}

	return path, nil
}
