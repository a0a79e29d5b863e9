// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Canonical dense APSP (Floyd–Warshall) with deterministic loop order.
//   - Reference closure (distances + next hops) used to cross-check the
//     line-by-line program in package program.
//
// Contract:
//   - Square matrix; +Inf means “no path”; diagonal must be 0 before calling FloydWarshall.
//   - Adjacency input for APSP: 0 = no edge, w>0 = edge weight.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping.
const (
	opFloydWarshall = "FloydWarshall"
	opAPSP          = "APSP"
)

// NoHop marks an absent next hop ("no path") in a flat next-hop table.
const NoHop = -1

// matrixErrorf wraps an underlying error with the given tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// floydWarshallInPlace runs APSP closure on a square *Dense in-place.
// When next is non-nil it is updated with the first hop of every improved path.
//
// Loop order is fixed (k → i → j); strict improvement only, so ties keep the
// earlier path. Time: O(n^3); Extra space: O(1).
func floydWarshallInPlace(d *Dense, next []int) {
	n := d.r
	var (
		k, i, j      int
		baseK, baseI int
		ik, kj, cand float64
	)
	data := d.data

	for k = 0; k < n; k++ {
		baseK = k * n
		for i = 0; i < n; i++ {
			ik = data[i*n+k]
			if math.IsInf(ik, 1) { // i cannot reach k
				continue
			}
			baseI = i * n
			for j = 0; j < n; j++ {
				kj = data[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < data[baseI+j] {
					data[baseI+j] = cand
					if next != nil {
						next[baseI+j] = next[baseI+k]
					}
				}
			}
		}
	}
}

// FloydWarshall computes all-pairs shortest paths in-place on m.
//
// Contract:
//   - m must be a square *Dense built with WithAllowInfDistances.
//   - +Inf denotes “no edge” off-diagonal; the diagonal MUST be 0.
//
// Complexity: Time O(n^3), Extra space O(1).
func FloydWarshall(m *Dense) error {
	if err := ValidateSquare(m); err != nil {
		return matrixErrorf(opFloydWarshall, err)
	}
	floydWarshallInPlace(m, nil)

	return nil
}

// APSP builds the distance matrix and the flat next-hop table from an
// adjacency matrix, then closes them with Floyd–Warshall.
//
// Initialisation mirrors the textbook pseudocode:
//   - dist[v][v] = 0, next[v][v] = v
//   - edge u→v (adj != 0): dist = adj[u][v], next = v
//   - otherwise: dist = +Inf, next = NoHop
//
// Returns dist (n×n, +Inf allowed) and next (len n*n, row-major).
// Errors: ErrNilMatrix, ErrNonSquare, ErrInvalidWeight.
// Complexity: Time O(n^3), Space O(n^2).
func APSP(adj Matrix) (*Dense, []int, error) {
	if err := ValidateAdjacency(adj); err != nil {
		return nil, nil, matrixErrorf(opAPSP, err)
	}
	n := adj.Rows()
	dist, err := NewPreparedDense(n, n, WithAllowInfDistances())
	if err != nil {
		return nil, nil, matrixErrorf(opAPSP, err)
	}
	next := make([]int, n*n)

	var (
		u, v int
		w    float64
	)
	for u = 0; u < n; u++ {
		for v = 0; v < n; v++ {
			switch w, _ = adj.At(u, v); {
			case u == v:
				dist.data[u*n+v] = 0
				next[u*n+v] = v
			case w != 0:
				dist.data[u*n+v] = w
				next[u*n+v] = v
			default:
				dist.data[u*n+v] = math.Inf(1)
				next[u*n+v] = NoHop
			}
		}
	}
	floydWarshallInPlace(dist, next)

	return dist, next, nil
}
