// Package matrix offers the dense row-major matrix used for adjacency and
// distance tables, plus the reference all-pairs closure.
//
// The matrix package provides:
//
//   - Dense: bounds-checked row-major float64 storage with a numeric policy
//     (finite-only by default, +Inf allowed for distance buffers).
//   - Validators: ValidateSquare, ValidateSymmetric, ValidateAdjacency.
//   - FloydWarshall / APSP: deterministic k→i→j closure with next-hop tracking.
//   - Reshape2D / Flatten / Index: 1D <-> 2D interchange for presentation layers.
//
// Matrices are best for dense or small graphs where O(V²) memory is acceptable.
package matrix
