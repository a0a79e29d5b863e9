// SPDX-License-Identifier: MIT

// Package history provides the two retention structures behind the stepper:
//
//   - Ring: a bounded FIFO of recent states keyed by contiguous step
//     numbers (arena + head index, O(1) push and lookup).
//   - Checkpoints: a sparse, append-only map from step to encoded state,
//     written by the interactive stepper and the background worker alike and
//     read concurrently. A B-tree index answers "greatest step <= target"
//     in O(log n).
//
// Neither structure knows about the algorithm; they store whatever the
// stepper hands them.
package history
