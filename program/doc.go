// SPDX-License-Identifier: MIT

// Package program encodes Floyd–Warshall as a table of numbered source lines,
// each a pure transition from one fwstate.State to the next.
//
// What:
//
//   - Line constants address the pseudocode listing returned by Source.
//     Gaps (11, 14, 21) are non-executable structural lines.
//   - Step executes exactly one line: it applies the line's effect, selects
//     the next line (default: current+1) and increments the step counter.
//   - Run drives Step to completion for workers and tests.
//
// Execution model:
//
//	1        no-op header
//	2, 3     dist := adjacency, next := all null
//	4..13    u/v initialisation sweep (self, edge, no edge)
//	15..20   k/i/j relaxation (strict '>', next[i][j] := next[i][k])
//	22       done := true, then LineHalt
//
// Loop registers live in the state, never on the Go call stack, so any state
// can be encoded, shipped to another goroutine and resumed.
//
// Step count:
//
// For V vertices, E directed off-diagonal edges and R relaxations the
// program takes exactly 2V³ + 7V² + 3V + 6 − E + 2R steps. EstimateSteps
// drops the data-dependent terms.
//
// Errors:
//
//   - ErrAlreadyDone - Step on a finished state; the state is returned unchanged.
//   - ErrShapeMismatch - adjacency is nil, not square or not V×V.
//
// A register outside [0,V) or an unknown line can only come from a broken
// transition table and panics.
package program
