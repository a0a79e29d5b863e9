// SPDX-License-Identifier: MIT

// Package fwstate holds the complete interpreter state of the step-by-step
// Floyd–Warshall program: program counter, done flag, vertex count, the
// distance and next-hop tables and the five loop registers u, v, k, i, j.
//
// State is an immutable value. Every With* setter returns a new State and
// leaves the receiver untouched; only the table a setter writes is copied,
// so scalar updates cost O(1) and a single cell update costs O(V²).
//
// The packed binary form (MarshalBinary / UnmarshalBinary) is the checkpoint
// wire format between the interactive stepper and its background worker:
//
//	offset  size        field
//	0       u32         step counter
//	4       u8          current line
//	5       u8          flags: bit0 done, bit1 dist present, bit2 next present
//	6       u16         V
//	8       5 × i16     u, v, k, i, j   (-1 = unset)
//	18      V² × i16    dist            (32767 = +Inf)
//	18+2V²  V² × i16    next            (-1 = no path)
//
// All fields are big-endian. Distances must be integral and below the +Inf
// sentinel to be encodable; grid graphs with unit weights always are.
package fwstate
