// SPDX-License-Identifier: MIT

// Package stepper is the history engine behind the step-by-step
// Floyd–Warshall debugger: the only component callers drive directly.
//
// What:
//
//   - StepForward, StepBackward, Seek and Reset move one published state
//     along the program's timeline.
//   - A Ring of recent states (capacity = checkpoint interval) makes small
//     moves O(1); older states are rebuilt by replaying from the nearest
//     checkpoint at or before the target.
//   - Checkpoints are encoded states (package fwstate) stored every interval
//     steps, by interactive stepping and by an optional background worker
//     that runs the whole program ahead of the user.
//
// Sizing:
//
//	interval = max(1, ceil(program.EstimateSteps(V) / maxCheckpoints))
//
// so the worst replay after a ring miss is one interval long.
//
// Worker:
//
// Initialize starts a producer/consumer pair under an errgroup. The producer
// runs the program on its own copy of the initial state and sends an encoded
// checkpoint every interval plus the final state; the consumer files them in
// the checkpoint store. Every message carries the generation (a UUID) of the
// Initialize call that launched it; messages from a superseded generation are
// dropped. A failing or panicking worker only costs precomputation: stepping
// falls back to synchronous replay.
//
// Concurrency: every method is safe for concurrent use. The observer passed
// with WithObserver runs after the internal lock is released.
package stepper
