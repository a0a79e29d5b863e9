// SPDX-License-Identifier: MIT

package stepper

import (
	"errors"

	"github.com/katalvlaran/fwstep/program"
)

var (
	// ErrAlreadyDone is returned by StepForward once the program has finished.
	// The published state is unchanged.
	ErrAlreadyDone = program.ErrAlreadyDone

	// ErrNoHistory is returned by StepBackward at step 0.
	ErrNoHistory = errors.New("stepper: no earlier state")

	// ErrNotDone is returned by ReconstructPath before the program has finished.
	ErrNotDone = errors.New("stepper: algorithm not finished")

	// ErrNotInitialized is returned by every operation before Initialize.
	ErrNotInitialized = errors.New("stepper: not initialized")

	// ErrWorkerPanic wraps a panic recovered in the background worker.
	ErrWorkerPanic = errors.New("stepper: worker panicked")
)
