// SPDX-License-Identifier: MIT

package program

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyDone is returned by Step once the done line has executed.
	ErrAlreadyDone = errors.New("program: algorithm already done")

	// ErrShapeMismatch indicates an adjacency matrix that does not match the state.
	ErrShapeMismatch = errors.New("program: adjacency does not match state")
)

// invariantf formats the panic value for a broken transition table.
func invariantf(format string, args ...interface{}) string {
	return fmt.Sprintf("program: invariant violated: "+format, args...)
}
