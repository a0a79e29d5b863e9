// SPDX-License-Identifier: MIT

package player

import "errors"

var (
	// ErrInvalidTransition is returned when the current status does not allow
	// the requested status change or command.
	ErrInvalidTransition = errors.New("player: invalid transition")

	// ErrInvalidLine is returned by SetBreakpoint for lines without a transition.
	ErrInvalidLine = errors.New("player: line is not executable")

	// ErrClosed is returned when starting playback after Close.
	ErrClosed = errors.New("player: closed")
)
