// SPDX-License-Identifier: MIT

// Package player drives a stepper.Stepper the way the debugger controls do:
// reset, step back, play/pause, step forward, seek and breakpoints.
//
// A Player is a small state machine over Status. Every command checks the
// allowed-transition table first and fails with ErrInvalidTransition when
// the current status forbids it, leaving both the player and the stepper
// untouched.
//
// While Running, a goroutine steps the program once per tick. The delay
// between ticks is 500ms·(1 − speed/100), so speed 100 runs without pause.
// The loop stops on a breakpoint line (status Paused), when the program
// finishes (status End), or when another command leaves Running. A step
// that has started always completes before the status changes.
//
//	st := stepper.New()
//	_ = st.Initialize(adj)
//	p := player.New(st, player.WithSpeed(80))
//	defer p.Close()
//	_ = p.SetBreakpoint(program.LineRelaxDist, true)
//	_ = p.PlayPause()
package player
