// SPDX-License-Identifier: MIT

package player

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fwstep/config"
	"github.com/katalvlaran/fwstep/fwstate"
	"github.com/katalvlaran/fwstep/program"
	"github.com/katalvlaran/fwstep/stepper"
)

// tickBase is the delay between play-loop ticks at speed 0.
const tickBase = 500 * time.Millisecond

// Player is the control surface over one Stepper. It is safe for concurrent use.
type Player struct {
	st       *stepper.Stepper
	log      logrus.FieldLogger
	observer func(from, to Status)

	mu          sync.Mutex
	status      Status
	speed       int
	breakpoints map[program.Line]struct{}
	stopLoop    context.CancelFunc
	closed      bool

	loops sync.WaitGroup
}

// New returns a Player in status Start over st. st must be initialized
// before the first command.
func New(st *stepper.Stepper, opts ...Option) *Player {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Player{
		st:          st,
		log:         o.Logger,
		observer:    o.Observer,
		speed:       o.Speed,
		breakpoints: make(map[program.Line]struct{}),
	}
}

// Status returns the current status.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Transition moves the player to status to. Entering Running starts the
// play loop, leaving it stops the loop.
//
// Errors: ErrInvalidTransition, ErrClosed.
func (p *Player) Transition(to Status) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transitionLocked(to)
}

func (p *Player) transitionLocked(to Status) error {
	from := p.status
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, from, to)
	}
	if to == Running && p.closed {
		return ErrClosed
	}
	p.status = to
	if from == Running && to != Running {
		p.stopLoopLocked()
	}
	if to == Running {
		p.startLoopLocked()
	}

	p.log.WithFields(logrus.Fields{"from": from.String(), "to": to.String()}).Debug("transition")
	if p.observer != nil {
		p.observer(from, to)
	}
	return nil
}

func disabled(cmd string, s Status) error {
	return fmt.Errorf("%s: %w: player is %s", cmd, ErrInvalidTransition, s)
}

// Reset returns to step 0 and status Start.
//
// Errors: ErrInvalidTransition from Start or Seeking, stepper errors.
func (p *Player) Reset() (fwstate.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !CanTransition(p.status, Start) || p.status == Seeking {
		return p.st.Current(), disabled("Reset", p.status)
	}
	s, err := p.st.Reset()
	if err != nil {
		return s, err
	}
	return s, p.transitionLocked(Start)
}

// StepBack publishes the previous state. Reaching step 0 moves to Start;
// stepping back from End moves to Paused.
//
// Errors: ErrInvalidTransition unless Paused or End, stepper errors.
func (p *Player) StepBack() (fwstate.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != Paused && p.status != End {
		return p.st.Current(), disabled("StepBack", p.status)
	}
	s, err := p.st.StepBackward()
	if err != nil {
		return s, err
	}
	switch {
	case s.Step() == 0:
		err = p.transitionLocked(Start)
	case p.status == End:
		err = p.transitionLocked(Paused)
	}
	return s, err
}

// StepForward publishes the next state. Stepping from Start moves to
// Paused; reaching the done state moves to End.
//
// Errors: ErrInvalidTransition unless Start or Paused, stepper errors.
func (p *Player) StepForward() (fwstate.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != Start && p.status != Paused {
		return p.st.Current(), disabled("StepForward", p.status)
	}
	s, err := p.st.StepForward()
	if err != nil {
		return s, err
	}
	if p.status == Start {
		if err := p.transitionLocked(Paused); err != nil {
			return s, err
		}
	}
	if s.Done() {
		return s, p.transitionLocked(End)
	}
	return s, nil
}

// PlayPause starts playback from Start or Paused and pauses it while Running.
//
// Errors: ErrInvalidTransition from End or Seeking, ErrClosed.
func (p *Player) PlayPause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.status {
	case Start, Paused:
		return p.transitionLocked(Running)
	case Running:
		return p.transitionLocked(Paused)
	}
	return disabled("PlayPause", p.status)
}

// Seek enters Seeking and publishes the state at pct percent of the run.
// Seeking stops playback. Call SeekEnd when the scrub is over.
//
// Errors: stepper errors.
func (p *Player) Seek(pct float64) (fwstate.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.transitionLocked(Seeking); err != nil {
		return p.st.Current(), err
	}
	return p.st.SeekPercent(pct)
}

// SeekEnd finishes a scrub at pct: 0 lands on Start, 100 on End (running
// the program to completion), anything else on Paused. A target that turns
// out to be the done state also lands on End. A Player that is not Seeking
// enters Seeking first.
//
// Errors: stepper errors.
func (p *Player) SeekEnd(pct float64) (fwstate.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != Seeking {
		if err := p.transitionLocked(Seeking); err != nil {
			return p.st.Current(), err
		}
	}

	var (
		s   fwstate.State
		err error
	)
	switch {
	case pct <= 0:
		s, err = p.st.Seek(0)
	case pct >= 100:
		s, err = p.st.Seek(math.MaxInt32)
	default:
		s, err = p.st.SeekPercent(pct)
	}
	if err != nil {
		return s, err
	}

	switch {
	case s.Done():
		err = p.transitionLocked(End)
	case s.Step() == 0:
		err = p.transitionLocked(Start)
	default:
		err = p.transitionLocked(Paused)
	}
	return s, err
}

// Speed returns the play speed in [0, 100].
func (p *Player) Speed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// SetSpeed sets the play speed, clamped to [0, 100], and returns the value
// applied. It takes effect from the next tick.
func (p *Player) SetSpeed(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = clampSpeed(n)
	return p.speed
}

// Delay returns the wait between play-loop ticks at the current speed.
func (p *Player) Delay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.delayLocked()
}

func (p *Player) delayLocked() time.Duration {
	return tickBase * time.Duration(config.MaxSpeed-p.speed) / config.MaxSpeed
}

// SetBreakpoint adds (on) or removes a breakpoint on line.
//
// Errors: ErrInvalidLine for lines without a transition.
func (p *Player) SetBreakpoint(line program.Line, on bool) error {
	if !program.IsExecutable(line) {
		return fmt.Errorf("%w: %d", ErrInvalidLine, line)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if on {
		p.breakpoints[line] = struct{}{}
	} else {
		delete(p.breakpoints, line)
	}
	return nil
}

// Breakpoints returns the breakpoint lines in ascending order.
func (p *Player) Breakpoints() []program.Line {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]program.Line, 0, len(p.breakpoints))
	for l := range p.breakpoints {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Close stops the play loop and waits for it. A Running player is left
// Paused. Manual stepping keeps working; playback does not.
func (p *Player) Close() error {
	p.mu.Lock()
	p.closed = true
	if p.status == Running {
		_ = p.transitionLocked(Paused)
	}
	p.mu.Unlock()

	p.loops.Wait()
	return nil
}
