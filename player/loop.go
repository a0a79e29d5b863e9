// SPDX-License-Identifier: MIT

package player

import (
	"context"
	"errors"
	"time"

	"github.com/katalvlaran/fwstep/stepper"
)

func (p *Player) startLoopLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	p.stopLoop = cancel
	p.loops.Add(1)
	go p.play(ctx)
}

func (p *Player) stopLoopLocked() {
	if p.stopLoop != nil {
		p.stopLoop()
		p.stopLoop = nil
	}
}

// play steps once per tick until tick reports that the loop is over.
func (p *Player) play(ctx context.Context) {
	defer p.loops.Done()

	for p.tick(ctx) {
		timer := time.NewTimer(p.Delay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// tick performs one step while the loop is still the live one and the
// player is Running. It reports whether the loop should continue.
func (p *Player) tick(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ctx.Err() != nil || p.status != Running {
		return false
	}

	s, err := p.st.StepForward()
	switch {
	case errors.Is(err, stepper.ErrAlreadyDone):
		_ = p.transitionLocked(End)
		return false
	case err != nil:
		p.log.WithError(err).Error("play loop stopped")
		_ = p.transitionLocked(Paused)
		return false
	case s.Done():
		_ = p.transitionLocked(End)
		return false
	}

	if _, hit := p.breakpoints[s.Line()]; hit {
		p.log.WithField("line", s.Line()).WithField("step", s.Step()).Info("breakpoint")
		_ = p.transitionLocked(Paused)
		return false
	}
	return true
}
