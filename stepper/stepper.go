// SPDX-License-Identifier: MIT

package stepper

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/fwstep/fwstate"
	"github.com/katalvlaran/fwstep/history"
	"github.com/katalvlaran/fwstep/matrix"
	"github.com/katalvlaran/fwstep/paths"
	"github.com/katalvlaran/fwstep/program"
)

// Stepper owns the published state of one visualization session.
type Stepper struct {
	opts Options
	log  logrus.FieldLogger

	mu          sync.Mutex
	adj         *matrix.Dense
	origin      fwstate.State
	current     fwstate.State
	ring        *history.Ring[fwstate.State]
	checkpoints *history.Checkpoints
	interval    uint32
	estimate    int
	ready       bool
	unencodable bool
	worker      *worker

	generation atomic.Value // uuid.UUID of the latest Initialize
}

// New returns an uninitialized Stepper.
func New(opts ...Option) *Stepper {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	st := &Stepper{
		opts:        o,
		log:         o.Logger,
		checkpoints: history.NewCheckpoints(),
		ring:        history.NewRing[fwstate.State](1),
	}
	st.generation.Store(uuid.Nil)
	return st
}

// Interval returns max(1, ceil(estimate/maxCheckpoints)) for a graph of n vertices.
func Interval(n, maxCheckpoints int) uint32 {
	if maxCheckpoints < 1 {
		maxCheckpoints = 1
	}
	est := program.EstimateSteps(n)
	iv := (est + maxCheckpoints - 1) / maxCheckpoints
	if iv < 1 {
		iv = 1
	}
	return uint32(iv)
}

// Initialize starts a new session over adj: step 0, empty ring, only
// checkpoint 0 stored. A running worker of the previous session is stopped
// first; a new one is launched when enabled.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrInvalidWeight.
func (st *Stepper) Initialize(adj *matrix.Dense) error {
	origin, err := program.Initial(adj)
	if err != nil {
		return err
	}

	st.mu.Lock()
	st.stopWorkerLocked()

	gen := uuid.New()
	st.generation.Store(gen)
	st.adj = adj.CloneDense()
	st.origin = origin
	st.current = origin
	st.estimate = program.EstimateSteps(origin.N())
	st.interval = Interval(origin.N(), st.opts.MaxCheckpoints)
	st.ring = history.NewRing[fwstate.State](int(st.interval))
	st.ring.Push(0, origin)
	st.checkpoints.Clear()
	st.unencodable = false
	st.ready = true
	st.storeCheckpointLocked(origin)

	log := st.log.WithFields(logrus.Fields{
		"generation": gen.String(),
		"V":          origin.N(),
		"interval":   st.interval,
		"estimate":   st.estimate,
	})
	if st.opts.Worker && !st.unencodable {
		st.worker = st.startWorker(gen, st.adj, origin, st.interval, st.checkpoints, log)
	}
	st.mu.Unlock()

	log.Info("stepper initialized")
	st.notify(origin)
	return nil
}

// storeCheckpointLocked encodes s into the checkpoint store. States that do
// not fit the packed layout disable checkpointing for the session; replay
// then starts from the in-memory origin.
func (st *Stepper) storeCheckpointLocked(s fwstate.State) {
	if st.unencodable {
		return
	}
	buf, err := fwstate.Encode(s)
	if err != nil {
		st.unencodable = true
		st.log.WithError(err).WithField("step", s.Step()).Warn("state not encodable, checkpoints disabled")
		return
	}
	st.checkpoints.Put(s.Step(), buf)
	if s.Done() {
		st.checkpoints.Complete(s.Step())
	}
}

func (st *Stepper) isBoundary(s fwstate.State) bool {
	return s.Step()%st.interval == 0 || s.Done()
}

// advanceLocked derives the successor of s, records it in the ring and
// stores a checkpoint on interval boundaries.
func (st *Stepper) advanceLocked(s fwstate.State) (fwstate.State, error) {
	next, err := program.Step(s, st.adj)
	if err != nil {
		return s, err
	}
	st.ring.Push(s.Step(), s)
	st.ring.Push(next.Step(), next)
	if st.isBoundary(next) {
		st.storeCheckpointLocked(next)
	}
	return next, nil
}

// StepForward publishes the next state: from the ring when it is already
// known, else by executing the current line.
//
// Errors: ErrNotInitialized, ErrAlreadyDone (state unchanged).
func (st *Stepper) StepForward() (fwstate.State, error) {
	st.mu.Lock()
	if !st.ready {
		st.mu.Unlock()
		return fwstate.State{}, ErrNotInitialized
	}
	if st.current.Done() {
		cur := st.current
		st.mu.Unlock()
		return cur, ErrAlreadyDone
	}
	next, ok := st.ring.Get(st.current.Step() + 1)
	if !ok {
		var err error
		if next, err = st.advanceLocked(st.current); err != nil {
			st.mu.Unlock()
			return st.current, err
		}
	}
	st.current = next
	st.mu.Unlock()

	st.notify(next)
	return next, nil
}

// StepBackward publishes the previous state: from the ring when held, else
// by replaying from the nearest checkpoint.
//
// Errors: ErrNotInitialized, ErrNoHistory at step 0.
func (st *Stepper) StepBackward() (fwstate.State, error) {
	st.mu.Lock()
	if !st.ready {
		st.mu.Unlock()
		return fwstate.State{}, ErrNotInitialized
	}
	if st.current.Step() == 0 {
		cur := st.current
		st.mu.Unlock()
		return cur, ErrNoHistory
	}
	target := st.current.Step() - 1
	prev, ok := st.ring.Get(target)
	if !ok {
		prev = st.replayLocked(target)
	}
	st.current = prev
	st.mu.Unlock()

	st.notify(prev)
	return prev, nil
}

// Seek publishes the state at step, clamped to [0, last]. Before the final
// step is known a target past the end lands on the done state.
//
// Errors: ErrNotInitialized.
func (st *Stepper) Seek(step int) (fwstate.State, error) {
	st.mu.Lock()
	if !st.ready {
		st.mu.Unlock()
		return fwstate.State{}, ErrNotInitialized
	}
	target := st.clampLocked(step)
	s, ok := st.ring.Get(target)
	if !ok {
		s = st.replayLocked(target)
	}
	st.current = s
	st.mu.Unlock()

	st.log.WithFields(logrus.Fields{"step": s.Step(), "requested": step}).Debug("seek")
	st.notify(s)
	return s, nil
}

func (st *Stepper) clampLocked(step int) uint32 {
	if step <= 0 {
		return 0
	}
	target := uint32(math.MaxUint32)
	if uint64(step) < math.MaxUint32 {
		target = uint32(step)
	}
	if final, ok := st.finalLocked(); ok && target > final {
		return final
	}
	return target
}

func (st *Stepper) finalLocked() (uint32, bool) {
	if final, ok := st.checkpoints.Final(); ok {
		return final, true
	}
	if st.current.Done() {
		return st.current.Step(), true
	}
	return 0, false
}

// replayLocked rebuilds the state at target from the closest known state at
// or before it: a checkpoint, the current state or the newest ring entry.
// Replay stops early at the done state.
func (st *Stepper) replayLocked(target uint32) fwstate.State {
	base := st.origin
	if step, buf, ok := st.checkpoints.Floor(target); ok && step > base.Step() {
		if s, err := fwstate.Decode(buf); err == nil {
			base = s
		} else {
			st.log.WithError(err).WithField("step", step).Warn("discarding corrupt checkpoint")
		}
	}
	if c := st.current; c.Step() <= target && c.Step() > base.Step() {
		base = c
	}
	if last, s, ok := st.ring.Latest(); ok && last <= target && last > base.Step() {
		base = s
	}

	s := base
	st.ring.Push(s.Step(), s)
	for s.Step() < target && !s.Done() {
		next, err := st.advanceLocked(s)
		if err != nil {
			st.log.WithError(err).WithField("step", s.Step()).Error("replay aborted")
			break
		}
		s = next
	}
	return s
}

// Reset republishes the step-0 state and clears the ring. Checkpoints survive.
//
// Errors: ErrNotInitialized.
func (st *Stepper) Reset() (fwstate.State, error) {
	st.mu.Lock()
	if !st.ready {
		st.mu.Unlock()
		return fwstate.State{}, ErrNotInitialized
	}
	origin := st.origin
	if buf, ok := st.checkpoints.Get(0); ok {
		if s, err := fwstate.Decode(buf); err == nil {
			origin = s
		}
	}
	st.ring.Clear()
	st.ring.Push(0, origin)
	st.current = origin
	st.mu.Unlock()

	st.notify(origin)
	return origin, nil
}

// Current returns the published state.
func (st *Stepper) Current() fwstate.State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current
}

// Total returns the exact final step when known (exact=true), else the
// closed-form estimate, raised to the current step when replay has already
// run past it.
func (st *Stepper) Total() (total int, exact bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.totalLocked()
}

func (st *Stepper) totalLocked() (int, bool) {
	if final, ok := st.finalLocked(); ok {
		return int(final), true
	}
	total := st.estimate
	if cur := int(st.current.Step()); cur >= total {
		total = cur + 1
	}
	if top, ok := st.checkpoints.Max(); ok && int(top) >= total {
		total = int(top) + 1
	}
	return total, false
}

// Progress returns the position of the published state in percent [0,100].
func (st *Stepper) Progress() float64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.ready {
		return 0
	}
	if st.current.Done() {
		return 100
	}
	total, _ := st.totalLocked()
	return percent(int(st.current.Step()), total)
}

// Buffered returns how far checkpoints reach, in percent [0,100]; 100 once
// the final state has been stored.
func (st *Stepper) Buffered() float64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.ready {
		return 0
	}
	if _, ok := st.checkpoints.Final(); ok {
		return 100
	}
	top, ok := st.checkpoints.Max()
	if !ok {
		return 0
	}
	total, _ := st.totalLocked()
	return percent(int(top), total)
}

func percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(part) * 100 / float64(total)
	return math.Max(0, math.Min(100, p))
}

// StepIndexFor maps a percentage in [0,100] onto a step index of the
// current Total.
func (st *Stepper) StepIndexFor(pct float64) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	total, _ := st.totalLocked()
	pct = math.Max(0, math.Min(100, pct))
	return int(math.Round(pct / 100 * float64(total)))
}

// SeekPercent seeks to StepIndexFor(pct).
func (st *Stepper) SeekPercent(pct float64) (fwstate.State, error) {
	return st.Seek(st.StepIndexFor(pct))
}

// Interval returns the checkpoint interval of the current session (0 before Initialize).
func (st *Stepper) Interval() uint32 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.interval
}

// Generation returns the token of the current session.
func (st *Stepper) Generation() uuid.UUID {
	return st.generation.Load().(uuid.UUID)
}

// CheckpointCount returns the number of stored checkpoints.
func (st *Stepper) CheckpointCount() int { return st.checkpoints.Len() }

// ReconstructPath returns the shortest path u → v of the finished run.
//
// Errors: ErrNotInitialized, ErrNotDone, paths.ErrOutOfRange.
func (st *Stepper) ReconstructPath(u, v int) ([]int, error) {
	st.mu.Lock()
	ready, cur := st.ready, st.current
	st.mu.Unlock()

	if !ready {
		return nil, ErrNotInitialized
	}
	if !cur.Done() {
		return nil, ErrNotDone
	}
	return paths.Reconstruct(cur.Next(), cur.N(), u, v)
}

// Close stops the worker and reports its failure, if any. The Stepper stays
// usable for synchronous stepping.
func (st *Stepper) Close() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	var result *multierror.Error
	if err := st.stopWorkerLocked(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (st *Stepper) notify(s fwstate.State) {
	if st.opts.Observer != nil {
		st.opts.Observer(s)
	}
}
