// SPDX-License-Identifier: MIT

package stepper

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/fwstep/fwstate"
	"github.com/katalvlaran/fwstep/history"
	"github.com/katalvlaran/fwstep/matrix"
	"github.com/katalvlaran/fwstep/program"
)

// workerQueue is the number of checkpoints in flight between producer and consumer.
const workerQueue = 16

// checkpointMsg is one encoded state sent by the producer. The step is
// embedded in buf, so messages are attributable in any order.
type checkpointMsg struct {
	generation uuid.UUID
	buf        []byte
	final      bool
}

// worker is the handle of one running producer/consumer pair.
type worker struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error // written before done is closed
}

func (st *Stepper) startWorker(
	gen uuid.UUID,
	adj *matrix.Dense,
	origin fwstate.State,
	interval uint32,
	store *history.Checkpoints,
	log logrus.FieldLogger,
) *worker {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	msgs := make(chan checkpointMsg, workerQueue)
	w := &worker{cancel: cancel, done: make(chan struct{})}

	g.Go(func() error { return produce(gctx, gen, adj, origin, interval, msgs) })
	g.Go(func() error { return st.consume(store, msgs) })

	go func() {
		defer close(w.done)
		err := g.Wait()
		switch {
		case err == nil:
			log.WithField("checkpoints", store.Len()).Debug("worker finished")
		case errors.Is(err, context.Canceled):
			log.Debug("worker cancelled")
		case errors.Is(err, fwstate.ErrUnencodable):
			log.WithError(err).Warn("worker stopped, state not encodable")
		default:
			w.err = err
			log.WithError(err).Error("worker failed, falling back to synchronous replay")
		}
	}()
	return w
}

// produce runs the program from origin to completion and sends a checkpoint
// every interval steps plus the final state. It closes out on return.
func produce(
	ctx context.Context,
	gen uuid.UUID,
	adj *matrix.Dense,
	origin fwstate.State,
	interval uint32,
	out chan<- checkpointMsg,
) (err error) {
	defer close(out)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
		}
	}()

	var sendErr error
	_, err = program.Run(ctx, origin, adj, func(s fwstate.State) bool {
		if s.Step()%interval != 0 && !s.Done() {
			return true
		}
		buf, encErr := fwstate.Encode(s)
		if encErr != nil {
			sendErr = encErr
			return false
		}
		select {
		case out <- checkpointMsg{generation: gen, buf: buf, final: s.Done()}:
			return true
		case <-ctx.Done():
			sendErr = ctx.Err()
			return false
		}
	})
	if err == nil {
		err = sendErr
	}
	return err
}

// consume files every message of the current generation into store.
func (st *Stepper) consume(store *history.Checkpoints, in <-chan checkpointMsg) error {
	for msg := range in {
		if _, err := st.accept(store, msg); err != nil {
			return err
		}
	}
	return nil
}

// accept stores msg when it belongs to the current generation and reports
// whether it did.
func (st *Stepper) accept(store *history.Checkpoints, msg checkpointMsg) (bool, error) {
	if msg.generation != st.Generation() {
		return false, nil
	}
	step, err := fwstate.PeekStep(msg.buf)
	if err != nil {
		return false, err
	}
	store.Put(step, msg.buf)
	if msg.final {
		store.Complete(step)
	}
	return true, nil
}

// stopWorkerLocked cancels the running worker, waits for it and returns its
// failure. The consumer never takes st.mu, so waiting under it is safe.
func (st *Stepper) stopWorkerLocked() error {
	w := st.worker
	if w == nil {
		return nil
	}
	st.worker = nil
	w.cancel()
	<-w.done
	return w.err
}
