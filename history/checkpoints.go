// SPDX-License-Identifier: MIT

package history

import (
	"sync"

	"github.com/google/btree"
)

// btreeDegree is the branching factor of the step index.
const btreeDegree = 16

// entry is one checkpoint in the step index.
type entry struct {
	step uint32
	buf  []byte
}

// Less orders entries by step.
func (e entry) Less(than btree.Item) bool { return e.step < than.(entry).step }

// Checkpoints is an append-only store of encoded states keyed by step.
// All methods are safe for concurrent use; stored buffers are never mutated
// and are handed out without copying, so callers must treat them as read-only.
type Checkpoints struct {
	mu    sync.RWMutex
	index *btree.BTree
	final uint32
	done  bool
}

// NewCheckpoints returns an empty store.
func NewCheckpoints() *Checkpoints {
	return &Checkpoints{index: btree.New(btreeDegree)}
}

// Put records buf at step. The first write for a step wins; later writes for
// the same step are ignored and reported as false.
func (c *Checkpoints) Put(step uint32, buf []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index.Has(entry{step: step}) {
		return false
	}
	c.index.ReplaceOrInsert(entry{step: step, buf: buf})
	return true
}

// Get returns the checkpoint recorded at exactly step.
func (c *Checkpoints) Get(step uint32) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it := c.index.Get(entry{step: step})
	if it == nil {
		return nil, false
	}
	return it.(entry).buf, true
}

// Floor returns the checkpoint with the greatest step <= step.
func (c *Checkpoints) Floor(step uint32) (uint32, []byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var (
		found entry
		ok    bool
	)
	c.index.DescendLessOrEqual(entry{step: step}, func(it btree.Item) bool {
		found, ok = it.(entry), true
		return false
	})
	return found.step, found.buf, ok
}

// Max returns the highest recorded step.
func (c *Checkpoints) Max() (uint32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it := c.index.Max()
	if it == nil {
		return 0, false
	}
	return it.(entry).step, true
}

// Len returns the number of checkpoints.
func (c *Checkpoints) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.Len()
}

// Complete records the step of the final (done) state once it is known.
func (c *Checkpoints) Complete(finalStep uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.final, c.done = finalStep, true
}

// Final returns the step of the final state, if Complete has been called.
func (c *Checkpoints) Final() (uint32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.final, c.done
}

// Clear drops every checkpoint and the completion mark.
func (c *Checkpoints) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = btree.New(btreeDegree)
	c.final, c.done = 0, false
}
