// SPDX-License-Identifier: MIT

package history

// Ring is a bounded FIFO of values keyed by contiguous step numbers.
// It holds the steps [first, first+Len()) in a fixed arena; pushing past
// capacity evicts the oldest step. Ring is not safe for concurrent use.
type Ring[T any] struct {
	arena []T
	head  int    // arena index of the oldest entry
	size  int    // live entries
	first uint32 // step of the oldest entry
}

// NewRing returns an empty ring holding at most capacity entries (min 1).
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{arena: make([]T, capacity)}
}

// Cap returns the capacity.
func (r *Ring[T]) Cap() int { return len(r.arena) }

// Len returns the number of live entries.
func (r *Ring[T]) Len() int { return r.size }

// Range returns the first and last step held, or ok=false when empty.
func (r *Ring[T]) Range() (first, last uint32, ok bool) {
	if r.size == 0 {
		return 0, 0, false
	}
	return r.first, r.first + uint32(r.size) - 1, true
}

func (r *Ring[T]) slot(step uint32) int {
	return (r.head + int(step-r.first)) % len(r.arena)
}

func (r *Ring[T]) holds(step uint32) bool {
	return r.size > 0 && step >= r.first && step-r.first < uint32(r.size)
}

// Push records v at step.
//
//   - step == last+1: appended, evicting the oldest entry when full.
//   - step already held: overwritten in place.
//   - anything else: the ring restarts with step as its only entry.
func (r *Ring[T]) Push(step uint32, v T) {
	switch {
	case r.holds(step):
		r.arena[r.slot(step)] = v
	case r.size > 0 && step == r.first+uint32(r.size):
		if r.size == len(r.arena) {
			var zero T
			r.arena[r.head] = zero
			r.head = (r.head + 1) % len(r.arena)
			r.first++
			r.size--
		}
		r.arena[r.slot(step)] = v
		r.size++
	default:
		r.Clear()
		r.first = step
		r.arena[0] = v
		r.size = 1
	}
}

// Get returns the value at step, if held.
func (r *Ring[T]) Get(step uint32) (T, bool) {
	if !r.holds(step) {
		var zero T
		return zero, false
	}
	return r.arena[r.slot(step)], true
}

// Latest returns the newest entry and its step.
func (r *Ring[T]) Latest() (uint32, T, bool) {
	if r.size == 0 {
		var zero T
		return 0, zero, false
	}
	last := r.first + uint32(r.size) - 1
	return last, r.arena[r.slot(last)], true
}

// Clear drops every entry and releases references held by the arena.
func (r *Ring[T]) Clear() {
	var zero T
	for idx := range r.arena {
		r.arena[idx] = zero
	}
	r.head, r.size, r.first = 0, 0, 0
}
