// File: core/concurrency/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded MPMC ring buffer using per-slot sequence numbers (Vyukov scheme).
// Backs pool.BufferRing's descriptor free-list and, through LockFreeQueue,
// the slab recycler. Implements api.Ring.

package concurrency

import (
	"sync/atomic"

	"github.com/momentics/lune/api"
)

const cacheLinePad = 64

// slot pairs an element with the sequence number gating its hand-off
// between producers and consumers.
type slot[T any] struct {
	seq  atomic.Uint64
	item T
}

// RingBuffer is a bounded, allocation-free MPMC queue. Capacity rounds up
// to a power of two. Construct with NewRingBuffer; the zero value is not
// usable.
type RingBuffer[T any] struct {
	head atomic.Uint64
	_    [cacheLinePad]byte
	tail atomic.Uint64
	_    [cacheLinePad]byte

	mask  uint64
	slots []slot[T]
}

var _ api.Ring[any] = (*RingBuffer[any])(nil)

// NewRingBuffer allocates a ring of at least size slots, rounded up to the
// next power of two (minimum 2).
func NewRingBuffer[T any](size uint64) *RingBuffer[T] {
	n := uint64(2)
	for n < size {
		n <<= 1
	}
	r := &RingBuffer[T]{
		mask:  n - 1,
		slots: make([]slot[T], n),
	}
	for i := range r.slots {
		r.slots[i].seq.Store(uint64(i))
	}
	return r
}

// Enqueue appends item; returns false when the ring is full.
func (r *RingBuffer[T]) Enqueue(item T) bool {
	for {
		tail := r.tail.Load()
		s := &r.slots[tail&r.mask]
		switch diff := int64(s.seq.Load()) - int64(tail); {
		case diff == 0:
			if r.tail.CompareAndSwap(tail, tail+1) {
				s.item = item
				s.seq.Store(tail + 1)
				return true
			}
		case diff < 0:
			return false
		}
		// Another producer claimed the slot; retry.
	}
}

// Dequeue pops the oldest item; ok is false when the ring is empty.
func (r *RingBuffer[T]) Dequeue() (item T, ok bool) {
	for {
		head := r.head.Load()
		s := &r.slots[head&r.mask]
		switch diff := int64(s.seq.Load()) - int64(head+1); {
		case diff == 0:
			if r.head.CompareAndSwap(head, head+1) {
				item = s.item
				var zero T
				s.item = zero
				s.seq.Store(head + r.mask + 1)
				return item, true
			}
		case diff < 0:
			var zero T
			return zero, false
		}
	}
}

// Len returns the current number of queued items.
func (r *RingBuffer[T]) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Cap returns the fixed slot capacity.
func (r *RingBuffer[T]) Cap() int {
	return len(r.slots)
}
