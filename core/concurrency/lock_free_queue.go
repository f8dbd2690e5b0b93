// File: core/concurrency/lock_free_queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// LockFreeQueue narrows RingBuffer to the slab recycler's contract: an int
// capacity and non-blocking hand-off of recycled buffers between whichever
// goroutines release and reacquire them.

package concurrency

// LockFreeQueue is a bounded MPMC queue over RingBuffer.
type LockFreeQueue[T any] struct {
	ring *RingBuffer[T]
}

// NewLockFreeQueue creates a queue holding at least capacity items.
func NewLockFreeQueue[T any](capacity int) *LockFreeQueue[T] {
	if capacity < 2 {
		capacity = 2
	}
	return &LockFreeQueue[T]{ring: NewRingBuffer[T](uint64(capacity))}
}

// Enqueue adds val; returns false when the queue is full.
func (q *LockFreeQueue[T]) Enqueue(val T) bool { return q.ring.Enqueue(val) }

// Dequeue pops the oldest item; ok is false when the queue is empty.
func (q *LockFreeQueue[T]) Dequeue() (item T, ok bool) { return q.ring.Dequeue() }
