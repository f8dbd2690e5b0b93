// File: api/ring.go
// Author: momentics <momentics@gmail.com>
//
// Bounded MPMC ring contract backing descriptor and buffer recycling.

package api

// Ring is a bounded, non-blocking MPMC queue.
type Ring[T any] interface {
	// Enqueue adds an item; false when full.
	Enqueue(item T) bool
	// Dequeue removes the oldest item; false when empty.
	Dequeue() (T, bool)
	// Len returns the current number of items.
	Len() int
	// Cap returns the fixed capacity.
	Cap() int
}
