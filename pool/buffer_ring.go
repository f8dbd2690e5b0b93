// File: pool/buffer_ring.go
// Author: momentics <momentics@gmail.com>
//
// BufferRing adapts the concurrency ring buffer as api.Ring. ioasync keeps
// a *BufferRing[*AsyncOp] (opRing) to recycle released op descriptors on
// the hot single-segment I/O path.

package pool

import (
	"github.com/momentics/lune/api"
	"github.com/momentics/lune/core/concurrency"
)

// BufferRing satisfies api.Ring over the MPMC ring; capacity rounds up to a
// power of two.
type BufferRing[T any] struct {
	*concurrency.RingBuffer[T]
}

var _ api.Ring[any] = (*BufferRing[any])(nil)

// NewRingBuffer creates a ring holding at least capacity items.
func NewRingBuffer[T any](capacity uint64) *BufferRing[T] {
	return &BufferRing[T]{RingBuffer: concurrency.NewRingBuffer[T](capacity)}
}
