// File: pool/batch.go
// Author: momentics <momentics@gmail.com>
//
// BufferBatch groups api.Buffer segments for a single multi-segment
// operation. ioasync.NewScatterGatherOp builds its IoVec list through one
// and parks the batch in the op's HoldAlive field so the backing arrays
// survive until completion. Not safe for concurrent use; a batch belongs
// to exactly one in-flight op.

package pool

import "github.com/momentics/lune/api"

// BufferBatch is an append-only view over pooled buffers.
type BufferBatch struct {
	buffers []api.Buffer
}

// NewBufferBatch returns a batch preallocated for capacity segments.
func NewBufferBatch(capacity int) *BufferBatch {
	return &BufferBatch{buffers: make([]api.Buffer, 0, capacity)}
}

// Append adds one segment to the tail of the batch.
func (b *BufferBatch) Append(buf api.Buffer) {
	b.buffers = append(b.buffers, buf)
}

// Len reports the number of segments held.
func (b *BufferBatch) Len() int {
	return len(b.buffers)
}

// Get returns the segment at idx.
func (b *BufferBatch) Get(idx int) api.Buffer {
	return b.buffers[idx]
}

// Split divides the batch at idx without copying, so a partially
// transferred scatter/gather op can retire the done prefix and requeue the
// remainder.
func (b *BufferBatch) Split(idx int) (done, rest *BufferBatch) {
	return &BufferBatch{buffers: b.buffers[:idx:idx]}, &BufferBatch{buffers: b.buffers[idx:]}
}

// ReleaseAll returns every held segment to its pool and empties the batch.
func (b *BufferBatch) ReleaseAll() {
	for _, buf := range b.buffers {
		buf.Release()
	}
	b.buffers = b.buffers[:0]
}
