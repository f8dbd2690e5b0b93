// File: ioasync/asyncop.go
// Author: momentics <momentics@gmail.com>
//
// AsyncOp is the descriptor passed to a File's BeginRead/BeginWrite. It
// carries the scatter/gather list, the logical offset, optional buffer and
// hold-alive references, and the completion callback/executor. Exactly one
// completion call is guaranteed per op; Release is the only path that frees
// it.

package ioasync

import (
	"sync/atomic"

	"github.com/momentics/lune/api"
	"github.com/momentics/lune/pool"
)

// AppendOffset is the sentinel meaning "append to end of file".
const AppendOffset = ^uint64(0)

// IoVec is one segment of a scatter/gather list.
type IoVec struct {
	Data []byte
}

// Executor posts a completed op's callback for later execution, matching
// future.Executor's shape so exec's executors satisfy it directly.
type Executor interface {
	Submit(task func()) error
}

var (
	allocCount   atomic.Int64
	releaseCount atomic.Int64
)

// opRing recycles released *AsyncOp descriptors so the common single-segment
// path avoids a fresh allocation per op on repeat I/O. Best-effort: a full
// ring just falls back to allocating, same as a miss.
var opRing = pool.NewRingBuffer[*AsyncOp](1024)

// AllocCount and ReleaseCount expose the process-wide op-lifetime counters;
// the ioasync tests assert on how much a single call moves them.
func AllocCount() int64   { return allocCount.Load() }
func ReleaseCount() int64 { return releaseCount.Load() }

// AsyncOp is the stack-allocated (in spirit) per-operation descriptor.
type AsyncOp struct {
	SG     []IoVec
	Offset uint64

	Buf       api.Buffer // keeps memory alive until completion, if set
	HoldAlive any        // released after completion

	Err         error
	Transferred int

	fn       func(*AsyncOp)
	executor Executor

	completed atomic.Bool
	released  atomic.Bool
}

// NewAsyncOp allocates an op for a single contiguous segment, the common
// nsg==1 path. offset may be AppendOffset. Reuses a descriptor from opRing
// when one is available instead of allocating.
func NewAsyncOp(data []byte, offset uint64) *AsyncOp {
	allocCount.Add(1)
	if op, ok := opRing.Dequeue(); ok {
		*op = AsyncOp{SG: []IoVec{{Data: data}}, Offset: offset}
		return op
	}
	return &AsyncOp{SG: []IoVec{{Data: data}}, Offset: offset}
}

// NewScatterGatherOp allocates an op spanning multiple buffers, the nsg>1
// path. bufs is assembled through a pool.BufferBatch so the segment list
// can later be split/resliced (e.g. on a partial transfer) without
// disturbing the rest of the batch; the batch itself is kept alive via
// HoldAlive until the op completes.
func NewScatterGatherOp(bufs []api.Buffer, offset uint64) *AsyncOp {
	allocCount.Add(1)
	batch := pool.NewBufferBatch(len(bufs))
	for _, b := range bufs {
		batch.Append(b)
	}
	sg := make([]IoVec, batch.Len())
	for i := 0; i < batch.Len(); i++ {
		sg[i] = IoVec{Data: batch.Get(i).Bytes()}
	}
	return &AsyncOp{SG: sg, Offset: offset, HoldAlive: batch}
}

// OnComplete registers fn (and, optionally, the executor it should run on)
// as the op's completion callback.
func (op *AsyncOp) OnComplete(executor Executor, fn func(*AsyncOp)) {
	op.fn = fn
	op.executor = executor
}

// Complete runs the op's completion callback exactly once: inline if no
// executor was set, otherwise posted to it. A second call is safely
// ignored for the caller's own completion path, but returns a
// Protocol-violation-kind error so instrumented callers can detect the
// double-complete rather than silently losing it.
func (op *AsyncOp) Complete(transferred int, err error) error {
	if !op.completed.CompareAndSwap(false, true) {
		return api.NewError(api.ErrCodeProtocolViolation, "ioasync: AsyncOp completed more than once")
	}
	op.Transferred = transferred
	op.Err = err
	if op.fn == nil {
		return nil
	}
	if op.executor == nil {
		op.fn(op)
		return nil
	}
	return op.executor.Submit(func() { op.fn(op) })
}

// Release frees the op. It is the only path that does so; calling it twice
// is safe but only the first call is counted. The descriptor is offered back
// to opRing for NewAsyncOp to reuse; a full ring just drops it for the
// garbage collector.
func (op *AsyncOp) Release() {
	if op.released.CompareAndSwap(false, true) {
		releaseCount.Add(1)
		op.fn = nil
		op.executor = nil
		op.Buf = nil
		op.HoldAlive = nil
		op.Err = nil
		opRing.Enqueue(op)
	}
}
