//go:build linux
// +build linux

// File: pool/bufferpool_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux api.BufferPool backend. Backing arrays of the common size class come
// from the node-local NUMAPool; oversized requests allocate directly.

package pool

import (
	"sync"

	"github.com/momentics/lune/api"
)

const linuxDefaultBufSize = 65536

// linuxBuffer is the api.Buffer handed out by linuxBufferPool.
type linuxBuffer struct {
	data   []byte
	pool   *linuxBufferPool
	numaID int
	mu     sync.Mutex
	live   bool
}

func (b *linuxBuffer) Bytes() []byte { return b.data }

func (b *linuxBuffer) Slice(from, to int) api.Buffer {
	if from < 0 || to > len(b.data) || from > to {
		panic("pool: buffer slice bounds out of range")
	}
	return &linuxBuffer{
		data:   b.data[from:to],
		pool:   b.pool,
		numaID: b.numaID,
		live:   true,
	}
}

// Release is idempotent: only the first call returns the buffer.
func (b *linuxBuffer) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.live {
		return
	}
	b.live = false
	b.pool.recycle(b)
}

func (b *linuxBuffer) Copy() []byte {
	dst := make([]byte, len(b.data))
	copy(dst, b.data)
	return dst
}

func (b *linuxBuffer) NUMANode() int { return b.numaID }

// linuxBufferPool recycles buffer handles through a sync.Pool and sources
// common-size backing arrays from numaPool.
type linuxBufferPool struct {
	handles  sync.Pool
	numaID   int
	bufSize  int
	numaPool *NUMAPool
}

func newBufferPool(numaNode int) api.BufferPool {
	return &linuxBufferPool{
		numaID:   numaNode,
		bufSize:  linuxDefaultBufSize,
		numaPool: NewNUMAPool(numaNode, linuxDefaultBufSize, numaNode >= 0),
	}
}

func (bp *linuxBufferPool) Get(size int, numaPreferred int) api.Buffer {
	if h := bp.handles.Get(); h != nil {
		buf := h.(*linuxBuffer)
		if cap(buf.data) < size {
			buf.data = bp.backing(size)
		}
		buf.data = buf.data[:size]
		buf.live = true
		return buf
	}
	return &linuxBuffer{
		data:   bp.backing(size)[:size],
		pool:   bp,
		numaID: bp.numaID,
		live:   true,
	}
}

func (bp *linuxBufferPool) backing(size int) []byte {
	if size <= bp.bufSize {
		return bp.numaPool.Get()
	}
	return make([]byte, size)
}

func (bp *linuxBufferPool) Put(b api.Buffer) {
	if lb, ok := b.(*linuxBuffer); ok {
		lb.Release()
	}
}

func (bp *linuxBufferPool) recycle(b *linuxBuffer) {
	bp.handles.Put(b)
}

func (bp *linuxBufferPool) Stats() api.BufferPoolStats {
	return api.BufferPoolStats{}
}
