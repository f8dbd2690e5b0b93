//go:build windows
// +build windows

// File: pool/bufferpool_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows api.BufferPool backend. Common-size backing arrays come from a
// per-node NUMAPool (VirtualAllocExNuma); oversized requests go through a
// direct VirtualAlloc with a heap fallback.

package pool

import (
	"sync"
	"unsafe"

	"github.com/momentics/lune/api"
	"golang.org/x/sys/windows"
)

const windowsDefaultBufSize = 65536

var (
	bufKernel32      = windows.NewLazySystemDLL("kernel32.dll")
	procVirtualAlloc = bufKernel32.NewProc("VirtualAlloc")
)

type windowsBuffer struct {
	data   []byte
	pool   *windowsBufferPool
	numaID int
}

func (b *windowsBuffer) Bytes() []byte { return b.data }
func (b *windowsBuffer) Release()      { b.pool.recycle(b) }
func (b *windowsBuffer) NUMANode() int { return b.numaID }

func (b *windowsBuffer) Copy() []byte {
	dst := make([]byte, len(b.data))
	copy(dst, b.data)
	return dst
}

func (b *windowsBuffer) Slice(from, to int) api.Buffer {
	return &windowsBuffer{data: b.data[from:to], pool: b.pool, numaID: b.numaID}
}

// windowsBufferPool keeps a recycle channel and a NUMAPool per node
// preference, created lazily as Get sees new preferences.
type windowsBufferPool struct {
	mu        sync.Mutex
	recycled  map[int]chan *windowsBuffer
	numaPools map[int]*NUMAPool
}

func newBufferPool(numaNode int) api.BufferPool {
	return &windowsBufferPool{
		recycled:  map[int]chan *windowsBuffer{numaNode: make(chan *windowsBuffer, 1024)},
		numaPools: map[int]*NUMAPool{numaNode: NewNUMAPool(numaNode, windowsDefaultBufSize, numaNode >= 0)},
	}
}

func (p *windowsBufferPool) poolFor(numaPref int) (chan *windowsBuffer, *NUMAPool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.recycled[numaPref]
	if !ok {
		ch = make(chan *windowsBuffer, 1024)
		p.recycled[numaPref] = ch
	}
	np, ok := p.numaPools[numaPref]
	if !ok {
		np = NewNUMAPool(numaPref, windowsDefaultBufSize, numaPref >= 0)
		p.numaPools[numaPref] = np
	}
	return ch, np
}

func (p *windowsBufferPool) Get(size, numaPref int) api.Buffer {
	ch, np := p.poolFor(numaPref)
	select {
	case buf := <-ch:
		if cap(buf.data) < size {
			buf.data = make([]byte, size)
		}
		buf.data = buf.data[:size]
		return buf
	default:
	}
	if size <= windowsDefaultBufSize {
		return &windowsBuffer{data: np.Get()[:size], pool: p, numaID: numaPref}
	}
	addr, _, _ := procVirtualAlloc.Call(
		0, uintptr(size),
		uintptr(windows.MEM_RESERVE|windows.MEM_COMMIT),
		uintptr(windows.PAGE_READWRITE),
	)
	if addr == 0 {
		return &windowsBuffer{data: make([]byte, size), pool: p, numaID: numaPref}
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return &windowsBuffer{data: data, pool: p, numaID: numaPref}
}

func (p *windowsBufferPool) Put(b api.Buffer) {
	if wb, ok := b.(*windowsBuffer); ok {
		p.recycle(wb)
	}
}

func (p *windowsBufferPool) recycle(b *windowsBuffer) {
	ch, _ := p.poolFor(b.numaID)
	select {
	case ch <- b:
	default:
	}
}

func (p *windowsBufferPool) Stats() api.BufferPoolStats {
	return api.BufferPoolStats{}
}
