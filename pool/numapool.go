// File: pool/numapool.go
// Author: momentics <momentics@gmail.com>
//
// NUMA-local allocation for fixed-size backing arrays. The platform
// allocator (libnuma, VirtualAllocExNuma, or the heap stub) is selected by
// the createNUMAAllocator factory in the numapool_* files.

package pool

import (
	"sync/atomic"

	"github.com/momentics/lune/api"
)

// NUMAAllocator is the platform contract for node-local memory.
type NUMAAllocator interface {
	Alloc(size int, node int) ([]byte, error)
	Free([]byte)
	Nodes() (int, error)
}

// NUMAPool recycles same-size byte slices allocated on one NUMA node.
// Satisfies api.ObjectPool[[]byte].
type NUMAPool struct {
	alloc  NUMAAllocator
	size   int
	node   int
	numaOn atomic.Bool
	free   chan []byte
}

var _ api.ObjectPool[[]byte] = (*NUMAPool)(nil)

// NewNUMAPool creates a pool of size-byte slices preferring node. With
// enable false (or no platform allocator) every allocation comes from the
// heap.
func NewNUMAPool(node int, size int, enable bool) *NUMAPool {
	na := createNUMAAllocator()
	p := &NUMAPool{
		alloc: na,
		size:  size,
		node:  node,
		free:  make(chan []byte, 256),
	}
	p.numaOn.Store(enable && na != nil)
	return p
}

// Get returns a slice of the pool's fixed size, reusing a recycled one when
// available. After an allocator failure the pool degrades to heap
// allocation permanently.
func (p *NUMAPool) Get() []byte {
	select {
	case b := <-p.free:
		return b
	default:
	}
	if p.numaOn.Load() {
		if b, err := p.alloc.Alloc(p.size, p.node); err == nil {
			return b
		}
		p.numaOn.Store(false)
	}
	return make([]byte, p.size)
}

// Put recycles buf. Slices smaller than the pool's size are discarded;
// overflow beyond the free list is returned to the platform allocator.
func (p *NUMAPool) Put(buf []byte) {
	if cap(buf) < p.size {
		return
	}
	buf = buf[:p.size]
	select {
	case p.free <- buf:
	default:
		if p.numaOn.Load() {
			p.alloc.Free(buf)
		}
	}
}
