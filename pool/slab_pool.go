// File: pool/slab_pool.go
// Author: momentics <momentics@gmail.com>
//
// slabPool decorates a backend api.BufferPool with a lock-free recycling
// ring for one size class. Get/Put cycles that stay within that class never
// touch the backend's allocation path; everything else falls through
// unchanged.

package pool

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/lune/api"
	"github.com/momentics/lune/core/concurrency"
)

const (
	defaultSlabClass    = 65536
	defaultSlabCapacity = 4096
)

type slabPool struct {
	class   int
	backend api.BufferPool

	queue *concurrency.LockFreeQueue[api.Buffer]

	gets atomic.Uint64
	puts atomic.Uint64

	nodeMu     sync.Mutex
	nodeCounts map[int]int64
}

var _ api.BufferPool = (*slabPool)(nil)

// newSlabPool wraps backend with a recycling ring for buffers of exactly
// class bytes.
func newSlabPool(class int, backend api.BufferPool) *slabPool {
	return &slabPool{
		class:      class,
		backend:    backend,
		queue:      concurrency.NewLockFreeQueue[api.Buffer](defaultSlabCapacity),
		nodeCounts: make(map[int]int64),
	}
}

func (sp *slabPool) countGet(numaNode int) {
	sp.gets.Add(1)
	sp.nodeMu.Lock()
	sp.nodeCounts[numaNode]++
	sp.nodeMu.Unlock()
}

func (sp *slabPool) Get(size int, numaNode int) api.Buffer {
	if size == sp.class {
		if buf, ok := sp.queue.Dequeue(); ok {
			sp.countGet(numaNode)
			return buf
		}
	}
	buf := sp.backend.Get(size, numaNode)
	sp.countGet(numaNode)
	return buf
}

func (sp *slabPool) Put(buf api.Buffer) {
	sp.puts.Add(1)
	if len(buf.Bytes()) == sp.class && sp.queue.Enqueue(buf) {
		return
	}
	sp.backend.Put(buf)
}

func (sp *slabPool) Stats() api.BufferPoolStats {
	gets := int64(sp.gets.Load())
	puts := int64(sp.puts.Load())

	sp.nodeMu.Lock()
	perNode := make(map[int]int64, len(sp.nodeCounts))
	for node, n := range sp.nodeCounts {
		perNode[node] = n
	}
	sp.nodeMu.Unlock()

	return api.BufferPoolStats{
		TotalAlloc: gets,
		TotalFree:  puts,
		InUse:      gets - puts,
		NUMAStats:  perNode,
	}
}
