// File: pool/bufferpool.go
// Author: momentics <momentics@gmail.com>
//
// BufferPoolManager hands out one slab-decorated api.BufferPool per NUMA
// node; the platform backend behind each is selected at build time.

package pool

import (
	"sync"

	"github.com/momentics/lune/api"
)

// BufferPoolManager keeps one pool per NUMA node, built lazily on first
// request. Node -1 is the no-preference pool.
type BufferPoolManager struct {
	mu     sync.RWMutex
	byNode map[int]api.BufferPool
}

// NewBufferPoolManager returns a manager with no pools yet.
func NewBufferPoolManager() *BufferPoolManager {
	return &BufferPoolManager{byNode: make(map[int]api.BufferPool)}
}

// GetPool obtains or creates the pool for numaNode (-1 means no
// preference).
func (m *BufferPoolManager) GetPool(numaNode int) api.BufferPool {
	m.mu.RLock()
	p, ok := m.byNode[numaNode]
	m.mu.RUnlock()
	if ok {
		return p
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.byNode[numaNode]; ok {
		return p
	}
	p = newSlabPool(defaultSlabClass, newBufferPool(numaNode))
	m.byNode[numaNode] = p
	return p
}
