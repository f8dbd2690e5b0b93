//go:build !linux && !windows
// +build !linux,!windows

// File: pool/numa_stub.go
// Author: momentics <momentics@gmail.com>

package pool

// heapNUMAAllocator satisfies NUMAAllocator on platforms without node-local
// allocation: Alloc is a plain heap allocation so NUMAPool's degradation
// path is never taken, and the single reported node is node 0.
type heapNUMAAllocator struct{}

func (heapNUMAAllocator) Alloc(size int, node int) ([]byte, error) {
	return make([]byte, size), nil
}

func (heapNUMAAllocator) Free([]byte) {}

func (heapNUMAAllocator) Nodes() (int, error) { return 1, nil }
