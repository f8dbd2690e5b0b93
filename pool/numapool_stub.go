//go:build !linux && !windows
// +build !linux,!windows

// File: pool/numapool_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub NUMA allocator for unsupported platforms.

package pool

// createNUMAAllocator returns the heap-backed allocator for platforms
// without node-local allocation; its Alloc never fails, so NUMAPool never
// enters its degradation path here.
func createNUMAAllocator() NUMAAllocator {
	return heapNUMAAllocator{}
}
