//go:build linux
// +build linux

// File: pool/numa_linux.go
// Author: momentics <momentics@gmail.com>
//
// libnuma-backed allocator. numa_alloc_onnode places a blob or I/O segment's
// backing array on the worker's own node; node -1 allocates with the default
// policy. Whether libnuma is usable is decided once at construction so every
// Alloc pairs with the matching deallocator in Free — numa_free munmaps and
// free does not, so the two must never cross.

package pool

/*
#cgo LDFLAGS: -lnuma
#include <numa.h>
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

type linuxNUMAAllocator struct {
	numaUsable bool
}

func newLinuxNUMAAllocator() NUMAAllocator {
	return &linuxNUMAAllocator{numaUsable: C.numa_available() != -1}
}

func (l *linuxNUMAAllocator) Alloc(size int, node int) ([]byte, error) {
	var ptr unsafe.Pointer
	switch {
	case !l.numaUsable:
		ptr = C.malloc(C.size_t(size))
	case node < 0:
		ptr = C.numa_alloc(C.size_t(size))
	default:
		ptr = C.numa_alloc_onnode(C.size_t(size), C.int(node))
	}
	if ptr == nil {
		return nil, fmt.Errorf("pool: node %d alloc of %d bytes failed", node, size)
	}
	return unsafe.Slice((*byte)(ptr), size), nil
}

func (l *linuxNUMAAllocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	p := unsafe.Pointer(&buf[0])
	if l.numaUsable {
		C.numa_free(p, C.size_t(len(buf)))
	} else {
		C.free(p)
	}
}

func (l *linuxNUMAAllocator) Nodes() (int, error) {
	if !l.numaUsable {
		return 1, fmt.Errorf("pool: NUMA not available")
	}
	return int(C.numa_max_node()) + 1, nil
}
