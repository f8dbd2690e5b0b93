//go:build windows
// +build windows

// File: pool/numa_windows.go
// Author: momentics <momentics@gmail.com>
//
// VirtualAllocExNuma-backed allocator for node-preferred backing arrays.
// A negative node means no preference and takes the plain VirtualAlloc path;
// VirtualAllocExNuma rejects an out-of-range preferred node outright.

package pool

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// VirtualAllocExNuma and GetNumaHighestNodeNumber have no wrappers in
// x/sys/windows; everything else goes through the typed API.
var (
	numaKernel32           = windows.NewLazySystemDLL("kernel32.dll")
	procVirtualAllocExNuma = numaKernel32.NewProc("VirtualAllocExNuma")
	procGetNumaHighestNode = numaKernel32.NewProc("GetNumaHighestNodeNumber")
)

type windowsNUMAAllocator struct{}

func newWindowsNUMAAllocator() NUMAAllocator {
	return &windowsNUMAAllocator{}
}

func (w *windowsNUMAAllocator) Alloc(size int, node int) ([]byte, error) {
	if node < 0 {
		ptr, err := windows.VirtualAlloc(0, uintptr(size),
			windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
		if err != nil {
			return nil, fmt.Errorf("pool: VirtualAlloc of %d bytes failed: %w", size, err)
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size), nil
	}
	ptr, _, err := procVirtualAllocExNuma.Call(
		uintptr(windows.CurrentProcess()),
		0,
		uintptr(size),
		uintptr(windows.MEM_RESERVE|windows.MEM_COMMIT),
		uintptr(windows.PAGE_READWRITE),
		uintptr(node),
	)
	if ptr == 0 {
		return nil, fmt.Errorf("pool: VirtualAllocExNuma on node %d failed: %w", node, err)
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size), nil
}

func (w *windowsNUMAAllocator) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	_ = windows.VirtualFree(uintptr(unsafe.Pointer(&buf[0])), 0, windows.MEM_RELEASE)
}

func (w *windowsNUMAAllocator) Nodes() (int, error) {
	var highest uint32
	r, _, err := procGetNumaHighestNode.Call(uintptr(unsafe.Pointer(&highest)))
	if r == 0 {
		return 1, fmt.Errorf("pool: GetNumaHighestNodeNumber failed: %w", err)
	}
	return int(highest) + 1, nil
}
