//go:build windows
// +build windows

// File: control/platform_windows.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

// RegisterPlatformProbes wires Windows host topology into the debug probe
// set. The active processor count sizes the IOCP completion pool, so it is
// surfaced separately from runtime.NumCPU.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.active_processors", func() any {
		return int(activeProcessorCount())
	})
	dp.RegisterProbe("platform.numa_nodes", func() any {
		return int(highestNUMANode()) + 1
	})
}

var (
	platKernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procGetActiveProcessorCount = platKernel32.NewProc("GetActiveProcessorCount")
	procGetNumaHighestNodeNum   = platKernel32.NewProc("GetNumaHighestNodeNumber")
)

const allProcessorGroups = 0xffff

func activeProcessorCount() uint32 {
	n, _, _ := procGetActiveProcessorCount.Call(uintptr(allProcessorGroups))
	if n == 0 {
		return uint32(runtime.NumCPU())
	}
	return uint32(n)
}

func highestNUMANode() uint32 {
	var node uint32
	ret, _, _ := procGetNumaHighestNodeNum.Call(uintptr(unsafe.Pointer(&node)))
	if ret == 0 {
		return 0
	}
	return node
}
