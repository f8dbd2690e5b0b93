//go:build windows
// +build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows implementation of worker.Pool thread pinning via SetThreadAffinityMask.

package affinity

import (
	"syscall"
)

var (
	affKernel32               = syscall.NewLazyDLL("kernel32.dll")
	procSetThreadAffinityMask = affKernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread      = affKernel32.NewProc("GetCurrentThread")
)

// pinWorkerThread pins the calling worker.Pool goroutine's OS thread to
// cpuID on Windows.
func pinWorkerThread(cpuID int) error {
	hThread, _, _ := procGetCurrentThread.Call()
	mask := uintptr(1) << cpuID
	ret, _, err := procSetThreadAffinityMask.Call(hThread, mask)
	if ret == 0 {
		return err
	}
	return nil
}
