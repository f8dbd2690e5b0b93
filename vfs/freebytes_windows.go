//go:build windows

// File: vfs/freebytes_windows.go
// Author: momentics <momentics@gmail.com>

package vfs

import (
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kern32                 = windows.NewLazySystemDLL("kernel32.dll")
	procGetDiskFreeSpaceEx = kern32.NewProc("GetDiskFreeSpaceExW")
)

func freeBytes(path string) (uint64, error) {
	dir := filepath.VolumeName(path) + `\`
	if dir == `\` {
		dir = path
	}
	ptr, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return 0, err
	}
	var freeAvailable, total, totalFree uint64
	r1, _, callErr := procGetDiskFreeSpaceEx.Call(
		uintptr(unsafe.Pointer(ptr)),
		uintptr(unsafe.Pointer(&freeAvailable)),
		uintptr(unsafe.Pointer(&total)),
		uintptr(unsafe.Pointer(&totalFree)),
	)
	if r1 == 0 {
		return 0, callErr
	}
	return freeAvailable, nil
}
