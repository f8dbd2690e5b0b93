//go:build linux

// File: blob/mmap_linux.go
// Author: momentics <momentics@gmail.com>
//
// Memory-mapped blob variant for Linux. The mapping is released when the
// blob's last reference drops.

package blob

import (
	"os"
	"syscall"
)

// NewMmap maps [offset, offset+size) of the file at path and returns a blob
// whose storage is the mapping; Release unmaps once the last reference
// drops. ro selects a read-only mapping.
func NewMmap(path string, offset int64, size int, ro bool) (*Blob, error) {
	flags := os.O_RDWR
	if ro {
		flags = os.O_RDONLY
	}
	f, err := os.OpenFile(path, flags, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	prot := syscall.PROT_READ
	if !ro {
		prot |= syscall.PROT_WRITE
	}
	data, err := syscall.Mmap(int(f.Fd()), offset, size, prot, syscall.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	b := newBlob(func() { syscall.Munmap(data) })
	b.Resolved(data, true)
	return b, nil
}
