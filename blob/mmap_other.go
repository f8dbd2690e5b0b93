//go:build !linux

// File: blob/mmap_other.go
// Author: momentics <momentics@gmail.com>
//
// Non-Linux fallback: maps the requested range by reading it into an owned
// buffer. Writes are not reflected back to the file; platform mmap support
// (Windows MapViewOfFile) belongs alongside pool/bufferpool_windows.go when
// that backend gains a writable mapping path.

package blob

import "os"

// NewMmap reads [offset, offset+size) of the file at path into an owned
// blob. See build-tag comment above for the fallback's limits.
func NewMmap(path string, offset int64, size int, ro bool) (*Blob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data := make([]byte, size)
	if _, err := f.ReadAt(data, offset); err != nil {
		return nil, err
	}
	b := newBlob(nil)
	b.Resolved(data, true)
	return b, nil
}
