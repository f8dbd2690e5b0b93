//go:build linux

// File: vfs/freebytes_linux.go
// Author: momentics <momentics@gmail.com>

package vfs

import "golang.org/x/sys/unix"

func freeBytes(path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil
}
