//go:build !linux && !windows
// +build !linux,!windows

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// worker.Pool thread pinning is unavailable on platforms without a Linux or
// Windows affinity syscall; Pool logs the resulting error and keeps the
// thread unpinned rather than failing the frame loop.

package affinity

import "errors"

// pinWorkerThread always fails: no worker thread pinning primitive exists
// for this platform.
func pinWorkerThread(cpuID int) error {
	return errors.New("affinity: not supported on this platform")
}
