// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for pinning a worker.Pool thread to a logical CPU.
// Platform-specific implementations are located in separate files
// (affinity_linux.go, affinity_windows.go, etc.) guarded by build tags.

package affinity

// SetAffinity pins the calling OS thread — one of worker.Pool's N worker
// goroutines — to cpuID on supported platforms. On unsupported platforms it
// returns an error, which worker.Pool logs and otherwise ignores (pinning is
// best-effort, not a correctness requirement).
func SetAffinity(cpuID int) error {
	return pinWorkerThread(cpuID)
}
