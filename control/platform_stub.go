//go:build !linux && !windows
// +build !linux,!windows

// File: control/platform_stub.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"runtime"
)

// RegisterPlatformProbes exposes only the CPU count on platforms without a
// NUMA topology backend.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
}
