//go:build linux
// +build linux

// File: control/platform_linux.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// RegisterPlatformProbes wires Linux host topology into the debug probe set:
// CPU count, online NUMA nodes and the hugepage reservation backing large
// buffer pools.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.numa_nodes", func() any {
		return onlineNUMANodes()
	})
	dp.RegisterProbe("platform.hugepages", func() any {
		raw, err := os.ReadFile("/proc/sys/vm/nr_hugepages")
		if err != nil {
			return 0
		}
		n, _ := strconv.Atoi(strings.TrimSpace(string(raw)))
		return n
	})
}

// onlineNUMANodes counts node directories under sysfs; single-node boxes and
// kernels without NUMA report 1.
func onlineNUMANodes() int {
	entries, err := os.ReadDir("/sys/devices/system/node")
	if err != nil {
		return 1
	}
	count := 0
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "node") {
			if _, err := strconv.Atoi(name[4:]); err == nil {
				count++
			}
		}
	}
	if count == 0 {
		return 1
	}
	return count
}
