// File: facade/config.go
// Author: momentics <momentics@gmail.com>
//
// Config assembles the knobs needed to construct a Runtime.

package facade

import "time"

// Version and Build identify the running binary; overridable at link time
// via -ldflags "-X github.com/momentics/lune/facade.Version=...".
var (
	Version = "dev"
	Build   = "unknown"
)

// VFSRoot describes one named prefix to register with the runtime's VFS at
// startup.
type VFSRoot struct {
	Prefix   string
	BaseDir  string
	ReadOnly bool
}

// Config holds every parameter needed to build a Runtime.
type Config struct {
	// ServiceName labels this runtime in the "service" debug probe.
	ServiceName string

	WorkerCount     int
	TargetFrameTime float64
	NUMANode        int
	IOPoolSize      int

	// ConfigPath, if set, is a YAML document that New reads once and merges,
	// via control.ConfigStore.LoadYAML, over the RuntimeConfig built from the
	// four fields above. The file is not re-read after construction.
	ConfigPath string

	// TracePath, if set, opens a Chrome-tracing-compatible JSON trace at
	// that path for the lifetime of the Runtime.
	TracePath string

	VFSRoots []VFSRoot

	ShutdownTimeout time.Duration
}

// DefaultConfig returns the conservative defaults used when the caller
// supplies no overrides.
func DefaultConfig() *Config {
	return &Config{
		ServiceName:     "lune",
		WorkerCount:     4,
		TargetFrameTime: 1.0 / 60.0,
		NUMANode:        -1,
		IOPoolSize:      2,
		ShutdownTimeout: 5 * time.Second,
	}
}
