// File: api/types.go
// Author: momentics <momentics@gmail.com>

package api

import "time"

// APIMetrics is the externally published counter set: frames completed,
// yields observed, and bytes moved through the async I/O fabric since
// StartedAt. Assembled by control.MetricsRegistry.Published.
type APIMetrics struct {
	FramesCompleted int64
	WorkUnitYields  int64
	BytesRead       uint64
	BytesWritten    uint64
	StartedAt       time.Time
}

// ServiceInfo identifies a running instance to external tooling; surfaced
// through the "service" debug probe.
type ServiceInfo struct {
	Name      string
	Version   string
	Build     string
	StartedAt time.Time
}
