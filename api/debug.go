// File: api/debug.go
// Author: momentics <momentics@gmail.com>

package api

// Debug exposes live introspection of a running system. Satisfied by
// control.DebugProbes.
type Debug interface {
	// DumpState evaluates every registered probe and returns the results
	// keyed by probe name.
	DumpState() map[string]any

	// RegisterProbe adds a named probe evaluated on each DumpState.
	RegisterProbe(name string, fn func() any)
}
