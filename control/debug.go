// File: control/debug.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"sync"

	"github.com/momentics/lune/api"
)

// DebugProbes is a concurrent registry of named introspection hooks. Probes
// are evaluated lazily, only when DumpState is called.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

var _ api.Debug = (*DebugProbes)(nil)

// NewDebugProbes returns an empty registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{probes: make(map[string]func() any)}
}

// RegisterProbe installs fn under name, replacing any previous probe with
// the same name.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	dp.probes[name] = fn
	dp.mu.Unlock()
}

// DumpState evaluates every registered probe and returns the results keyed
// by name. Probe functions run while the registry lock is held read-side,
// so they must not call RegisterProbe.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for name, fn := range dp.probes {
		out[name] = fn()
	}
	return out
}
