// File: channel/registry.go
// Author: momentics <momentics@gmail.com>
//
// Registry looks channels up by name, creating them on first use. The
// distinguished "main" channel has its OnPush wired to the frame pump's
// coalesced PendingChannelMessages event.

package channel

import (
	"sync"

	"github.com/momentics/lune/api"
	"github.com/momentics/lune/framepump"
)

// MainChannelName is the distinguished channel whose pushes wake the host
// frame pump.
const MainChannelName = "main"

// Registry is a set of channels keyed by name. Entries are not
// ref-counted and are never removed.
type Registry struct {
	mu       sync.Mutex
	channels map[string]*Channel
	pump     *framepump.Pump
}

// NewRegistry builds a registry that wires the "main" channel's pushes into
// pump, if pump is non-nil.
func NewRegistry(pump *framepump.Pump) *Registry {
	return &Registry{channels: make(map[string]*Channel), pump: pump}
}

// Get returns the named channel, creating it if it doesn't exist yet.
func (r *Registry) Get(name string) *Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.channels[name]; ok {
		return c
	}
	c := New(name)
	if name == MainChannelName && r.pump != nil {
		c.OnPush = func() {
			r.pump.Post(api.HostEvent{Type: api.EventPendingChannelMessages})
		}
	}
	r.channels[name] = c
	return c
}

// Names returns every registered channel name.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.channels))
	for n := range r.channels {
		names = append(names, n)
	}
	return names
}
