// File: framepump/framepump.go
// Author: momentics <momentics@gmail.com>
//
// The host thread's message loop: a shared event queue protected by a
// mutex, with swap-not-copy handoff to the consumer. Two modes: "run until
// idle" drains without blocking, "run until halt" blocks until an explicit
// halt or a posted event arrives.

package framepump

import (
	"sync"

	"github.com/momentics/lune/api"
)

// Pump is the host thread's event queue and message loop.
type Pump struct {
	mu      sync.Mutex
	pending []api.HostEvent
	wake    chan struct{} // buffered 1; signals a blocked RunUntilHalt
	halted  bool
}

// New returns an empty Pump.
func New() *Pump {
	return &Pump{wake: make(chan struct{}, 1)}
}

// Post appends ev to the pending queue. If the queue was empty, it posts an
// OS-level halt (here, a non-blocking send on wake) so a blocked host
// thread wakes. PendingChannelMessages events are coalesced: if the most
// recently queued event is already that kind, no new event is posted.
func (p *Pump) Post(ev api.HostEvent) {
	p.mu.Lock()
	if ev.Type == api.EventPendingChannelMessages && len(p.pending) > 0 &&
		p.pending[len(p.pending)-1].Type == api.EventPendingChannelMessages {
		p.mu.Unlock()
		return
	}
	wasEmpty := len(p.pending) == 0
	p.pending = append(p.pending, ev)
	p.mu.Unlock()
	if wasEmpty {
		select {
		case p.wake <- struct{}{}:
		default:
		}
	}
}

// Halt unblocks a pending RunUntilHalt even with no event posted, matching
// an explicit halt request.
func (p *Pump) Halt() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// RunUntilIdle drains every currently pending event without blocking and
// returns them as a single batch (the swap-not-copy handoff).
func (p *Pump) RunUntilIdle() []api.HostEvent {
	p.mu.Lock()
	batch := p.pending
	p.pending = nil
	p.mu.Unlock()
	return batch
}

// RunUntilHalt blocks until an explicit halt or an event arrives, then
// returns the pending batch (possibly empty, if halted with nothing
// queued).
func (p *Pump) RunUntilHalt() []api.HostEvent {
	p.mu.Lock()
	if len(p.pending) > 0 {
		batch := p.pending
		p.pending = nil
		p.mu.Unlock()
		return batch
	}
	p.mu.Unlock()

	<-p.wake
	return p.RunUntilIdle()
}

// PopEvents blocks the consumer until at least one event is queued, then
// swaps the queue into a "current" buffer and returns it — the behavior the
// script host relies on every frame.
func (p *Pump) PopEvents() []api.HostEvent {
	for {
		batch := p.RunUntilHalt()
		if len(batch) > 0 {
			return batch
		}
	}
}

// Pending reports the current queue depth, for diagnostics/metrics.
func (p *Pump) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
