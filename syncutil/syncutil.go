// File: syncutil/syncutil.go
// Author: momentics <momentics@gmail.com>
//
// Hand-rolled synchronization primitives backing the barrier and frame
// pacing layers: a one-shot latch and a monotonic sequence latch that
// cannot be re-armed backwards.

package syncutil

import "sync"

// OneShotEvent is a latch that fires exactly once; Wait blocks until Signal
// is called, and returns immediately for every subsequent Wait.
type OneShotEvent struct {
	mu    sync.Mutex
	cond  *sync.Cond
	fired bool
}

// NewOneShotEvent returns an unfired latch.
func NewOneShotEvent() *OneShotEvent {
	e := &OneShotEvent{}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Signal fires the latch and wakes every waiter. Idempotent.
func (e *OneShotEvent) Signal() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fired {
		return
	}
	e.fired = true
	e.cond.Broadcast()
}

// Wait blocks until Signal has been called.
func (e *OneShotEvent) Wait() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for !e.fired {
		e.cond.Wait()
	}
}

// Fired reports whether Signal has already been called.
func (e *OneShotEvent) Fired() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fired
}

// SeqEvent is a monotonic sequence latch: waiters block until the published
// value reaches a target, and the value can never move backwards. It is the
// primitive behind barrier release (seq_wait) and frame admission
// (frame_wait / swap_wait).
type SeqEvent struct {
	mu   sync.Mutex
	cond *sync.Cond
	val  uint64
}

// NewSeqEvent returns a SeqEvent starting at 0.
func NewSeqEvent() *SeqEvent {
	e := &SeqEvent{}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// WaitFor blocks until the published value is >= target.
func (e *SeqEvent) WaitFor(target uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for e.val < target {
		e.cond.Wait()
	}
}

// SignalAt advances the value to at least target and wakes all waiters.
// A target less than the current value is a no-op (no going back).
func (e *SeqEvent) SignalAt(target uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if target > e.val {
		e.val = target
		e.cond.Broadcast()
	}
}

// SignalInc advances the value by delta and wakes all waiters.
func (e *SeqEvent) SignalInc(delta uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.val += delta
	e.cond.Broadcast()
}

// Value returns the current published value.
func (e *SeqEvent) Value() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.val
}

// Reset forces the value back to v. Only safe when all waiters have been
// drained.
func (e *SeqEvent) Reset(v uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.val = v
	e.cond.Broadcast()
}

// CondVar is a thin wrapper pairing a Locker with a condition variable.
type CondVar struct {
	L    sync.Locker
	cond *sync.Cond
}

// NewCondVar builds a CondVar guarded by l.
func NewCondVar(l sync.Locker) *CondVar {
	return &CondVar{L: l, cond: sync.NewCond(l)}
}

// Wait releases L and blocks until Signal/Broadcast; caller must hold L.
func (c *CondVar) Wait() { c.cond.Wait() }

// Signal wakes one waiter.
func (c *CondVar) Signal() { c.cond.Signal() }

// Broadcast wakes every waiter.
func (c *CondVar) Broadcast() { c.cond.Broadcast() }
