// File: future/promisable.go
// Author: momentics <momentics@gmail.com>
//
// Multi-listener Promisable: the resolvable object is its own future.
// Any number of Then attachments may register before or after resolution;
// all fire once, in registration order.

package future

import (
	"sync"

	"github.com/momentics/lune/syncutil"
)

type listener[T any] struct {
	fn       func(val T, ok bool)
	executor Executor
}

// Promisable mixes multi-listener resolution into an object. Embed it to
// make that object its own future, as the blob package does for its content.
type Promisable[T any] struct {
	mu        sync.Mutex
	resolved  bool
	ok        bool
	val       T
	listeners []listener[T]
}

// Then registers fn to fire inline when resolved (immediately, if already
// resolved).
func (p *Promisable[T]) Then(fn func(val T, ok bool)) {
	p.then(nil, fn)
}

// ThenOn registers fn to fire via executor when resolved.
func (p *Promisable[T]) ThenOn(executor Executor, fn func(val T, ok bool)) {
	p.then(executor, fn)
}

func (p *Promisable[T]) then(executor Executor, fn func(val T, ok bool)) {
	p.mu.Lock()
	if p.resolved {
		v, ok := p.val, p.ok
		p.mu.Unlock()
		fire(&continuation[T]{fn: fn, executor: executor}, v, ok)
		return
	}
	p.listeners = append(p.listeners, listener[T]{fn: fn, executor: executor})
	p.mu.Unlock()
}

// Resolved flips the resolved flag and fires every registered listener,
// outside the lock, in registration order. Calling Resolved a second time is
// a no-op.
func (p *Promisable[T]) Resolved(v T, ok bool) {
	p.mu.Lock()
	if p.resolved {
		p.mu.Unlock()
		return
	}
	p.resolved = true
	p.val = v
	p.ok = ok
	pending := p.listeners
	p.listeners = nil
	p.mu.Unlock()

	for _, l := range pending {
		fire(&continuation[T]{fn: l.fn, executor: l.executor}, v, ok)
	}
}

// IsResolved reports whether Resolved has already run.
func (p *Promisable[T]) IsResolved() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolved
}

// Value returns the resolved value and ok flag. Call only after IsResolved.
func (p *Promisable[T]) Value() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.val, p.ok
}

// Wait blocks the caller until resolution, implemented by attaching a
// signalling continuation and waiting on a one-shot event, per the source's
// wait() pattern.
func (p *Promisable[T]) Wait() (T, bool) {
	done := syncutil.NewOneShotEvent()
	var v T
	var ok bool
	p.Then(func(val T, resolvedOK bool) {
		v, ok = val, resolvedOK
		done.Signal()
	})
	done.Wait()
	return v, ok
}
