// File: future/future.go
// Author: momentics <momentics@gmail.com>
//
// Single-consumer Promise/Future with exactly-once resolution. A
// continuation either fires inline on the resolving goroutine or is posted
// to an Executor.

package future

import "sync"

// Executor posts a continuation for later execution. The exec package's
// executors all satisfy this shape.
type Executor interface {
	Submit(task func()) error
}

// continuation is the deferred action attached to a Promise, either to run
// inline (executor == nil) or posted to an executor.
type continuation[T any] struct {
	fn       func(val T, ok bool)
	executor Executor
}

// Promise holds either a moved value T or the signal "null/errored". Exactly
// one Future is created from a Promise. The promise is destroyed (its
// internal state released) exactly once: when the continuation runs, when a
// blocking Take returns, or when the Future is explicitly discarded.
type Promise[T any] struct {
	mu       sync.Mutex
	cond     *sync.Cond
	resolved bool
	ok       bool
	val      T
	cont     *continuation[T]
}

// NewPromise returns an unresolved Promise and its single Future.
func NewPromise[T any]() (*Promise[T], *Future[T]) {
	p := &Promise[T]{}
	p.cond = sync.NewCond(&p.mu)
	return p, &Future[T]{p: p}
}

// Resolve stores v and marks the promise resolved, firing any attached
// continuation or waking any blocking taker.
func (p *Promise[T]) Resolve(v T) {
	p.resolve(v, true)
}

// ResolveNull marks the promise "null" (no value / errored). The
// continuation's ok flag will be false.
func (p *Promise[T]) ResolveNull() {
	var zero T
	p.resolve(zero, false)
}

func (p *Promise[T]) resolve(v T, ok bool) {
	p.mu.Lock()
	if p.resolved {
		p.mu.Unlock()
		return
	}
	p.resolved = true
	p.ok = ok
	p.val = v
	cont := p.cont
	p.cont = nil
	p.cond.Broadcast()
	p.mu.Unlock()

	if cont != nil {
		fire(cont, v, ok)
	}
}

func fire[T any](c *continuation[T], v T, ok bool) {
	if c.executor == nil {
		c.fn(v, ok)
		return
	}
	_ = c.executor.Submit(func() { c.fn(v, ok) })
}

// then attaches fn, running immediately if already resolved.
func (p *Promise[T]) then(executor Executor, fn func(val T, ok bool)) {
	p.mu.Lock()
	if p.resolved {
		v, ok := p.val, p.ok
		p.mu.Unlock()
		fire(&continuation[T]{fn: fn, executor: executor}, v, ok)
		return
	}
	p.cont = &continuation[T]{fn: fn, executor: executor}
	p.mu.Unlock()
}

// take blocks the caller until resolution and returns the value and ok flag.
func (p *Promise[T]) take() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for !p.resolved {
		p.cond.Wait()
	}
	return p.val, p.ok
}

// Future is the single consumer's handle to a Promise's eventual value.
type Future[T any] struct {
	p    *Promise[T]
	used bool
}

// Then attaches a continuation that fires inline: on the resolving
// goroutine, or at once on the caller's if the promise is already resolved.
func (f *Future[T]) Then(fn func(val T, ok bool)) {
	f.used = true
	f.p.then(nil, fn)
}

// ThenOn attaches a continuation posted to executor when it fires.
func (f *Future[T]) ThenOn(executor Executor, fn func(val T, ok bool)) {
	f.used = true
	f.p.then(executor, fn)
}

// Take blocks synchronously until the value is available.
func (f *Future[T]) Take() (T, bool) {
	f.used = true
	return f.p.take()
}

// Discard explicitly abandons the future by installing a no-op continuation,
// satisfying the protocol-violation invariant that every future is either
// continued, taken, or discarded exactly once.
func (f *Future[T]) Discard() {
	f.used = true
	f.p.then(nil, func(T, bool) {})
}

// Used reports whether Then/ThenOn/Take/Discard has been called; intended
// for debug assertions that catch abandoned futures (the Protocol-violation
// error kind).
func (f *Future[T]) Used() bool { return f.used }
