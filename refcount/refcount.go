// File: refcount/refcount.go
// Author: momentics <momentics@gmail.com>
//
// Atomically ref-counted handle to a heap-resident object. Destruction runs
// exactly once, when the last strong reference releases. Generalizes the
// acquire/slice/release shape of api.Buffer from bytes to an arbitrary T.

package refcount

import "sync/atomic"

// Ref is a shared-ownership handle over a value of type T. The zero Ref is
// not usable; construct with New.
type Ref[T any] struct {
	box *box[T]
}

type box[T any] struct {
	val     T
	count   atomic.Int64
	dispose func(T)
}

// New creates a Ref with one strong reference. dispose, if non-nil, runs
// exactly once when the last reference is released.
func New[T any](val T, dispose func(T)) Ref[T] {
	b := &box[T]{val: val, dispose: dispose}
	b.count.Store(1)
	return Ref[T]{box: b}
}

// Valid reports whether the handle still refers to a live box.
func (r Ref[T]) Valid() bool { return r.box != nil }

// Get returns the referenced value. Calling Get on a released Ref is a
// programming error; the zero value of T is returned.
func (r Ref[T]) Get() T {
	if r.box == nil {
		var zero T
		return zero
	}
	return r.box.val
}

// Clone returns a new strong reference to the same box, incrementing the
// count. The returned Ref must itself be released.
func (r Ref[T]) Clone() Ref[T] {
	if r.box == nil {
		return r
	}
	r.box.count.Add(1)
	return Ref[T]{box: r.box}
}

// Release drops this strong reference. When the count reaches zero, dispose
// runs exactly once. The receiver must not be used after Release.
func (r Ref[T]) Release() {
	if r.box == nil {
		return
	}
	if r.box.count.Add(-1) == 0 && r.box.dispose != nil {
		r.box.dispose(r.box.val)
	}
}

// Count returns the current strong-reference count, for diagnostics/tests.
func (r Ref[T]) Count() int64 {
	if r.box == nil {
		return 0
	}
	return r.box.count.Load()
}

// Weak is a lookup-only back-reference that never extends the referent's
// lifetime. It observes validity through the same box but holds no count.
type Weak[T any] struct {
	box *box[T]
}

// Weaken derives a Weak from a live Ref.
func (r Ref[T]) Weaken() Weak[T] { return Weak[T]{box: r.box} }

// Get returns the current value and true if the underlying box still has at
// least one strong reference; otherwise the zero value and false.
func (w Weak[T]) Get() (T, bool) {
	if w.box == nil || w.box.count.Load() <= 0 {
		var zero T
		return zero, false
	}
	return w.box.val, true
}
