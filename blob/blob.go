// File: blob/blob.go
// Author: momentics <momentics@gmail.com>
//
// Blob is a ref-counted, waitable byte container: a Promisable<[]byte> with
// an immutable-once-resolved pointer/size pair. Owned-memory blobs draw their
// backing storage from pool's NUMA-aware buffer pools (pool/bufferpool.go);
// the memory-mapped variant ties its unmap to the last reference dropping.

package blob

import (
	"fmt"
	"sync"

	"github.com/momentics/lune/api"
	"github.com/momentics/lune/future"
	"github.com/momentics/lune/pool"
)

// Blob is a promisable byte container. The zero Blob is not usable; build
// one with NewOwned, NewWrapString, NewMmap, or NewDynamic.
type Blob struct {
	future.Promisable[[]byte]

	mu      sync.Mutex
	refs    int32
	release func()
	buf     api.Buffer // non-nil for the pool-backed owned variant
}

func newBlob(release func()) *Blob {
	b := &Blob{refs: 1, release: release}
	return b
}

// NewOwned allocates size bytes from the default NUMA buffer pool and
// returns an already-resolved blob over them.
func NewOwned(size, numaPreferred int) *Blob {
	buf := pool.DefaultPool(size, numaPreferred)
	b := newBlob(func() { buf.Release() })
	b.buf = buf
	b.Resolved(buf.Bytes(), true)
	return b
}

// NewWrapString returns an already-resolved blob that wraps s's bytes
// without copying. The caller must not mutate s's backing array afterwards.
func NewWrapString(s string) *Blob {
	b := newBlob(nil)
	b.Resolved([]byte(s), true)
	return b
}

// NewDynamic returns an unresolved blob. Call Set to resolve it later.
func NewDynamic() *Blob {
	return newBlob(nil)
}

// Set resolves a dynamic blob with data and an error flag.
func (b *Blob) Set(data []byte, errored bool) {
	b.Resolved(data, !errored)
}

// Bytes returns the resolved byte slice. Calling before resolution returns
// nil; callers that need to block should use Wait first.
func (b *Blob) Bytes() []byte {
	if !b.IsResolved() {
		return nil
	}
	v, _ := b.Value()
	return v
}

// Failed reports whether the blob resolved with its error flag set.
func (b *Blob) Failed() bool {
	if !b.IsResolved() {
		return false
	}
	_, ok := b.Value()
	return !ok
}

// Acquire increments the reference count and returns the same blob for
// chaining.
func (b *Blob) Acquire() *Blob {
	b.mu.Lock()
	b.refs++
	b.mu.Unlock()
	return b
}

// Release drops a reference; when the count reaches zero the backing store
// (pool buffer or mmap region) is released exactly once.
func (b *Blob) Release() {
	b.mu.Lock()
	b.refs--
	fire := b.refs <= 0 && b.release != nil
	rel := b.release
	if fire {
		b.release = nil
	}
	b.mu.Unlock()
	if fire {
		rel()
	}
}

// String implements fmt.Stringer for debug logging.
func (b *Blob) String() string {
	if !b.IsResolved() {
		return "blob(unresolved)"
	}
	return fmt.Sprintf("blob(%d bytes, failed=%v)", len(b.Bytes()), b.Failed())
}
