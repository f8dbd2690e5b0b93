// File: fake/buffer.go
// Author: momentics <momentics@gmail.com>
//
// Buffer is a heap-backed api.Buffer stand-in for tests that need buffer
// semantics without touching the NUMA pools. Release marks it dead instead
// of recycling, so use-after-release shows up as a nil Bytes() in the test
// rather than corrupting a shared slab.

package fake

import (
	"sync"

	"github.com/momentics/lune/api"
)

// Buffer records its released state and hands out nil views afterwards.
type Buffer struct {
	mu       sync.Mutex
	data     []byte
	node     int
	released bool
}

// NewBuffer copies data into a fresh fake buffer tagged with numaNode.
func NewBuffer(data []byte, numaNode int) *Buffer {
	return &Buffer{data: append([]byte(nil), data...), node: numaNode}
}

func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return nil
	}
	return b.data
}

// Slice returns an independent fake buffer over data[from:to], or nil when
// the range is invalid or the buffer was already released.
func (b *Buffer) Slice(from, to int) api.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released || from < 0 || to > len(b.data) || from > to {
		return nil
	}
	return NewBuffer(b.data[from:to], b.node)
}

func (b *Buffer) Release() {
	b.mu.Lock()
	b.released = true
	b.data = nil
	b.mu.Unlock()
}

func (b *Buffer) Copy() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return nil
	}
	return append([]byte(nil), b.data...)
}

func (b *Buffer) NUMANode() int { return b.node }

// Released reports whether Release has been called, for assertions on
// ownership-transfer paths.
func (b *Buffer) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}

var _ api.Buffer = (*Buffer)(nil)
