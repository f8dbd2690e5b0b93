// File: channel/channel.go
// Author: momentics <momentics@gmail.com>
//
// A channel is a named, serialized FIFO for inter-thread messaging, backed
// by github.com/eapache/queue's ring-buffer FIFO. Channels carry no
// reference count; a channel lives as long as its Registry holds it.
// Explicit Lock/Unlock is exposed because read-modify-write patterns
// (demand+read, push+ack) are composed from multiple primitives by callers.
//
// HasRead is a pure query over a monotonic read cursor: there is no
// separate ack call, reading a message is what advances the cursor past
// its id.

package channel

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// Channel is a named FIFO with monotonically increasing push ids and a
// monotonic read cursor that automatically acknowledges every id it passes.
type Channel struct {
	Name string

	mu         sync.Mutex
	cond       *sync.Cond
	q          *queue.Queue
	nextID     uint64
	readCursor uint64 // number of messages Read so far; has_read(id) == readCursor > id

	// OnPush, if set, fires after every successful Push/Supply while the
	// channel is unlocked — the "main" channel wires this to post a
	// coalesced PendingChannelMessages event into the host frame pump.
	OnPush func()
}

type entry struct {
	id   uint64
	data []byte
}

// New returns an empty channel named name.
func New(name string) *Channel {
	c := &Channel{Name: name, q: queue.New()}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Lock acquires the channel's mutex explicitly, for callers composing
// multi-step read-modify-write sequences.
func (c *Channel) Lock() { c.mu.Lock() }

// Unlock releases the explicit lock.
func (c *Channel) Unlock() { c.mu.Unlock() }

// pushLocked appends data and returns its monotonically increasing id.
// Caller must hold c.mu.
func (c *Channel) pushLocked(data []byte) uint64 {
	id := c.nextID
	c.nextID++
	c.q.Add(entry{id: id, data: data})
	c.cond.Broadcast()
	return id
}

// Push appends data and returns its monotonically increasing id.
func (c *Channel) Push(data []byte) uint64 {
	c.mu.Lock()
	id := c.pushLocked(data)
	onPush := c.OnPush
	c.mu.Unlock()
	if onPush != nil {
		onPush()
	}
	return id
}

// Supply pushes data and, if timeout > 0, blocks until the read cursor
// advances past the returned id (the message has been delivered) or
// timeout elapses. Returns (delivered, id).
func (c *Channel) Supply(data []byte, timeout time.Duration) (bool, uint64) {
	c.mu.Lock()
	id := c.pushLocked(data)
	onPush := c.OnPush

	if timeout > 0 {
		deadline := time.Now().Add(timeout)
		for c.readCursor <= id {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				break
			}
			waitWithTimeout(c.cond, &c.mu, remaining)
		}
	}
	delivered := c.readCursor > id
	c.mu.Unlock()

	if onPush != nil {
		onPush()
	}
	return delivered, id
}

// Demand blocks until the channel is non-empty or timeout elapses, returning
// true if a message became available.
func (c *Channel) Demand(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.q.Length() == 0 {
		remaining := deadline.Sub(time.Now())
		if remaining <= 0 {
			return c.q.Length() > 0
		}
		waited := waitWithTimeout(c.cond, &c.mu, remaining)
		if !waited && c.q.Length() == 0 {
			return false
		}
	}
	return true
}

// Peek returns the oldest unread message without removing it.
func (c *Channel) Peek() ([]byte, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.q.Length() == 0 {
		return nil, 0, false
	}
	e := c.q.Peek().(entry)
	return e.data, e.id, true
}

// Read removes and returns the oldest message, advancing the read cursor
// past its id — the sole operation that makes HasRead(id) become true.
func (c *Channel) Read() ([]byte, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.q.Length() == 0 {
		return nil, 0, false
	}
	e := c.q.Remove().(entry)
	if e.id+1 > c.readCursor {
		c.readCursor = e.id + 1
	}
	c.cond.Broadcast()
	return e.data, e.id, true
}

// HasRead reports whether the read cursor has advanced past id. A pure
// query: it becomes true once that many Reads have happened, with no
// separate acknowledgement call.
func (c *Channel) HasRead(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readCursor > id
}

// IsRead is an alias for HasRead.
func (c *Channel) IsRead(id uint64) bool {
	return c.HasRead(id)
}

// GetCount returns the number of buffered, unread messages.
func (c *Channel) GetCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.q.Length()
}
