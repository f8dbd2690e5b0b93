// File: blob/iobuffer.go
// Author: momentics <momentics@gmail.com>
//
// IoBuffer is a windowed view over memory: {base, rd, wr, end}. AllocRead
// exposes the valid range [rd,wr); AllocWrite exposes free space [wr,end).
// Ownership variants: string-owning, alloc-owning, blob-owning, and
// non-owning views all reduce to the same base+window.

package blob

// IoBuffer is a read/write cursor pair over a fixed byte region.
type IoBuffer struct {
	base  []byte
	rd    int
	wr    int
	end   int
	owner *Blob // non-nil for the blob-owning variant; released on Close
}

// NewIoBuffer builds an empty non-owning view over base; the caller retains
// ownership of base's backing memory.
func NewIoBuffer(base []byte) *IoBuffer {
	return &IoBuffer{base: base, end: len(base)}
}

// NewIoBufferAlloc builds an empty buffer owning a fresh region of size
// bytes.
func NewIoBufferAlloc(size int) *IoBuffer {
	return NewIoBuffer(make([]byte, size))
}

// NewIoBufferFromString builds a string-owning view whose content is an
// immutable copy of s's bytes; the whole window starts readable.
func NewIoBufferFromString(s string) *IoBuffer {
	b := []byte(s)
	return &IoBuffer{base: b, wr: len(b), end: len(b)}
}

// NewIoBufferFromBlob builds a blob-owning view: base aliases the blob's
// resolved bytes, the whole window starts readable, and Close releases the
// blob reference.
func NewIoBufferFromBlob(b *Blob) *IoBuffer {
	data := b.Bytes()
	return &IoBuffer{base: data, wr: len(data), end: len(data), owner: b}
}

// AllocRead returns the valid, unread range [rd,wr).
func (io *IoBuffer) AllocRead() []byte {
	return io.base[io.rd:io.wr]
}

// AllocWrite returns the free space [wr,end) available for writing.
func (io *IoBuffer) AllocWrite() []byte {
	return io.base[io.wr:io.end]
}

// Read copies up to len(p) unread bytes into p and advances rd, maintaining
// 0 <= rd <= wr <= end.
func (io *IoBuffer) Read(p []byte) int {
	n := copy(p, io.AllocRead())
	io.rd += n
	return n
}

// Write copies up to len(p) bytes into the free space and advances wr.
func (io *IoBuffer) Write(p []byte) int {
	n := copy(io.AllocWrite(), p)
	io.wr += n
	return n
}

// CommitWrite marks n bytes of the write window as filled in place (e.g. by
// an I/O op that wrote directly into AllocWrite's slice), advancing wr.
func (io *IoBuffer) CommitWrite(n int) {
	io.wr += n
	if io.wr > io.end {
		io.wr = io.end
	}
}

// Reset rewinds rd/wr to the start of base, discarding content.
func (io *IoBuffer) Reset() {
	io.rd, io.wr = 0, 0
}

// Len returns the number of unread bytes.
func (io *IoBuffer) Len() int { return io.wr - io.rd }

// Cap returns the total window size.
func (io *IoBuffer) Cap() int { return io.end }

// Close releases the owning blob reference, if any; a no-op for non-owning
// and string-owning views.
func (io *IoBuffer) Close() {
	if io.owner != nil {
		io.owner.Release()
		io.owner = nil
	}
}
