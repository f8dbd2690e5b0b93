// File: ioasync/file.go
// Author: momentics <momentics@gmail.com>
//
// File handle with begin_read/begin_write/map over an AsyncOp descriptor,
// plus the synchronous shims (Read/Write/ReadAbs/WriteAbs) that allocate a
// local one-shot event, configure an op to signal it, and block for the
// result. Completion runs on an Executor when one is attached to the op,
// otherwise inline on the calling goroutine — there is no real OS-level
// overlapped I/O in this runtime, so BeginRead/BeginWrite perform the
// transfer synchronously and call Complete immediately, which is observably
// identical to "async with an executor that happens to run inline".

package ioasync

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/momentics/lune/blob"
	"github.com/momentics/lune/syncutil"
)

// File is the async I/O surface over an OS file.
type File interface {
	BeginRead(op *AsyncOp) error
	BeginWrite(op *AsyncOp) error
	Flush() error
	Truncate(size int64) error
	FileSize() (int64, error)
	EOF() bool
	MapRegion(offset int64, size int, ro bool) (*blob.Blob, error)
	Close() error
}

// osFile is the concrete File backed by *os.File.
type osFile struct {
	mu       sync.Mutex
	f        *os.File
	path     string
	position int64
	eof      bool
}

// Open opens path for the async File surface. mode follows the vfs
// package's OpenMode constants via flags passed in directly here.
func Open(path string, flags int, perm os.FileMode) (File, error) {
	f, err := os.OpenFile(path, flags, perm)
	if err != nil {
		return nil, err
	}
	return &osFile{f: f, path: path}, nil
}

func (f *osFile) resolveOffset(op *AsyncOp) (int64, error) {
	if op.Offset == AppendOffset {
		return f.f.Seek(0, io.SeekEnd)
	}
	return int64(op.Offset), nil
}

// BeginRead takes ownership of op and completes it via op's executor (or
// inline) once the scatter/gather list has been filled.
func (f *osFile) BeginRead(op *AsyncOp) error {
	start := time.Now()
	f.mu.Lock()
	off, err := f.resolveOffset(op)
	if err != nil {
		f.mu.Unlock()
		op.Complete(0, err)
		return err
	}
	total := 0
	for _, seg := range op.SG {
		n, rerr := f.f.ReadAt(seg.Data, off+int64(total))
		total += n
		if rerr == io.EOF {
			f.eof = true
			f.mu.Unlock()
			observeTransfer(true, total, start)
			op.Complete(total, rerr)
			return nil
		}
		if rerr != nil {
			f.mu.Unlock()
			observeTransfer(true, total, start)
			op.Complete(total, rerr)
			return rerr
		}
	}
	f.position = off + int64(total)
	f.mu.Unlock()
	observeTransfer(true, total, start)
	op.Complete(total, nil)
	return nil
}

// BeginWrite takes ownership of op and completes it once every segment has
// been written.
func (f *osFile) BeginWrite(op *AsyncOp) error {
	start := time.Now()
	f.mu.Lock()
	off, err := f.resolveOffset(op)
	if err != nil {
		f.mu.Unlock()
		op.Complete(0, err)
		return err
	}
	total := 0
	for _, seg := range op.SG {
		n, werr := f.f.WriteAt(seg.Data, off+int64(total))
		total += n
		if werr != nil {
			f.mu.Unlock()
			observeTransfer(false, total, start)
			op.Complete(total, werr)
			return werr
		}
	}
	f.position = off + int64(total)
	f.mu.Unlock()
	observeTransfer(false, total, start)
	op.Complete(total, nil)
	return nil
}

// EOF reports whether a read has hit end-of-file since open.
func (f *osFile) EOF() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.eof
}

func (f *osFile) Flush() error { return f.f.Sync() }

func (f *osFile) Truncate(size int64) error { return f.f.Truncate(size) }

func (f *osFile) FileSize() (int64, error) {
	fi, err := f.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

func (f *osFile) MapRegion(offset int64, size int, ro bool) (*blob.Blob, error) {
	return blob.NewMmap(f.path, offset, size, ro)
}

// Close releases the underlying OS handle.
func (f *osFile) Close() error { return f.f.Close() }

// Read performs a synchronous read of len(p) bytes at the file's current
// cursor, a shim over BeginRead.
func Read(f File, p []byte) (int, error) {
	return ReadAbs(f, uint64(cursorOf(f)), p)
}

// ReadAbs performs a synchronous read at an absolute offset without moving
// the file's logical cursor concept (the osFile cursor is still updated by
// BeginRead; ReadAbs exists for callers that track their own position).
func ReadAbs(f File, offset uint64, p []byte) (int, error) {
	done := syncutil.NewOneShotEvent()
	op := NewAsyncOp(p, offset)
	var n int
	var opErr error
	op.OnComplete(nil, func(o *AsyncOp) {
		n, opErr = o.Transferred, o.Err
		done.Signal()
	})
	if err := f.BeginRead(op); err != nil {
		op.Release()
		return 0, err
	}
	done.Wait()
	op.Release()
	return n, opErr
}

// Write performs a synchronous write of p at the file's current cursor.
func Write(f File, p []byte) (int, error) {
	return WriteAbs(f, uint64(cursorOf(f)), p)
}

// WriteAbs performs a synchronous write at an absolute offset; offset may be
// AppendOffset.
func WriteAbs(f File, offset uint64, p []byte) (int, error) {
	done := syncutil.NewOneShotEvent()
	op := NewAsyncOp(p, offset)
	var n int
	var opErr error
	op.OnComplete(nil, func(o *AsyncOp) {
		n, opErr = o.Transferred, o.Err
		done.Signal()
	})
	if err := f.BeginWrite(op); err != nil {
		op.Release()
		return 0, err
	}
	done.Wait()
	op.Release()
	return n, opErr
}

func cursorOf(f File) int64 {
	if of, ok := f.(*osFile); ok {
		of.mu.Lock()
		defer of.mu.Unlock()
		return of.position
	}
	return 0
}
