// File: ioasync/blobio.go
// Author: momentics <momentics@gmail.com>
//
// Blob-returning read helpers: allocate a blob sized to the request (or the
// full file), wrap it in an IoBuffer, issue a max-size read op whose
// completion resolves the blob with its error flag.

package ioasync

import (
	"github.com/momentics/lune/blob"
)

// ReadToFutureBlob allocates a blob of size bytes (or the remaining file
// size when size < 0) at offset and returns it unresolved; it resolves when
// the underlying read completes.
func ReadToFutureBlob(f File, offset uint64, size int) (*blob.Blob, error) {
	if size < 0 {
		total, err := f.FileSize()
		if err != nil {
			return nil, err
		}
		if offset != AppendOffset && int64(offset) < total {
			size = int(total - int64(offset))
		} else {
			size = int(total)
		}
	}
	b := blob.NewDynamic()
	buf := blob.NewIoBufferAlloc(size)
	op := NewAsyncOp(buf.AllocWrite(), offset)
	op.OnComplete(nil, func(o *AsyncOp) {
		buf.CommitWrite(o.Transferred)
		b.Set(buf.AllocRead(), o.Err != nil)
		o.Release()
	})
	if err := f.BeginRead(op); err != nil {
		op.Release()
		return nil, err
	}
	return b, nil
}

// ReadToImmediateBlob behaves as ReadToFutureBlob but additionally waits on
// the blob before returning.
func ReadToImmediateBlob(f File, offset uint64, size int) (*blob.Blob, error) {
	b, err := ReadToFutureBlob(f, offset, size)
	if err != nil {
		return nil, err
	}
	b.Wait()
	return b, nil
}
