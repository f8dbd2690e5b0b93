// File: blob/iobuffer_test.go
// Author: momentics <momentics@gmail.com>

package blob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// After Write(n) then Read(n), rd == wr and wr is unchanged.
func TestIoBufferWriteThenReadRoundTrip(t *testing.T) {
	buf := NewIoBufferAlloc(16)

	n := buf.Write([]byte("abcde"))
	require.Equal(t, 5, n)
	wrBefore := buf.wr

	out := make([]byte, 5)
	n = buf.Read(out)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("abcde"), out)

	require.Equal(t, buf.wr, buf.rd)
	require.Equal(t, wrBefore, buf.wr)
	require.Equal(t, 0, buf.Len())
}

func TestIoBufferWindowInvariants(t *testing.T) {
	buf := NewIoBufferAlloc(8)
	require.Equal(t, 8, buf.Cap())
	require.Len(t, buf.AllocWrite(), 8)
	require.Len(t, buf.AllocRead(), 0)

	buf.Write([]byte("abc"))
	require.Len(t, buf.AllocWrite(), 5)
	require.Len(t, buf.AllocRead(), 3)

	// Writes past the end are clamped to the free window.
	n := buf.Write([]byte("0123456789"))
	require.Equal(t, 5, n)
	require.Len(t, buf.AllocWrite(), 0)
}

func TestIoBufferFromStringStartsReadable(t *testing.T) {
	buf := NewIoBufferFromString("hello")
	require.Equal(t, 5, buf.Len())

	out := make([]byte, 5)
	require.Equal(t, 5, buf.Read(out))
	require.Equal(t, []byte("hello"), out)
	require.Equal(t, 0, buf.Len())
}

func TestIoBufferFromBlobReleasesOnClose(t *testing.T) {
	released := false
	b := newBlob(func() { released = true })
	b.Resolved([]byte("content"), true)

	buf := NewIoBufferFromBlob(b)
	require.Equal(t, 7, buf.Len())

	buf.Close()
	require.True(t, released)

	// Close is idempotent.
	buf.Close()
}

func TestIoBufferCommitWriteAdvancesWindow(t *testing.T) {
	buf := NewIoBufferAlloc(8)
	copy(buf.AllocWrite(), "abc")
	buf.CommitWrite(3)
	require.Equal(t, 3, buf.Len())
	require.Equal(t, []byte("abc"), buf.AllocRead())

	// Commits past the end are clamped.
	buf.CommitWrite(100)
	require.Len(t, buf.AllocWrite(), 0)
	require.Equal(t, 8, buf.Len())
}

func TestIoBufferReset(t *testing.T) {
	buf := NewIoBufferAlloc(4)
	buf.Write([]byte("abcd"))
	buf.Read(make([]byte, 2))

	buf.Reset()
	require.Equal(t, 0, buf.Len())
	require.Len(t, buf.AllocWrite(), 4)
}
