// File: ioasync/file_test.go
// Author: momentics <momentics@gmail.com>

package ioasync

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario: create-or-truncate a file, append "hello" through the output
// stream, close, reopen, and read the whole content back as an immediate
// blob of exactly five bytes.
func TestAppendWriteThenReadToImmediateBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	f, err := Open(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	out := NewFileOutputStream(f)
	n, err := out.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.NoError(t, out.Close())

	f2, err := Open(path, os.O_RDONLY, 0)
	require.NoError(t, err)
	defer f2.Close()

	b, err := ReadToImmediateBlob(f2, 0, -1)
	require.NoError(t, err)
	require.True(t, b.IsResolved())
	require.False(t, b.Failed())
	require.Equal(t, []byte{0x68, 0x65, 0x6C, 0x6C, 0x6F}, b.Bytes())
}

func TestWriteAbsAppendOffsetExtendsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "append.bin")
	f, err := Open(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	defer f.Close()

	_, err = WriteAbs(f, 0, []byte("abc"))
	require.NoError(t, err)
	_, err = WriteAbs(f, AppendOffset, []byte("def"))
	require.NoError(t, err)

	got := make([]byte, 6)
	n, err := ReadAbs(f, 0, got)
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, []byte("abcdef"), got)
}

func TestReadAbsShortReadReportsEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	f, err := Open(path, os.O_RDONLY, 0)
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 10)
	n, err := ReadAbs(f, 0, buf)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("hello"), buf[:n])
	require.True(t, f.EOF())
}

func TestFileInputStreamAdvancesCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.bin")
	require.NoError(t, os.WriteFile(path, []byte("abcdef"), 0o644))

	f, err := Open(path, os.O_RDONLY, 0)
	require.NoError(t, err)
	in := NewFileInputStream(f)
	defer in.Close()

	first := make([]byte, 3)
	n, err := in.Read(first)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte("abc"), first)

	second := make([]byte, 3)
	n, err = in.Read(second)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte("def"), second)
}

func TestTruncateAndFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trunc.bin")
	f, err := Open(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	defer f.Close()

	_, err = WriteAbs(f, 0, []byte("0123456789"))
	require.NoError(t, err)
	require.NoError(t, f.Truncate(4))

	size, err := f.FileSize()
	require.NoError(t, err)
	require.Equal(t, int64(4), size)
}

func TestReadToFutureBlobResolvesAsynchronously(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.bin")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

	f, err := Open(path, os.O_RDONLY, 0)
	require.NoError(t, err)
	defer f.Close()

	b, err := ReadToFutureBlob(f, 0, 7)
	require.NoError(t, err)
	b.Wait()
	require.Equal(t, []byte("payload"), b.Bytes())
	require.False(t, b.Failed())
}
