// File: ioasync/asyncop_test.go
// Author: momentics <momentics@gmail.com>

package ioasync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/lune/api"
	"github.com/momentics/lune/fake"
)

func TestAsyncOpCompletesInlineWhenNoExecutorSet(t *testing.T) {
	allocBefore := AllocCount()
	op := NewAsyncOp([]byte("data"), 0)
	require.Equal(t, allocBefore+1, AllocCount())

	fired := false
	op.OnComplete(nil, func(o *AsyncOp) { fired = true })

	err := op.Complete(4, nil)
	require.NoError(t, err)
	require.True(t, fired)
	require.Equal(t, 4, op.Transferred)
}

func TestAsyncOpCompletesViaExecutorWhenSet(t *testing.T) {
	op := NewAsyncOp([]byte("data"), AppendOffset)
	exec := &fake.FakeExecutor{}
	fired := false
	op.OnComplete(exec, func(o *AsyncOp) { fired = true })

	err := op.Complete(4, nil)
	require.NoError(t, err)
	require.True(t, fired)
	require.Equal(t, 1, exec.Submitted)
}

func TestAsyncOpDoubleCompleteReturnsProtocolViolation(t *testing.T) {
	op := NewAsyncOp([]byte("x"), 0)
	require.NoError(t, op.Complete(1, nil))

	err := op.Complete(2, nil)
	require.Error(t, err)

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, api.ErrCodeProtocolViolation, apiErr.Code)

	require.Equal(t, 1, op.Transferred, "second Complete must not overwrite Transferred")
}

func TestAsyncOpReleaseCountsExactlyOnce(t *testing.T) {
	releaseBefore := ReleaseCount()
	op := NewAsyncOp([]byte("y"), 0)

	op.Release()
	op.Release()

	require.Equal(t, releaseBefore+1, ReleaseCount())
}

func TestAsyncOpReleaseRecyclesDescriptorForNewAsyncOp(t *testing.T) {
	op := NewAsyncOp([]byte("z"), 0)
	op.Release()

	recycled := NewAsyncOp([]byte("reused"), 7)
	require.Equal(t, "reused", string(recycled.SG[0].Data))
	require.Equal(t, uint64(7), recycled.Offset)
	require.False(t, recycled.released.Load(), "recycled descriptor must not start out released")

	require.NoError(t, recycled.Complete(6, nil))
}

func TestNewScatterGatherOpAssemblesSegmentsFromBufferBatch(t *testing.T) {
	bufs := []api.Buffer{
		fake.NewBuffer([]byte("abc"), 0),
		fake.NewBuffer([]byte("de"), 0),
	}
	op := NewScatterGatherOp(bufs, 0)

	require.Len(t, op.SG, 2)
	require.Equal(t, "abc", string(op.SG[0].Data))
	require.Equal(t, "de", string(op.SG[1].Data))
	require.NotNil(t, op.HoldAlive, "batch must be kept alive until completion")
}
