// File: facade/runtime_test.go
// Author: momentics <momentics@gmail.com>

package facade_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/lune/facade"
)

type countingWorld struct {
	steps int
}

func (w *countingWorld) Step(step float64, steps int)   { w.steps += steps }
func (w *countingWorld) SetPhysicsOffset(offset float64) {}

func TestRuntimeRunsFramesUntilShutdown(t *testing.T) {
	cfg := facade.DefaultConfig()
	cfg.WorkerCount = 1
	cfg.TargetFrameTime = 1.0 / 240.0

	rt, err := facade.New(cfg)
	require.NoError(t, err)

	world := &countingWorld{}
	rt.Engine.RegisterWorld("physics", world, 1.0/60.0, 1.0)

	go func() {
		time.Sleep(50 * time.Millisecond)
		rt.Shutdown()
	}()

	err = rt.Run(context.Background())
	require.NoError(t, err)

	snapshot := rt.Metrics.GetSnapshot()
	frames, _ := snapshot["frames_completed"].(int64)
	require.Greater(t, frames, int64(0))
}

func TestRuntimeRejectsConcurrentRun(t *testing.T) {
	cfg := facade.DefaultConfig()
	cfg.WorkerCount = 1

	rt, err := facade.New(cfg)
	require.NoError(t, err)

	runErr := make(chan error, 1)
	go func() { runErr <- rt.Run(context.Background()) }()
	time.Sleep(10 * time.Millisecond)

	require.Error(t, rt.Run(context.Background()))

	rt.Shutdown()
	require.NoError(t, <-runErr)
}

func TestRuntimeStopsOnContextCancel(t *testing.T) {
	cfg := facade.DefaultConfig()
	cfg.WorkerCount = 1

	rt, err := facade.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err = rt.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
