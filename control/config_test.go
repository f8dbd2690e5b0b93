// control/config_test.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cs := NewConfigStore()
	rt := cs.Runtime()
	require.Equal(t, 4, rt.WorkerCount)
	require.InDelta(t, 1.0/60.0, rt.TargetFrameTime, 1e-9)
}

func TestLoadYAMLMergesAndReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("worker_count: 8\nnuma_node: 1\n"), 0o644))

	cs := NewConfigStore()
	reloaded := make(chan struct{}, 1)
	cs.OnReload(func() { reloaded <- struct{}{} })

	require.NoError(t, cs.LoadYAML(path))

	select {
	case <-reloaded:
	case <-time.After(time.Second):
		t.Fatal("reload hook did not fire")
	}

	rt := cs.Runtime()
	require.Equal(t, 8, rt.WorkerCount)
	require.Equal(t, 1, rt.NUMANode)
	// Untouched fields keep their defaults.
	require.InDelta(t, 1.0/60.0, rt.TargetFrameTime, 1e-9)
}

func TestLoadYAMLMissingFileErrors(t *testing.T) {
	cs := NewConfigStore()
	require.Error(t, cs.LoadYAML("/nonexistent/config.yaml"))
}

func TestSetConfigSnapshotIsolated(t *testing.T) {
	cs := NewConfigStore()
	cs.SetConfig(map[string]any{"foo": "bar"})
	snap := cs.GetSnapshot()
	snap["foo"] = "mutated"
	require.Equal(t, "bar", cs.GetSnapshot()["foo"])
}

// TestSetConfigAlsoTriggersGlobalReloadHooks covers dispatchReload's two
// notification paths: per-instance OnReload listeners and the process-wide
// hooks registered via RegisterReloadHook, fired together on every change.
func TestSetConfigAlsoTriggersGlobalReloadHooks(t *testing.T) {
	cs := NewConfigStore()
	fired := make(chan struct{}, 1)
	RegisterReloadHook(func() { fired <- struct{}{} })

	cs.SetConfig(map[string]any{"k": "v"})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("global reload hook did not fire")
	}
}
