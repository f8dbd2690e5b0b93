// File: facade/runtime.go
// Author: momentics <momentics@gmail.com>
//
// Runtime is the top-level façade: it constructs and wires every
// collaborator (clock, config, metrics, VFS, worker pool, engine, frame
// pump, channel registry, I/O executors, optional trace capture) and drives
// the per-frame admit/swap barrier sequence as the worker pool's external
// host.

package facade

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/momentics/lune/api"
	"github.com/momentics/lune/channel"
	"github.com/momentics/lune/clock"
	"github.com/momentics/lune/control"
	"github.com/momentics/lune/engine"
	"github.com/momentics/lune/exec"
	"github.com/momentics/lune/framepump"
	"github.com/momentics/lune/ioasync"
	"github.com/momentics/lune/trace"
	"github.com/momentics/lune/vfs"
	"github.com/momentics/lune/worker"
)

// Runtime owns every long-lived collaborator and the goroutine that drives
// frames through it.
type Runtime struct {
	Log     *logrus.Entry
	Clock   *clock.Clock
	Config  *control.ConfigStore
	Metrics *control.MetricsRegistry
	Debug   *control.DebugProbes
	Control api.Control
	Info    api.ServiceInfo
	VFS     *vfs.VFS
	Trace   *trace.Writer

	Pump     *framepump.Pump
	Pacer    *framepump.Pacer
	Pool     *worker.Pool
	Engine   *engine.Engine
	Channels *channel.Registry

	IOPool      *exec.IOCompletionPool
	MessageLoop *exec.MessageLoopExecutor
	Tasks       *exec.TaskThreadExecutor

	cfg *Config

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

var _ api.GracefulShutdown = (*Runtime)(nil)

// New constructs a fully wired, not-yet-started Runtime. A nil cfg uses
// DefaultConfig.
func New(cfg *Config) (*Runtime, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	log := logrus.NewEntry(logrus.StandardLogger())

	cs := control.NewConfigStore()
	cs.SetRuntime(control.RuntimeConfig{
		WorkerCount:     cfg.WorkerCount,
		TargetFrameTime: cfg.TargetFrameTime,
		NUMANode:        cfg.NUMANode,
		IOPoolSize:      cfg.IOPoolSize,
	})
	if cfg.ConfigPath != "" {
		if err := cs.LoadYAML(cfg.ConfigPath); err != nil {
			return nil, fmt.Errorf("facade: loading config: %w", err)
		}
	}
	rc := cs.Runtime()

	metrics := control.NewMetricsRegistry(prometheus.NewRegistry())
	debug := control.NewDebugProbes()

	clk := clock.New()

	vfsInst := vfs.New()
	for _, r := range cfg.VFSRoots {
		vfsInst.RegisterRoot(r.Prefix, r.BaseDir, r.ReadOnly)
	}

	var tw *trace.Writer
	if cfg.TracePath != "" {
		w, err := trace.Open(cfg.TracePath)
		if err != nil {
			return nil, fmt.Errorf("facade: opening trace file: %w", err)
		}
		tw = w
	}

	pump := framepump.New()
	pacer := framepump.NewPacer(pump, clk, rc.TargetFrameTime)

	pool := worker.NewPool(rc.WorkerCount, nil, rc.NUMANode, log)
	pool.Common.OnFrameDone = func() {
		metrics.IncFrameCompleted()
		if tw != nil {
			_ = tw.Instant("frame_done", "frame", 0, float64(clk.MonotonicMicros())/1e6)
		}
	}
	pool.Common.OnYield = metrics.IncWorkUnitYield
	pool.Common.OnBarrierWait = metrics.ObserveBarrierWait
	ioasync.SetObserver(metrics)

	eng := engine.New(pool, log)
	channels := channel.NewRegistry(pump)

	ioPool := exec.NewIOCompletionPool(rc.IOPoolSize)
	msgLoop := exec.NewMessageLoopExecutor()
	tasks := exec.NewTaskThreadExecutor()

	info := api.ServiceInfo{
		Name:      cfg.ServiceName,
		Version:   Version,
		Build:     Build,
		StartedAt: time.Now(),
	}

	debug.RegisterProbe("metrics", func() any { return metrics.GetSnapshot() })
	debug.RegisterProbe("config", func() any { return cs.GetSnapshot() })
	debug.RegisterProbe("channels", func() any { return channels.Names() })
	debug.RegisterProbe("service", func() any { return info })
	debug.RegisterProbe("counters", func() any { return metrics.Published(info.StartedAt) })
	control.RegisterPlatformProbes(debug)

	cs.OnReload(func() {
		nc := cs.Runtime()
		pacer.TargetFrameTime = nc.TargetFrameTime
	})
	control.RegisterReloadHook(func() {
		metrics.Set("config.last_reload_unix_micros", clk.RealtimeMicros())
	})

	ctrl := control.NewControl(cs, metrics, debug)

	return &Runtime{
		Log:         log,
		Clock:       clk,
		Config:      cs,
		Metrics:     metrics,
		Debug:       debug,
		Control:     ctrl,
		Info:        info,
		VFS:         vfsInst,
		Trace:       tw,
		Pump:        pump,
		Pacer:       pacer,
		Pool:        pool,
		Engine:      eng,
		Channels:    channels,
		IOPool:      ioPool,
		MessageLoop: msgLoop,
		Tasks:       tasks,
		cfg:         cfg,
	}, nil
}

// Run starts the worker pool and drives frames until ctx is cancelled or
// Shutdown is called. It blocks until teardown completes.
func (rt *Runtime) Run(ctx context.Context) error {
	rt.mu.Lock()
	if rt.running {
		rt.mu.Unlock()
		return fmt.Errorf("facade: runtime already running")
	}
	rt.running = true
	rt.stopCh = make(chan struct{})
	rt.mu.Unlock()

	defer func() {
		rt.mu.Lock()
		rt.running = false
		rt.mu.Unlock()
	}()

	rt.Pool.Start()

	var frameIndex uint64
	for {
		select {
		case <-ctx.Done():
			rt.teardown()
			return ctx.Err()
		case <-rt.stopCh:
			rt.teardown()
			return nil
		default:
		}

		dt, _ := rt.Pacer.Tick()
		batch := rt.Pump.PopEvents()
		for _, ev := range batch {
			rt.dispatch(ev, dt, &frameIndex)
		}
	}
}

// dispatch handles one drained host event, admitting/releasing the worker
// pool's per-frame barrier at the fixed points in the event sequence
// established by framepump.Pacer.Tick.
func (rt *Runtime) dispatch(ev api.HostEvent, dt float64, frameIndex *uint64) {
	switch ev.Type {
	case api.EventSysUpdate:
		if err := rt.Engine.SysUpdate(dt); err != nil {
			control.Fatal(rt.Log, "engine frame step failed", "error", err)
			return
		}
		rt.Pool.AdmitFrame(*frameIndex)
	case api.EventSwap:
		rt.Pool.ReleaseSwap(*frameIndex)
		*frameIndex++
	case api.EventPendingChannelMessages:
		if c := rt.Channels.Get(channel.MainChannelName); c != nil {
			rt.Metrics.SetChannelDepth(channel.MainChannelName, c.GetCount())
		}
	}
	rt.MessageLoop.DrainPending()
}

// Published returns the runtime's externally reported counters.
func (rt *Runtime) Published() api.APIMetrics {
	return rt.Metrics.Published(rt.Info.StartedAt)
}

// Shutdown requests that the frame loop stop and the worker pool drain,
// satisfying api.GracefulShutdown. Safe to call once; subsequent calls are
// no-ops returning nil.
func (rt *Runtime) Shutdown() error {
	rt.mu.Lock()
	if !rt.running {
		rt.mu.Unlock()
		return nil
	}
	rt.running = false
	stopCh := rt.stopCh
	rt.mu.Unlock()

	select {
	case <-stopCh:
	default:
		close(stopCh)
	}
	return nil
}

func (rt *Runtime) teardown() {
	rt.Engine.Shutdown()
	rt.IOPool.Close()
	rt.Tasks.Close()
	if rt.Trace != nil {
		_ = rt.Trace.Close()
	}
}
