// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics for the frame-pipelined runtime: frames completed, barrier
// wait time, work-unit yields, I/O op latency, and channel depth, backed by
// github.com/prometheus/client_golang collectors. GetSnapshot serves
// control.DebugProbes-style ad-hoc inspection, reading through to the live
// collector values.

package control

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/lune/api"
)

// MetricsRegistry wires the runtime's Prometheus collectors and exposes a
// point-in-time snapshot for debug probes.
type MetricsRegistry struct {
	mu      sync.RWMutex
	extra   map[string]any
	updated time.Time

	framesCompleted atomic.Int64
	workUnitYields  atomic.Int64
	bytesRead       atomic.Uint64
	bytesWritten    atomic.Uint64

	FramesCompleted prometheus.Counter
	BarrierWaitTime prometheus.Histogram
	WorkUnitYields  prometheus.Counter
	IOOpLatency     prometheus.Histogram
	IOBytes         *prometheus.CounterVec
	ChannelDepth    *prometheus.GaugeVec
}

// NewMetricsRegistry constructs and registers the runtime's collectors
// against reg. Pass prometheus.NewRegistry() for an isolated registry (as
// tests do) or prometheus.DefaultRegisterer for a process-wide one.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	mr := &MetricsRegistry{
		extra: make(map[string]any),
		FramesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lune_frames_completed_total",
			Help: "Total number of frames for which on_frame_done has fired.",
		}),
		BarrierWaitTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lune_barrier_wait_seconds",
			Help:    "Time a follower thread spends waiting on a barrier's release event.",
			Buckets: prometheus.DefBuckets,
		}),
		WorkUnitYields: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lune_work_unit_yields_total",
			Help: "Total number of non-zero yield tokens returned from work unit Exec calls.",
		}),
		IOOpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lune_io_op_latency_seconds",
			Help:    "Latency from AsyncOp submission to completion dispatch.",
			Buckets: prometheus.DefBuckets,
		}),
		IOBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lune_io_bytes_total",
			Help: "Bytes moved through the async I/O fabric, by direction.",
		}, []string{"dir"}),
		ChannelDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lune_channel_depth",
			Help: "Current number of buffered, unread messages per named channel.",
		}, []string{"channel"}),
	}
	reg.MustRegister(mr.FramesCompleted, mr.BarrierWaitTime, mr.WorkUnitYields, mr.IOOpLatency, mr.IOBytes, mr.ChannelDepth)
	return mr
}

// Set records an ad-hoc named metric value for debug snapshotting. It does
// not feed the Prometheus collectors above; use the typed fields or the
// Inc*/Observe* helpers for those.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.extra[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// IncFrameCompleted records one finished frame (on_frame_done fired).
func (mr *MetricsRegistry) IncFrameCompleted() {
	mr.framesCompleted.Add(1)
	mr.FramesCompleted.Inc()
}

// IncWorkUnitYield records one work unit Exec call returning a non-zero
// yield token.
func (mr *MetricsRegistry) IncWorkUnitYield() {
	mr.workUnitYields.Add(1)
	mr.WorkUnitYields.Inc()
}

// ObserveBarrierWait records seconds spent by a follower waiting on a
// barrier's release event.
func (mr *MetricsRegistry) ObserveBarrierWait(seconds float64) {
	mr.BarrierWaitTime.Observe(seconds)
}

// AddBytesRead accounts n bytes completed by read ops.
func (mr *MetricsRegistry) AddBytesRead(n int) {
	if n > 0 {
		mr.bytesRead.Add(uint64(n))
		mr.IOBytes.WithLabelValues("read").Add(float64(n))
	}
}

// AddBytesWritten accounts n bytes completed by write ops.
func (mr *MetricsRegistry) AddBytesWritten(n int) {
	if n > 0 {
		mr.bytesWritten.Add(uint64(n))
		mr.IOBytes.WithLabelValues("write").Add(float64(n))
	}
}

// Published assembles the externally reported counter set.
func (mr *MetricsRegistry) Published(startedAt time.Time) api.APIMetrics {
	return api.APIMetrics{
		FramesCompleted: mr.framesCompleted.Load(),
		WorkUnitYields:  mr.workUnitYields.Load(),
		BytesRead:       mr.bytesRead.Load(),
		BytesWritten:    mr.bytesWritten.Load(),
		StartedAt:       startedAt,
	}
}

// ObserveIOLatency records seconds from AsyncOp submission to completion.
func (mr *MetricsRegistry) ObserveIOLatency(seconds float64) {
	mr.IOOpLatency.Observe(seconds)
}

// SetChannelDepth publishes the current buffered-message count for a named
// channel.
func (mr *MetricsRegistry) SetChannelDepth(channel string, depth int) {
	mr.ChannelDepth.WithLabelValues(channel).Set(float64(depth))
}

// GetSnapshot returns the latest ad-hoc metrics set via Set, plus the
// frame/yield counters.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.extra)+2)
	for k, v := range mr.extra {
		out[k] = v
	}
	out["frames_completed"] = mr.framesCompleted.Load()
	out["work_unit_yields"] = mr.workUnitYields.Load()
	return out
}
