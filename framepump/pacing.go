// File: framepump/pacing.go
// Author: momentics <momentics@gmail.com>
//
// Frame pacing: each top-of-frame the host updates timing from the
// monotonic clock, sleeps if dt is far under the target frame time, drains
// the message loop to idle, and appends the fixed per-frame event sequence.

package framepump

import (
	"time"

	"github.com/momentics/lune/api"
	"github.com/momentics/lune/clock"
)

// Pacer drives Pump's per-frame timing and fixed event sequence.
type Pacer struct {
	Pump            *Pump
	Clock           *clock.Clock
	TargetFrameTime float64 // seconds, e.g. 1.0/60
	lastFrame       time.Duration
	sleepFn         func(time.Duration)
}

// NewPacer builds a Pacer over pump/clock with the given target frame time
// in seconds.
func NewPacer(pump *Pump, c *clock.Clock, targetFrameTime float64) *Pacer {
	return &Pacer{Pump: pump, Clock: c, TargetFrameTime: targetFrameTime, sleepFn: time.Sleep}
}

// Tick performs one top-of-frame step: update timing, sleep if dt is far
// under target, drain the message loop to idle, and post the fixed
// UserUpdate/SysUpdate/UserDraw/Swap/LateUserUpdate sequence for the new
// frame. Returns the paced and raw delta times in seconds, in that order;
// the paced value equals the raw one.
func (p *Pacer) Tick() (dt, rawDt float64) {
	now := p.Clock.Now()
	rawDt = now.Seconds() - p.lastFrame.Seconds()
	p.lastFrame = now

	threshold := 0.75 * p.TargetFrameTime
	if rawDt < threshold {
		p.sleepFn(time.Duration((threshold - rawDt) * float64(time.Second)))
	}

	p.Pump.RunUntilIdle()

	dt = rawDt
	p.Pump.Post(api.HostEvent{Type: api.EventUserUpdate, Args: [5]float64{dt}})
	p.Pump.Post(api.HostEvent{Type: api.EventSysUpdate, Args: [5]float64{rawDt}})
	p.Pump.Post(api.HostEvent{Type: api.EventUserDraw, Args: [5]float64{dt}})
	p.Pump.Post(api.HostEvent{Type: api.EventSwap, Args: [5]float64{rawDt}})
	p.Pump.Post(api.HostEvent{Type: api.EventLateUserUpdate, Args: [5]float64{dt}})
	return dt, rawDt
}
