// File: engine/engine.go
// Author: momentics <momentics@gmail.com>
//
// Engine glue: registers worlds and screens, drives each world's fixed-step
// physics accumulator, and rebuilds the per-frame phase program and ordered
// work-group list whenever the work structure changes.

package engine

import (
	"fmt"
	"sync"

	"github.com/momentics/lune/worker"
	"github.com/sirupsen/logrus"
)

// World advances a fixed-step physics simulation. Step(step, n) must be
// called n times' worth of fixed-size steps; SetPhysicsOffset publishes the
// remaining fractional accumulator for interpolated rendering.
type World interface {
	Step(step float64, steps int)
	SetPhysicsOffset(offset float64)
}

// Screen is the graphics collaborator this engine drives only through its
// lifecycle contract; no GPU-backed implementation lives in this module.
type Screen interface {
	BeginFrame() error
	ScreenLost()
}

// worldState tracks one registered world's accumulator alongside its fixed
// step size and playback speed.
type worldState struct {
	world World
	step  float64
	speed float64
	accum float64
}

// Engine owns the registered worlds/screens, the worker pool they drive,
// and the work-group list the pool consumes each frame.
type Engine struct {
	log *logrus.Entry

	mu          sync.Mutex
	worlds      map[string]*worldState
	worldOrder  []string
	screens     map[string]Screen
	screenOrder []string

	needWorkRebuild bool
	workGroups      []*worker.WorkGroup
	nextGroup       int

	pool *worker.Pool

	// BuildWorkGroups is called during a rebuild to produce the ordered
	// list of work groups for the new frame structure. A nil function (or
	// one returning an empty slice) yields a valid no-op frame: no work
	// groups, a single FrameEnd phase.
	BuildWorkGroups func() []*worker.WorkGroup
}

// New builds an Engine with no worlds or screens registered. If pool is
// non-nil, the engine installs itself as the pool's barrier leader callback
// (Common.UpdateFn) so that work groups beyond the first are chained across
// barriers.
func New(pool *worker.Pool, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	e := &Engine{
		log:     log,
		pool:    pool,
		worlds:  make(map[string]*worldState),
		screens: make(map[string]Screen),
	}
	if pool != nil {
		pool.Common.UpdateFn = e.onBarrier
	}
	e.needWorkRebuild = true
	return e
}

// RegisterWorld registers w under name with the given fixed step size and
// playback speed. Re-registering a name replaces the prior entry and marks
// the work structure for rebuild.
func (e *Engine) RegisterWorld(name string, w World, step, speed float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.worlds[name]; !exists {
		e.worldOrder = append(e.worldOrder, name)
	}
	e.worlds[name] = &worldState{world: w, step: step, speed: speed}
	e.needWorkRebuild = true
}

// UnregisterWorld removes name, marking the work structure for rebuild.
func (e *Engine) UnregisterWorld(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.worlds[name]; !exists {
		return
	}
	delete(e.worlds, name)
	for i, n := range e.worldOrder {
		if n == name {
			e.worldOrder = append(e.worldOrder[:i], e.worldOrder[i+1:]...)
			break
		}
	}
	e.needWorkRebuild = true
}

// RegisterScreen registers s under name, idempotently (same replace-on-name
// semantics as RegisterWorld).
func (e *Engine) RegisterScreen(name string, s Screen) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.screens[name]; !exists {
		e.screenOrder = append(e.screenOrder, name)
	}
	e.screens[name] = s
	e.needWorkRebuild = true
}

// RequestWorkRebuild marks the phase program / work-group list dirty; the
// next SysUpdate rebuilds both before publishing any work.
func (e *Engine) RequestWorkRebuild() {
	e.mu.Lock()
	e.needWorkRebuild = true
	e.mu.Unlock()
}

// rebuildLocked rebuilds the pool's phase program and resets the engine's
// work-group cursor. One DoWork entry is emitted per registered work group
// — each is separated from the next by the barrier DoWork falls through to
// on exhaustion, and e.onBarrier (the pool's UpdateFn) publishes group[i+1]
// as that barrier's leader-side effect, so by the time program[i+1] runs,
// CurrentWorkGroup already holds group i+1. The program always terminates
// with worker.FrameEnd. Caller must hold e.mu.
func (e *Engine) rebuildLocked() {
	if e.BuildWorkGroups != nil {
		e.workGroups = e.BuildWorkGroups()
	} else {
		e.workGroups = nil
	}

	var program []worker.PhaseFunc
	if len(e.workGroups) == 0 {
		// No work groups: a single FrameEnd phase makes a valid no-op
		// frame.
		program = []worker.PhaseFunc{worker.FrameEnd}
	} else {
		program = make([]worker.PhaseFunc, len(e.workGroups)+1)
		for i := range e.workGroups {
			program[i] = worker.DoWork
		}
		program[len(e.workGroups)] = worker.FrameEnd
	}

	e.nextGroup = 0
	if e.pool != nil {
		e.pool.RebuildProgram(program)
	}
	e.needWorkRebuild = false
}

// beginScreenFrames calls BeginFrame on every registered screen, retrying
// exactly once via ScreenLost on failure before treating the device as
// unrecoverable.
func (e *Engine) beginScreenFrames() error {
	for _, name := range e.screenOrder {
		s := e.screens[name]
		if err := s.BeginFrame(); err != nil {
			e.log.WithFields(logrus.Fields{"screen": name, "err": err}).Warn("screen lost, retrying once")
			s.ScreenLost()
			if err := s.BeginFrame(); err != nil {
				return fmt.Errorf("engine: screen %q permanently lost: %w", name, err)
			}
		}
	}
	return nil
}

// stepWorlds advances every registered world's fixed-step accumulator by dt
// scaled by its speed: accum += dt*speed; steps = floor(accum/step);
// accum -= steps*step. The floor allows 1e-9 of float rounding, so an
// accumulator of exactly k steps yields k, and accum never goes negative.
// Integration stays deterministic regardless of frame cadence.
func (e *Engine) stepWorlds(dt float64) {
	for _, name := range e.worldOrder {
		ws := e.worlds[name]
		ws.accum += dt * ws.speed
		if ws.step <= 0 {
			continue
		}
		steps := int(ws.accum/ws.step + 1e-9)
		ws.accum -= float64(steps) * ws.step
		if ws.accum < 0 {
			ws.accum = 0
		}
		if steps > 0 {
			ws.world.Step(ws.step, steps)
		}
		ws.world.SetPhysicsOffset(ws.accum)
	}
}

// SysUpdate runs one engine frame step:
//  1. rebuild the phase program and work-group list if dirty.
//  2. begin-frame every screen, retrying once on loss.
//  3. advance every world's physics accumulator.
//  4. publish the first work group to the pool and release it.
func (e *Engine) SysUpdate(dt float64) error {
	e.mu.Lock()
	if e.needWorkRebuild {
		e.rebuildLocked()
	}
	e.mu.Unlock()

	if err := e.beginScreenFrames(); err != nil {
		return err
	}

	e.stepWorlds(dt)

	e.mu.Lock()
	var first *worker.WorkGroup
	if e.nextGroup < len(e.workGroups) {
		first = e.workGroups[e.nextGroup]
	}
	e.mu.Unlock()

	if e.pool != nil {
		e.pool.Common.PublishWorkGroup(first)
		e.pool.Common.SetDt(dt)
	}
	return nil
}

// onBarrier is installed as the pool's Common.UpdateFn: the barrier leader
// calls it with the subseq of the barrier just completed (0 for the barrier
// following the first DoWork phase), and it publishes workGroups[subseq+1]
// as the new current work group, nil once the list is exhausted, which
// DoWork treats as "fall straight through to Sync" on the next phase.
func (e *Engine) onBarrier(subseq int) {
	e.mu.Lock()
	next := subseq + 1
	e.nextGroup = next
	var wg *worker.WorkGroup
	if next < len(e.workGroups) {
		wg = e.workGroups[next]
	}
	e.mu.Unlock()

	if e.pool != nil {
		e.pool.Common.PublishWorkGroup(wg)
	}
}

// Shutdown drains in-flight work and stops the worker pool: the currently
// published group is fully claimed before worker threads are released.
func (e *Engine) Shutdown() {
	if e.pool != nil {
		e.pool.Shutdown()
	}
}
