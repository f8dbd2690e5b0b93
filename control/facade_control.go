// control/facade_control.go
// Author: momentics <momentics@gmail.com>
//
// Control composes ConfigStore, MetricsRegistry, and DebugProbes behind the
// single api.Control contract.

package control

import "github.com/momentics/lune/api"

// Control is the unified dynamic-config/metrics/debug surface exposed to a
// Runtime's collaborators.
type Control struct {
	cfg     *ConfigStore
	metrics *MetricsRegistry
	debug   *DebugProbes
}

var _ api.Control = (*Control)(nil)

// NewControl composes cfg/metrics/debug into a single api.Control.
func NewControl(cfg *ConfigStore, metrics *MetricsRegistry, debug *DebugProbes) *Control {
	return &Control{cfg: cfg, metrics: metrics, debug: debug}
}

// GetConfig returns the ad-hoc config snapshot.
func (c *Control) GetConfig() map[string]any {
	return c.cfg.GetSnapshot()
}

// SetConfig merges newCfg into the ad-hoc config and dispatches reload.
func (c *Control) SetConfig(newCfg map[string]any) error {
	c.cfg.SetConfig(newCfg)
	return nil
}

// Stats returns the live metrics snapshot.
func (c *Control) Stats() map[string]any {
	return c.metrics.GetSnapshot()
}

// OnReload registers fn to run whenever the config changes.
func (c *Control) OnReload(fn func()) {
	c.cfg.OnReload(fn)
}

// RegisterDebugProbe registers a named debug hook.
func (c *Control) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}
