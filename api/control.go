// File: api/control.go
// Author: momentics <momentics@gmail.com>

package api

// Control is the runtime's management surface: dynamic configuration,
// counter snapshots, reload notification and probe registration. Satisfied
// by control.Control.
type Control interface {
	GetConfig() map[string]any
	SetConfig(cfg map[string]any) error
	Stats() map[string]any
	OnReload(fn func())
	RegisterDebugProbe(name string, fn func() any)
}
