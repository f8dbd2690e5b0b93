// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with dynamic update and hot-reload
// propagation. RuntimeConfig is the set of tunable knobs (worker count,
// target frame time, NUMA node, I/O pool size) loaded from a YAML document
// via gopkg.in/yaml.v3. There is no CLI/flag-parsing surface; hosts embed
// the runtime and hand it a config directly.

package control

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// RuntimeConfig is the runtime-tunable subset of engine/pool/I-O parameters.
type RuntimeConfig struct {
	WorkerCount     int     `yaml:"worker_count"`
	TargetFrameTime float64 `yaml:"target_frame_time"`
	NUMANode        int     `yaml:"numa_node"`
	IOPoolSize      int     `yaml:"io_pool_size"`
}

// DefaultRuntimeConfig returns the conservative defaults used when no
// config file is supplied.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		WorkerCount:     4,
		TargetFrameTime: 1.0 / 60.0,
		NUMANode:        -1,
		IOPoolSize:      2,
	}
}

// ConfigStore is a dynamic key/value map with atomic snapshot and listener
// support, plus a typed RuntimeConfig loaded from YAML.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	runtime   RuntimeConfig
	listeners []func()
}

// NewConfigStore initializes a new config store with DefaultRuntimeConfig
// and no dynamic keys.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:  make(map[string]any),
		runtime: DefaultRuntimeConfig(),
	}
}

// LoadYAML reads path and merges it into the store's RuntimeConfig, then
// dispatches reload. A missing or unparsable file is returned as an error
// and leaves the store unchanged.
func (cs *ConfigStore) LoadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("control: read config %s: %w", path, err)
	}
	cs.mu.Lock()
	cfg := cs.runtime
	cs.mu.Unlock()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("control: parse config %s: %w", path, err)
	}

	cs.mu.Lock()
	cs.runtime = cfg
	cs.mu.Unlock()
	cs.dispatchReload()
	return nil
}

// Runtime returns a copy of the current RuntimeConfig.
func (cs *ConfigStore) Runtime() RuntimeConfig {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.runtime
}

// SetRuntime replaces the RuntimeConfig wholesale and dispatches reload.
func (cs *ConfigStore) SetRuntime(cfg RuntimeConfig) {
	cs.mu.Lock()
	cs.runtime = cfg
	cs.mu.Unlock()
	cs.dispatchReload()
}

// GetSnapshot returns a copy of all ad-hoc config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		out[k] = v
	}
	return out
}

// SetConfig merges new ad-hoc values and dispatches reload.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	cs.mu.Lock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	cs.mu.Unlock()
	cs.dispatchReload()
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// dispatchReload invokes all per-instance listeners registered via OnReload,
// then the process-wide hooks registered via RegisterReloadHook — the
// latter for components (e.g. package-level caches) with no handle to this
// particular ConfigStore.
func (cs *ConfigStore) dispatchReload() {
	cs.mu.RLock()
	listeners := append([]func(){}, cs.listeners...)
	cs.mu.RUnlock()
	for _, fn := range listeners {
		go fn()
	}
	TriggerHotReload()
}
