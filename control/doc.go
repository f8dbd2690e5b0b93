// File: control/doc.go
// Author: momentics <momentics@gmail.com>

// Package control is the runtime's management layer: YAML-backed
// configuration with atomic snapshot reads and hot reload, Prometheus-backed
// metrics, fatal-error policy, and named debug probes, composed behind the
// api.Control contract.
package control
