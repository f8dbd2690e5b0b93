// File: api/shutdown.go
// Author: momentics <momentics@gmail.com>

package api

// GracefulShutdown is implemented by components that can stop cleanly,
// draining in-flight work before releasing resources.
type GracefulShutdown interface {
	Shutdown() error
}
