// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform poll backends behind exec.IOCompletionPool: epoll on Linux, IOCP
// on Windows, a rejecting stub elsewhere. One reactor instance is waited on
// by the pool's single poll goroutine, which runs the callbacks registered
// for ready fds; the pool's posted tasks do not pass through the reactor.

package reactor

import "github.com/momentics/lune/api"

// Event aliases the readiness record each backend fills in Wait.
type Event = api.Event

// EventReactor aliases the contract each platform backend implements.
type EventReactor = api.Reactor

// NewReactor (per-platform) returns the backend for the build target.
