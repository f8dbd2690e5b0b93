//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7) backend for exec.IOCompletionPool: one epoll instance
// multiplexes every registered fd for the pool's poll goroutine, with
// UserData carrying the value given at Register (the pool passes the fd).

package reactor

import (
	"golang.org/x/sys/unix"
	"unsafe"
)

// epollIOReactor backs exec.IOCompletionPool with a single epoll instance.
type epollIOReactor struct {
	epfd int
}

// NewReactor constructs the epoll-backed EventReactor exec.NewIOCompletionPool
// uses on Linux.
func NewReactor() (EventReactor, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, err
	}
	return &epollIOReactor{epfd: epfd}, nil
}

// Register adds fd to the epoll instance. udata is packed into the event's
// 64-bit data field (the Fd+Pad pair on amd64) and comes back verbatim from
// Wait; the kernel treats it as opaque.
func (r *epollIOReactor) Register(fd uintptr, udata uintptr) error {
	event := &unix.EpollEvent{
		Events: unix.EPOLLIN | unix.EPOLLOUT | unix.EPOLLET,
	}
	*(*uintptr)(unsafe.Pointer(&event.Fd)) = udata
	return unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, int(fd), event)
}

// Wait blocks for epoll events and fills the result into events. Epoll only
// returns the opaque data word, so Fd mirrors UserData.
func (r *epollIOReactor) Wait(events []Event) (int, error) {
	rawEvents := make([]unix.EpollEvent, len(events))
	for {
		n, err := unix.EpollWait(r.epfd, rawEvents, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		for i := 0; i < n; i++ {
			ud := *(*uintptr)(unsafe.Pointer(&rawEvents[i].Fd))
			events[i] = Event{Fd: ud, UserData: ud}
		}
		return n, nil
	}
}

// Close closes the epoll instance.
func (r *epollIOReactor) Close() error {
	return unix.Close(r.epfd)
}
