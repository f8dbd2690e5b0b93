// File: exec/iopool.go
// Author: momentics <momentics@gmail.com>
//
// IOCompletionPool is N workers draining a task queue plus one poll
// goroutine parked on the OS completion backend (reactor's epoll/IOCP).
// Ready fds resolve to their registered callbacks, which run on the poll
// goroutine itself; only directly posted tasks run on the workers. Posted
// tasks never pass through the reactor.

package exec

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/lune/reactor"
)

// sentinelUserData marks an Event delivered purely to wake the poll
// goroutine rather than to signal a registered fd.
const sentinelUserData = ^uintptr(0)

// IOCompletionPool runs posted tasks on N worker goroutines and
// reactor-delivered I/O completions on a single poll goroutine.
type IOCompletionPool struct {
	reactor reactor.EventReactor
	queue   chan Task
	closed  atomic.Bool
	wg      sync.WaitGroup

	mu        sync.Mutex
	callbacks map[uintptr]func()
}

// NewIOCompletionPool starts n worker goroutines over the platform reactor.
// If the platform reactor is unavailable (stub), the pool still dispatches
// posted tasks via its internal queue, degrading only the I/O-completion
// path.
func NewIOCompletionPool(n int) *IOCompletionPool {
	if n <= 0 {
		n = 1
	}
	r, _ := reactor.NewReactor() // nil on unsupported platforms; handled below
	p := &IOCompletionPool{
		reactor:   r,
		queue:     make(chan Task, n*64),
		callbacks: make(map[uintptr]func()),
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	if r != nil {
		go p.poll()
	}
	return p
}

func (p *IOCompletionPool) worker() {
	defer p.wg.Done()
	for task := range p.queue {
		if task == nil {
			return
		}
		safeRun(task)
	}
}

// poll blocks on the reactor and runs callbacks for ready fds. Callbacks
// execute on this goroutine, keeping the worker queue free of races with
// Close; they should hand heavy work back via Submit. Exits when Wait fails
// (reactor closed).
func (p *IOCompletionPool) poll() {
	events := make([]reactor.Event, 64)
	for {
		n, err := p.reactor.Wait(events)
		if err != nil {
			return
		}
		for i := 0; i < n; i++ {
			ud := events[i].UserData
			if ud == sentinelUserData {
				continue
			}
			p.mu.Lock()
			fn := p.callbacks[ud]
			p.mu.Unlock()
			if fn != nil {
				safeRun(fn)
			}
		}
		if p.closed.Load() {
			return
		}
	}
}

func safeRun(t Task) {
	defer func() { recover() }()
	t()
}

// Submit posts task to the pool's queue; one of the N workers picks it up.
func (p *IOCompletionPool) Submit(task Task) error {
	if p.closed.Load() {
		return errClosed
	}
	p.queue <- task
	return nil
}

// RegisterCompletion associates fd with the reactor; onReady is invoked
// whenever the fd becomes ready. It is a no-op when the platform reactor is
// unavailable.
func (p *IOCompletionPool) RegisterCompletion(fd uintptr, onReady func()) error {
	if p.reactor == nil {
		return nil
	}
	p.mu.Lock()
	p.callbacks[fd] = onReady
	p.mu.Unlock()
	if err := p.reactor.Register(fd, fd); err != nil {
		p.mu.Lock()
		delete(p.callbacks, fd)
		p.mu.Unlock()
		return err
	}
	return nil
}

// Close stops accepting new tasks and waits for in-flight work to finish.
// The poll goroutine exits when the closed reactor's Wait fails.
func (p *IOCompletionPool) Close() {
	if p.closed.CompareAndSwap(false, true) {
		close(p.queue)
		p.wg.Wait()
		if p.reactor != nil {
			_ = p.reactor.Close()
		}
	}
}
