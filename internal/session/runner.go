package session

import (
	"context"
	"sync"

	"github.com/chmouel/gitbash/internal/models"
)

// Runner feeds key events to a Session from a single goroutine so that the
// caller never waits on command execution.
type Runner struct {
	session *Session

	mu      sync.Mutex
	queue   []models.Key
	busy    bool
	started bool
	stopped bool

	wake    chan struct{}
	updates chan struct{}
	done    chan struct{}
	exited  chan struct{}
}

// NewRunner returns a stopped runner for s.
func NewRunner(s *Session) *Runner {
	return &Runner{
		session: s,
		wake:    make(chan struct{}, 1),
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
}

// Session returns the session the runner drives.
func (r *Runner) Session() *Session {
	return r.session
}

// Start launches the worker. It returns immediately.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started || r.stopped {
		return
	}
	r.started = true
	go r.loop(ctx)
}

// Stop ends the worker and waits for the key in progress, if any.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	started := r.started
	close(r.done)
	r.mu.Unlock()

	if started {
		<-r.exited
	}
}

// Send queues key. It never blocks.
func (r *Runner) Send(key models.Key) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.queue = append(r.queue, key)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued keys not yet handled.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Idle reports whether every queued key has been handled.
func (r *Runner) Idle() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue) == 0 && !r.busy
}

// Updates fires after keys were handled. Bursts are coalesced into one
// notification.
func (r *Runner) Updates() <-chan struct{} {
	return r.updates
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.exited)
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.done:
			return
		case <-r.wake:
		}

		for {
			key, ok := r.next()
			if !ok {
				break
			}
			r.session.HandleKey(ctx, key)
			r.mu.Lock()
			r.busy = false
			r.mu.Unlock()
			r.notify()
		}
	}
}

func (r *Runner) next() (models.Key, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 || r.stopped {
		return models.Key{}, false
	}
	key := r.queue[0]
	r.queue = r.queue[1:]
	r.busy = true
	return key, true
}

func (r *Runner) notify() {
	select {
	case r.updates <- struct{}{}:
	default:
	}
}
