// Package dispatch provides the cooperative event loop the embed core runs on.
//
// All embed state (tracker entries, player registrations, coordinator maps)
// is owned by one [Queue] and only touched from tasks it runs. Asynchronous
// sources such as timers, API polling and player callbacks never mutate that
// state directly: they [Queue.Post] a task and the host runs it from its own
// loop with [Queue.Drain], or hands the queue a goroutine with [Queue.Run].
package dispatch

import (
	"context"
	"sync"
	"time"
)

// Queue is a FIFO of tasks executed one at a time.
type Queue struct {
	mu     sync.Mutex
	tasks  []func()
	wake   chan struct{}
	closed bool
}

// NewQueue creates an empty [Queue].
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Post schedules fn to run on the queue. It is safe to call from any
// goroutine, including from inside a running task. Post reports false once the
// queue is closed.
func (q *Queue) Post(fn func()) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// After posts fn once d has elapsed. The returned stop function prevents the
// post if the timer has not fired yet.
func (q *Queue) After(d time.Duration, fn func()) (stop func() bool) {
	t := time.AfterFunc(d, func() { q.Post(fn) })
	return t.Stop
}

// Drain runs queued tasks on the calling goroutine until the queue is empty,
// including tasks posted by the tasks it runs, and returns how many ran.
func (q *Queue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return ran
		}
		fn := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		fn()
		ran++
	}
}

// Pending returns the number of tasks waiting to run.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Run drains the queue whenever tasks arrive until ctx is done.
//
// Hosts without their own loop use Run; hosts that already have one (the
// terminal UI) call [Queue.Drain] from it instead. Never both.
func (q *Queue) Run(ctx context.Context) error {
	for {
		q.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
		}
	}
}

// Close rejects further posts. Tasks already queued can still be drained.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}
