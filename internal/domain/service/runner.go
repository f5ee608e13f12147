package service

import (
	"context"
	"sync"
	"time"

	"slider-button/internal/domain/gesture"
)

const defaultQueueSize = 64

// Runner is a single-goroutine event loop. Everything that touches a Slider
// (pointer events, state refreshes, timer callbacks) is posted here so the
// widget never needs locks.
type Runner struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

func NewRunner(size int) *Runner {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Runner{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Run executes posted functions in order until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	defer r.once.Do(func() { close(r.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-r.queue:
			f()
		}
	}
}

// Post enqueues f. It blocks while the queue is full and returns false once
// the loop has stopped. Never call it from inside the loop with a full queue.
func (r *Runner) Post(f func()) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case <-r.done:
		return false
	case r.queue <- f:
		return true
	}
}

// Call runs f on the loop and waits for it to finish.
func (r *Runner) Call(f func()) bool {
	finished := make(chan struct{})
	if !r.Post(func() {
		defer close(finished)
		f()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-r.done:
		return false
	}
}

// AfterFunc implements gesture.Scheduler. The callback is posted to the loop
// when the timer fires; a Stop that races with the post is caught by the
// classifier's own staleness checks.
func (r *Runner) AfterFunc(d time.Duration, f func()) gesture.Timer {
	return time.AfterFunc(d, func() { r.Post(f) })
}
