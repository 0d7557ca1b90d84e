package app

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopStopped is returned by Invoke once the event loop has exited.
var ErrLoopStopped = errors.New("event loop stopped")

type invocation struct {
	fn   func()
	done chan struct{}
}

// loopDispatcher runs functions on the event loop goroutine. While the loop
// runs, host calls are made from worker goroutines only; after it stops the
// caller of Run owns the UI again and work runs inline.
type loopDispatcher struct {
	calls    chan invocation
	stopped  chan struct{}
	stopOnce sync.Once
}

func newLoopDispatcher() *loopDispatcher {
	return &loopDispatcher{
		calls:   make(chan invocation),
		stopped: make(chan struct{}),
	}
}

// OnOwnerThread implements host.Dispatcher.
func (d *loopDispatcher) OnOwnerThread() bool {
	select {
	case <-d.stopped:
		return true
	default:
		return false
	}
}

// Invoke implements host.Dispatcher. It blocks until the loop has run fn.
func (d *loopDispatcher) Invoke(ctx context.Context, fn func()) error {
	call := invocation{fn: fn, done: make(chan struct{})}
	select {
	case d.calls <- call:
	case <-d.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// An accepted call always runs to completion.
	<-call.done
	return nil
}

// run executes one pending call on the loop goroutine.
func (d *loopDispatcher) run(call invocation) {
	defer close(call.done)
	call.fn()
}

// stop releases pending and future Invoke calls.
func (d *loopDispatcher) stop() {
	d.stopOnce.Do(func() { close(d.stopped) })
}
