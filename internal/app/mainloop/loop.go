package mainloop

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopStopped is returned by Post after the loop has exited.
var ErrLoopStopped = errors.New("loop stopped")

// Loop runs posted tasks one at a time, in arrival order, on a single
// goroutine. Inbound extension traffic goes through it so domain operations
// never overlap.
type Loop struct {
	tasks   chan func()
	done    chan struct{}
	stopped sync.Once
}

// NewLoop creates a loop with a queue of size buffer.
func NewLoop(buffer int) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run executes tasks until ctx is cancelled. Tasks still queued at that
// point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stopped.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Post queues fn. It blocks while the queue is full, until ctx is done or
// the loop stops.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	if fn == nil {
		return nil
	}
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
