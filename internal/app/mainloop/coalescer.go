// Package mainloop holds the small scheduling primitives the daemon uses to
// serialize inbound work and collapse bursts of events.
package mainloop

import (
	"sync"
	"time"
)

// Coalescer merges bursts of same-key tasks. Only the most recently posted
// callback for a key runs once the scheduled slot fires.
type Coalescer struct {
	mu        sync.Mutex
	pending   map[string]bool
	callbacks map[string]func()
	post      func(func())
	destroyed bool
}

// NewCoalescer creates a coalescer that runs work through post.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		pending:   make(map[string]bool),
		callbacks: make(map[string]func()),
		post:      post,
	}
}

// NewDebouncer returns a Coalescer whose slots fire after delay().
// delay is read on every burst so config reloads apply to the next one.
func NewDebouncer(delay func() time.Duration) *Coalescer {
	if delay == nil {
		panic("mainloop.NewDebouncer: delay function cannot be nil")
	}
	return NewCoalescer(func(fn func()) {
		time.AfterFunc(delay(), fn)
	})
}

func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.callbacks[key] = fn
	if c.pending[key] {
		c.mu.Unlock()
		return
	}
	c.pending[key] = true
	post := c.post
	c.mu.Unlock()

	post(func() {
		c.mu.Lock()
		if c.destroyed {
			delete(c.pending, key)
			delete(c.callbacks, key)
			c.mu.Unlock()
			return
		}
		fn := c.callbacks[key]
		delete(c.pending, key)
		delete(c.callbacks, key)
		c.mu.Unlock()

		if fn != nil {
			fn()
		}
	})
}

// Cancel drops the queued callback for key. A slot already scheduled fires
// as a no-op.
func (c *Coalescer) Cancel(key string) {
	c.mu.Lock()
	delete(c.callbacks, key)
	c.mu.Unlock()
}

// Pending reports whether a callback for key is waiting to run.
func (c *Coalescer) Pending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callbacks[key] != nil
}

func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.pending = map[string]bool{}
	c.callbacks = map[string]func(){}
	c.mu.Unlock()
}
