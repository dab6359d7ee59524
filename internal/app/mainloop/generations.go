package mainloop

import "sync"

// Generations hands out monotonically increasing tokens per key.
// A holder of a token can ask whether it is still the latest for its key;
// issuing a new token for a key implicitly cancels every older holder.
type Generations[K comparable] struct {
	mu      sync.Mutex
	counter uint64
	current map[K]uint64
}

// NewGenerations creates an empty token table.
func NewGenerations[K comparable]() *Generations[K] {
	return &Generations[K]{current: make(map[K]uint64)}
}

// Next issues a new token for key. Tokens are unique across all keys.
func (g *Generations[K]) Next(key K) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	g.current[key] = g.counter
	return g.counter
}

// IsCurrent reports whether token is still the latest for key.
func (g *Generations[K]) IsCurrent(key K, token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	cur, ok := g.current[key]
	return ok && cur == token
}

// Release forgets key if token is still current. Returns false if a newer
// token took over.
func (g *Generations[K]) Release(key K, token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current[key] != token {
		return false
	}
	delete(g.current, key)
	return true
}

// Invalidate cancels whatever token is current for key.
func (g *Generations[K]) Invalidate(key K) {
	g.mu.Lock()
	delete(g.current, key)
	g.mu.Unlock()
}
