package mainloop

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerations_NewerTokenSupersedes(t *testing.T) {
	g := NewGenerations[int64]()

	first := g.Next(1)
	second := g.Next(1)

	assert.Greater(t, second, first)
	assert.False(t, g.IsCurrent(1, first))
	assert.True(t, g.IsCurrent(1, second))
	assert.False(t, g.Release(1, first))
	assert.True(t, g.Release(1, second))
	assert.False(t, g.IsCurrent(1, second))
}

func TestGenerations_TokensAreProcessWide(t *testing.T) {
	g := NewGenerations[string]()

	a := g.Next("a")
	b := g.Next("b")

	assert.NotEqual(t, a, b)
	assert.True(t, g.IsCurrent("a", a))
	assert.False(t, g.IsCurrent("a", b))
}

func TestGenerations_Invalidate(t *testing.T) {
	g := NewGenerations[string]()
	tok := g.Next("prompt")

	g.Invalidate("prompt")

	assert.False(t, g.IsCurrent("prompt", tok))
}

func TestGenerations_ConcurrentNextIsUnique(t *testing.T) {
	g := NewGenerations[int]()
	seen := sync.Map{}
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok := g.Next(i % 3)
			_, dup := seen.LoadOrStore(tok, true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()
}
