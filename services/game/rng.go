package game

import (
	"math/rand"
	"sync"
)

// Rng wraps a seedable math/rand source behind a mutex so the timer
// goroutines and event handlers can share it. Injected everywhere randomness
// is needed (drawer selection, word sampling, session assignment) to keep
// tests deterministic.
type Rng struct {
	mu sync.Mutex
	r  *rand.Rand
}

func NewRng(seed int64) *Rng {
	return &Rng{r: rand.New(rand.NewSource(seed))}
}

func (g *Rng) Intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Intn(n)
}
