package decompiler

import (
	"sync"
	"sync/atomic"
)

// setGuard serializes artifact set chains without deadlocking on nested
// ones. The first enter on an idle guard takes the mutex; enters while a
// chain is already running see a nonzero depth and proceed without
// re-acquiring. Assumes nested set events arrive synchronously on the
// chain that holds the lock, the way decompiler change callbacks do.
type setGuard struct {
	mu    sync.Mutex
	depth atomic.Int32
}

// enter marks a set chain segment active and returns its release func.
// The top-level release drops the depth while still holding the mutex, so
// a racing enter blocks on the lock instead of slipping in as "nested".
func (g *setGuard) enter() func() {
	if g.depth.Add(1) == 1 {
		g.mu.Lock()
		return func() {
			g.depth.Add(-1)
			g.mu.Unlock()
		}
	}
	return func() {
		g.depth.Add(-1)
	}
}

// active reports whether a set chain is in flight.
func (g *setGuard) active() bool {
	return g.depth.Load() > 0
}
