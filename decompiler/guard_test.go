package decompiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetGuard_TopLevelTakesLock(t *testing.T) {
	var g setGuard

	release := g.enter()
	assert.True(t, g.active())
	assert.Equal(t, int32(1), g.depth.Load())
	assert.False(t, g.mu.TryLock(), "top-level enter must hold the mutex")

	release()
	assert.False(t, g.active())
	assert.True(t, g.mu.TryLock(), "release must free the mutex")
	g.mu.Unlock()
}

func TestSetGuard_NestedSkipsLock(t *testing.T) {
	var g setGuard

	outer := g.enter()
	// a nested enter while the lock is held must return immediately
	inner := g.enter()
	assert.Equal(t, int32(2), g.depth.Load())

	inner()
	assert.True(t, g.active(), "outer chain still in flight")
	assert.False(t, g.mu.TryLock(), "nested release must not free the mutex")

	outer()
	assert.False(t, g.active())
	assert.True(t, g.mu.TryLock())
	g.mu.Unlock()
}

func TestSetGuard_ReusableAcrossChains(t *testing.T) {
	var g setGuard

	for i := 0; i < 3; i++ {
		release := g.enter()
		assert.True(t, g.active())
		release()
		assert.False(t, g.active())
	}
}
