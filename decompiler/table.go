package decompiler

import (
	"fmt"

	"github.com/twizmwazin/yodalib/artifact"
)

// Table is the canonical-view window onto one artifact kind. Callers pass
// lifted keys and artifacts; the table lowers on the way into the backend
// and lifts on the way out. The backend is the source of truth; a table
// holds no state of its own.
type Table[K comparable, A artifact.Artifact] struct {
	get  func(K) (A, bool)
	set  func(A) (bool, error)
	list func() map[K]A

	lowerKey func(K) K
	liftKey  func(K) K
	keyOf    func(A) K
	lift     func(A) A
	lower    func(A) A

	errorOnDuplicate bool
}

// Get returns the full artifact at the lifted key.
func (t *Table[K, A]) Get(key K) (A, bool) {
	native, ok := t.get(t.lowerKey(key))
	if !ok {
		var zero A
		return zero, false
	}
	return t.lift(native), true
}

// Set writes a lifted artifact through to the backend. With duplicate
// rejection on, writing a key that already holds a different value fails
// with ErrDuplicateArtifact and changes nothing; rewriting an equal value
// is a silent no-op. Without it, later writes win.
func (t *Table[K, A]) Set(a A) (bool, error) {
	lowered := t.lower(a)
	if t.errorOnDuplicate {
		key := t.keyOf(lowered)
		if existing, ok := t.get(key); ok {
			if !existing.Equal(lowered) {
				return false, fmt.Errorf("%s %v: %w", lowered.Kind(), key, ErrDuplicateArtifact)
			}
			return false, nil
		}
	}
	return t.set(lowered)
}

// Contains reports whether the lifted key exists in the backend.
func (t *Table[K, A]) Contains(key K) bool {
	_, ok := t.get(t.lowerKey(key))
	return ok
}

// List returns the existence view: lightweight stubs keyed and lifted
// into the canonical view.
func (t *Table[K, A]) List() map[K]A {
	native := t.list()
	out := make(map[K]A, len(native))
	for key, a := range native {
		out[t.liftKey(key)] = t.lift(a)
	}
	return out
}

// Keys returns the lifted keys of every artifact the backend knows.
func (t *Table[K, A]) Keys() []K {
	native := t.list()
	keys := make([]K, 0, len(native))
	for key := range native {
		keys = append(keys, t.liftKey(key))
	}
	return keys
}

// Len returns the number of artifacts the backend knows.
func (t *Table[K, A]) Len() int {
	return len(t.list())
}
