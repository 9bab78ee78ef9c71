package viewdb

import (
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/viewdb/internal/arena"
	"github.com/hupe1980/viewdb/internal/bitmap"
)

// View is a read-only, ordered subset of the elements of one store.
//
// A View holds shared borrows on its elements until Release is called. Any
// number of views may share elements. A View never copies or mutates the
// elements it references, and narrowing it leaves it untouched.
type View[T any] struct {
	store    *Store[T]
	gen      uint32
	slots    *bitmap.Set
	n        int
	released bool
}

func newView[T any](s *Store[T], gen uint32, slots *bitmap.Set) *View[T] {
	return &View[T]{
		store: s,
		gen:   gen,
		slots: slots,
		n:     slots.Cardinality(),
	}
}

// Len returns the number of referenced elements.
func (v *View[T]) Len() int {
	return v.n
}

// StoreID returns the identity of the store the view points into.
func (v *View[T]) StoreID() uuid.UUID {
	return v.store.id
}

// Select returns a new view over the elements of v for which p returns true,
// preserving their order. v stays valid and unchanged.
func (v *View[T]) Select(p Predicate[T]) (*View[T], error) {
	start := time.Now()
	s := v.store
	if err := v.check("select"); err != nil {
		s.recordSelect("view", 0, 0, start, err)
		return nil, err
	}
	set, scanned, err := s.filter("select", v.gen, v.slots, p)
	if err == nil {
		if aerr := s.ledger.AcquireShared(set); aerr != nil {
			err = s.violation("select", aerr)
		}
	}
	if err != nil {
		s.recordSelect("view", scanned, 0, start, err)
		return nil, err
	}
	s.recordSelect("view", scanned, set.Cardinality(), start, nil)
	return newView(s, v.gen, set), nil
}

// All returns an iterator over the referenced elements by value, in order.
// The view can be iterated any number of times.
func (v *View[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if err := v.check("iterate"); err != nil {
			yield(zero, err)
			return
		}
		for slot := range v.slots.Iterator() {
			if v.released {
				yield(zero, v.check("iterate"))
				return
			}
			ptr, err := v.store.arena.GetSafe(arena.Ref{Gen: v.gen, Slot: slot})
			if err != nil {
				yield(zero, v.store.violation("iterate", err))
				return
			}
			if !yield(*ptr, nil) {
				return
			}
		}
	}
}

// Collect returns the referenced elements in order.
func (v *View[T]) Collect() ([]T, error) {
	out := make([]T, 0, v.n)
	for x, err := range v.All() {
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// Release returns the view's borrows to the store. The view cannot be used
// afterwards. Release is idempotent.
func (v *View[T]) Release() {
	if v.released {
		return
	}
	v.released = true
	if v.store.arena.Valid(v.gen) {
		v.store.ledger.ReleaseShared(v.slots)
	}
}

func (v *View[T]) check(op string) error {
	if v.released {
		return v.store.violation(op, newAccessError(op, v.store.id, ErrConsumed))
	}
	if !v.store.arena.Valid(v.gen) {
		return v.store.violation(op, arena.ErrStaleRef)
	}
	return nil
}
