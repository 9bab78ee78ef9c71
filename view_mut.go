package viewdb

import (
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/viewdb/internal/arena"
	"github.com/hupe1980/viewdb/internal/bitmap"
)

// MutView is an ordered subset of the elements of one store with exclusive
// access to them.
//
// While a MutView is live no other view may reference its elements. A
// MutView is a single-use token: Select consumes it and hands the remaining
// borrows to a new, smaller MutView. Every later use of the consumed view
// fails with ErrConsumed.
//
// Pointers yielded by All must not be retained after the view is narrowed
// or released.
type MutView[T any] struct {
	store    *Store[T]
	gen      uint32
	slots    *bitmap.Set
	n        int
	consumed bool
}

func newMutView[T any](s *Store[T], gen uint32, slots *bitmap.Set) *MutView[T] {
	return &MutView[T]{
		store: s,
		gen:   gen,
		slots: slots,
		n:     slots.Cardinality(),
	}
}

// Len returns the number of referenced elements.
func (m *MutView[T]) Len() int {
	return m.n
}

// StoreID returns the identity of the store the view points into.
func (m *MutView[T]) StoreID() uuid.UUID {
	return m.store.id
}

// Select consumes m and returns a mutable view over the elements of m for
// which p returns true, preserving their order. Elements that are dropped
// are released back to the store.
func (m *MutView[T]) Select(p Predicate[T]) (*MutView[T], error) {
	start := time.Now()
	s := m.store
	if err := m.check("narrow"); err != nil {
		m.consume()
		s.recordNarrow(m.n, 0, start, err)
		return nil, err
	}
	m.consumed = true

	set, _, err := s.filter("narrow", m.gen, m.slots, p)
	if err != nil {
		s.recordNarrow(m.n, 0, start, err)
		return nil, err
	}
	dropped := m.slots.Clone()
	dropped.AndNot(set)
	s.ledger.ReleaseExclusive(dropped)

	s.recordNarrow(m.n, set.Cardinality(), start, nil)
	return newMutView(s, m.gen, set), nil
}

// All returns an iterator over mutable references to the elements, in
// order. Writes through the references change the store directly.
func (m *MutView[T]) All() iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		if err := m.check("iterate_mut"); err != nil {
			yield(nil, err)
			return
		}
		for slot := range m.slots.Iterator() {
			if m.consumed {
				yield(nil, m.check("iterate_mut"))
				return
			}
			ptr, err := m.store.arena.GetSafe(arena.Ref{Gen: m.gen, Slot: slot})
			if err != nil {
				yield(nil, m.store.violation("iterate_mut", err))
				return
			}
			if !yield(ptr, nil) {
				return
			}
		}
	}
}

// Release returns the view's exclusive borrows to the store. The view cannot
// be used afterwards. Release is idempotent.
func (m *MutView[T]) Release() {
	m.consume()
}

// consume marks m as used up and releases whatever it still holds.
func (m *MutView[T]) consume() {
	if m.consumed {
		return
	}
	m.consumed = true
	if m.store.arena.Valid(m.gen) {
		m.store.ledger.ReleaseExclusive(m.slots)
	}
}

func (m *MutView[T]) check(op string) error {
	if m.consumed {
		return m.store.violation(op, newAccessError(op, m.store.id, ErrConsumed))
	}
	if !m.store.arena.Valid(m.gen) {
		return m.store.violation(op, arena.ErrStaleRef)
	}
	return nil
}
