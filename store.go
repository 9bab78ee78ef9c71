package viewdb

import (
	"context"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/viewdb/internal/arena"
	"github.com/hupe1980/viewdb/internal/bitmap"
	"github.com/hupe1980/viewdb/internal/borrow"
	"github.com/hupe1980/viewdb/internal/conv"
)

// Store owns an ordered sequence of records.
//
// A Store is the only owner of its elements. Views derived from it reference
// the elements in place and stay valid until the store is closed or drained;
// after that every view fails fast with ErrStaleReference.
//
// Store is not safe for concurrent use.
type Store[T any] struct {
	id     uuid.UUID
	arena  *arena.Arena[T]
	ledger *borrow.Ledger
	closed bool
	opts   options
	logger *Logger
}

// New creates a store that takes ownership of data.
// data is not copied or validated and may be empty.
func New[T any](data []T, optFns ...Option) *Store[T] {
	o := applyOptions(optFns)
	id := uuid.New()
	return &Store[T]{
		id:     id,
		arena:  arena.New(data),
		ledger: borrow.New(),
		opts:   o,
		logger: o.logger.WithStore(id),
	}
}

// ID returns the identity of the store.
func (s *Store[T]) ID() uuid.UUID {
	return s.id
}

// Len returns the number of elements owned by the store.
func (s *Store[T]) Len() int {
	return s.arena.Len()
}

// View returns a read view over every element, in insertion order.
func (s *Store[T]) View() (*View[T], error) {
	return s.selectShared("view", Always[T]())
}

// Select returns a read view over the elements for which p returns true,
// in insertion order.
func (s *Store[T]) Select(p Predicate[T]) (*View[T], error) {
	return s.selectShared("select", p)
}

// ViewMut returns a mutable view over every element, in insertion order.
// It fails with ErrExclusiveConflict while any other view is live.
func (s *Store[T]) ViewMut() (*MutView[T], error) {
	start := time.Now()
	if err := s.checkOpen("view_mut"); err != nil {
		s.recordSelect("store", 0, 0, start, err)
		return nil, err
	}
	set := bitmap.Range(s.arena.Len())
	if err := s.ledger.AcquireExclusive(set); err != nil {
		err = s.violation("view_mut", err)
		s.recordSelect("store", 0, 0, start, err)
		return nil, err
	}
	s.recordSelect("store", set.Cardinality(), set.Cardinality(), start, nil)
	return newMutView(s, s.arena.Generation(), set), nil
}

// SelectMut returns a mutable view over the elements for which p returns
// true, in insertion order. The selected elements must not be referenced by
// any other view.
func (s *Store[T]) SelectMut(p Predicate[T]) (*MutView[T], error) {
	start := time.Now()
	gen := s.arena.Generation()
	set, scanned, err := s.scan("select_mut", p)
	if err == nil {
		if aerr := s.ledger.AcquireExclusive(set); aerr != nil {
			err = s.violation("select_mut", aerr)
		}
	}
	if err != nil {
		s.recordSelect("store", scanned, 0, start, err)
		return nil, err
	}
	s.recordSelect("store", scanned, set.Cardinality(), start, nil)
	return newMutView(s, gen, set), nil
}

// All returns an iterator over the elements by value, in insertion order.
// It does not affect ownership. Iteration stops with ErrExclusiveConflict at
// the first element held by a mutable view.
func (s *Store[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if err := s.checkOpen("iterate"); err != nil {
			yield(zero, err)
			return
		}
		gen := s.arena.Generation()
		for i := 0; i < s.arena.Len(); i++ {
			slot, err := conv.IntToSlot(i)
			if err != nil {
				yield(zero, err)
				return
			}
			if err := s.ledger.CheckShared(slot); err != nil {
				yield(zero, s.violation("iterate", err))
				return
			}
			ptr, err := s.arena.GetSafe(arena.Ref{Gen: gen, Slot: slot})
			if err != nil {
				yield(zero, s.violation("iterate", err))
				return
			}
			if !yield(*ptr, nil) {
				return
			}
		}
		if !s.arena.Valid(gen) {
			yield(zero, s.violation("iterate", arena.ErrStaleRef))
		}
	}
}

// AllMut returns an iterator over mutable references to the elements, in
// insertion order. The store is exclusively borrowed for the duration of the
// loop, so no view may be live when iteration starts.
func (s *Store[T]) AllMut() iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		if err := s.checkOpen("iterate_mut"); err != nil {
			yield(nil, err)
			return
		}
		all := bitmap.Range(s.arena.Len())
		if err := s.ledger.AcquireExclusive(all); err != nil {
			yield(nil, s.violation("iterate_mut", err))
			return
		}
		gen := s.arena.Generation()
		defer func() {
			if s.arena.Valid(gen) {
				s.ledger.ReleaseExclusive(all)
			}
		}()
		for slot := range all.Iterator() {
			ptr, err := s.arena.GetSafe(arena.Ref{Gen: gen, Slot: slot})
			if err != nil {
				yield(nil, s.violation("iterate_mut", err))
				return
			}
			if !yield(ptr, nil) {
				return
			}
		}
	}
}

// Drain returns an iterator that moves the elements out of the store and
// yields them by value, in insertion order, exactly once.
//
// Draining requires that no view is live. Once iteration starts the store
// is empty and closed: views created earlier report ErrStaleReference and
// the store itself reports ErrClosed. Breaking out of the loop early drops
// the remaining elements.
func (s *Store[T]) Drain() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if err := s.checkOpen("drain"); err != nil {
			yield(zero, err)
			return
		}
		if err := s.ledger.Conflict(borrow.Exclusive); err != nil {
			yield(zero, s.violation("drain", err))
			return
		}
		data := s.arena.Take()
		s.closed = true
		s.logger.LogDrain(context.Background(), len(data))
		for _, v := range data {
			if !yield(v, nil) {
				return
			}
		}
	}
}

func (s *Store[T]) selectShared(op string, p Predicate[T]) (*View[T], error) {
	start := time.Now()
	gen := s.arena.Generation()
	set, scanned, err := s.scan(op, p)
	if err == nil {
		if aerr := s.ledger.AcquireShared(set); aerr != nil {
			err = s.violation(op, aerr)
		}
	}
	if err != nil {
		s.recordSelect("store", scanned, 0, start, err)
		return nil, err
	}
	s.recordSelect("store", scanned, set.Cardinality(), start, nil)
	return newView(s, gen, set), nil
}

// scan evaluates p over every element of the store. It reads every element,
// so it is rejected while any element is held by a mutable view.
func (s *Store[T]) scan(op string, p Predicate[T]) (*bitmap.Set, int, error) {
	if err := s.checkOpen(op); err != nil {
		return nil, 0, err
	}
	if slot, held := s.ledger.FirstExclusive(); held {
		return nil, 0, s.violation(op, &borrow.ConflictError{Slot: slot, Held: borrow.Exclusive, Wanted: borrow.Shared})
	}
	return s.filter(op, s.arena.Generation(), bitmap.Range(s.arena.Len()), p)
}

// filter evaluates p over slots, which were borrowed under generation gen.
func (s *Store[T]) filter(op string, gen uint32, slots *bitmap.Set, p Predicate[T]) (*bitmap.Set, int, error) {
	set := bitmap.New()
	scanned := 0
	for slot := range slots.Iterator() {
		ptr, err := s.arena.GetSafe(arena.Ref{Gen: gen, Slot: slot})
		if err != nil {
			return nil, scanned, s.violation(op, err)
		}
		scanned++
		if p(*ptr) {
			set.Add(slot)
		}
	}
	// The predicate may have closed the store under us.
	if !s.arena.Valid(gen) {
		return nil, scanned, s.violation(op, arena.ErrStaleRef)
	}
	return set, scanned, nil
}

func (s *Store[T]) checkOpen(op string) error {
	if s.closed {
		return s.violation(op, newAccessError(op, s.id, ErrClosed))
	}
	return nil
}

// violation translates err, reports it and returns the public error.
func (s *Store[T]) violation(op string, err error) error {
	err = translateError(op, s.id, err)
	s.opts.metricsCollector.RecordViolation(err)
	s.logger.LogViolation(context.Background(), op, err)
	return err
}

func (s *Store[T]) recordSelect(source string, scanned, matched int, start time.Time, err error) {
	s.opts.metricsCollector.RecordSelect(scanned, matched, time.Since(start), err)
	s.logger.LogSelect(context.Background(), source, scanned, matched, err)
}

func (s *Store[T]) recordNarrow(before, after int, start time.Time, err error) {
	s.opts.metricsCollector.RecordNarrow(before, after, time.Since(start), err)
	s.logger.LogNarrow(context.Background(), before, after, err)
}
