package borrow

import (
	"errors"
	"fmt"

	"github.com/hupe1980/viewdb/core"
	"github.com/hupe1980/viewdb/internal/bitmap"
)

// ErrConflict is the sentinel wrapped by every ConflictError.
var ErrConflict = errors.New("borrow: conflicting access")

// Mode is the kind of borrow held on a slot.
type Mode uint8

const (
	// Shared is a read-only borrow.
	Shared Mode = iota + 1
	// Exclusive is a mutable borrow.
	Exclusive
)

func (m Mode) String() string {
	switch m {
	case Shared:
		return "shared"
	case Exclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}

// ConflictError reports a borrow that could not be granted.
type ConflictError struct {
	// Slot is the first slot that is already held.
	Slot core.Slot
	// Held is the mode of the borrow currently holding Slot.
	Held Mode
	// Wanted is the mode that was requested.
	Wanted Mode
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("borrow: %s access to slot %d conflicts with %s borrow", e.Wanted, e.Slot, e.Held)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Ledger records the live borrows of one store.
type Ledger struct {
	readers   map[core.Slot]uint32
	shared    *bitmap.Set
	exclusive *bitmap.Set
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		readers:   make(map[core.Slot]uint32),
		shared:    bitmap.New(),
		exclusive: bitmap.New(),
	}
}

// AcquireShared registers a shared borrow on every slot of set.
// Nothing is registered if any slot is exclusively held.
func (l *Ledger) AcquireShared(set *bitmap.Set) error {
	if err := l.check(set, l.exclusive, Exclusive, Shared); err != nil {
		return err
	}
	for slot := range set.Iterator() {
		l.readers[slot]++
	}
	l.shared.Or(set)
	return nil
}

// ReleaseShared drops one shared borrow on every slot of set.
func (l *Ledger) ReleaseShared(set *bitmap.Set) {
	for slot := range set.Iterator() {
		n, ok := l.readers[slot]
		if !ok {
			continue
		}
		if n <= 1 {
			delete(l.readers, slot)
			l.shared.Remove(slot)
			continue
		}
		l.readers[slot] = n - 1
	}
}

// AcquireExclusive registers an exclusive borrow on every slot of set.
// Nothing is registered if any slot is already borrowed.
func (l *Ledger) AcquireExclusive(set *bitmap.Set) error {
	if err := l.check(set, l.exclusive, Exclusive, Exclusive); err != nil {
		return err
	}
	if err := l.check(set, l.shared, Shared, Exclusive); err != nil {
		return err
	}
	l.exclusive.Or(set)
	return nil
}

// ReleaseExclusive drops the exclusive borrow on every slot of set.
func (l *Ledger) ReleaseExclusive(set *bitmap.Set) {
	l.exclusive.AndNot(set)
}

// CheckShared reports whether a shared borrow of slot would be granted.
func (l *Ledger) CheckShared(slot core.Slot) error {
	if l.exclusive.Contains(slot) {
		return &ConflictError{Slot: slot, Held: Exclusive, Wanted: Shared}
	}
	return nil
}

// FirstExclusive returns the lowest exclusively held slot.
// The second return value is false if no slot is exclusively held.
func (l *Ledger) FirstExclusive() (core.Slot, bool) {
	return l.exclusive.Minimum()
}

// Readers returns the number of shared borrows held on slot.
func (l *Ledger) Readers(slot core.Slot) int {
	return int(l.readers[slot])
}

// Exclusive returns a snapshot of the exclusively held slots.
func (l *Ledger) Exclusive() *bitmap.Set {
	return l.exclusive.Clone()
}

// Idle reports whether no borrow of any kind is live.
func (l *Ledger) Idle() bool {
	return l.shared.IsEmpty() && l.exclusive.IsEmpty()
}

// Reset forgets every borrow.
func (l *Ledger) Reset() {
	clear(l.readers)
	l.shared.Clear()
	l.exclusive.Clear()
}

// Conflict describes the first live borrow, for callers that need the whole
// store to be free. It returns nil if the ledger is idle.
func (l *Ledger) Conflict(wanted Mode) error {
	if slot, ok := l.exclusive.Minimum(); ok {
		return &ConflictError{Slot: slot, Held: Exclusive, Wanted: wanted}
	}
	if slot, ok := l.shared.Minimum(); ok {
		return &ConflictError{Slot: slot, Held: Shared, Wanted: wanted}
	}
	return nil
}

func (l *Ledger) check(set, held *bitmap.Set, heldMode, wanted Mode) error {
	if !set.Intersects(held) {
		return nil
	}
	slot, _ := bitmap.Intersection(set, held).Minimum()
	return &ConflictError{Slot: slot, Held: heldMode, Wanted: wanted}
}
