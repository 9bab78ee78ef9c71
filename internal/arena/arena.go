package arena

import (
	"errors"
	"fmt"

	"github.com/hupe1980/viewdb/core"
)

var (
	// ErrStaleRef is returned when a reference outlived the data it points to.
	ErrStaleRef = errors.New("arena: stale reference")
)

// Stats tracks arena usage.
//
// Note on semantics:
//   - Slots: current number of addressable elements
//   - Generation: current generation (starts at 1, 0 is never valid)
//   - Invalidations: how many times the generation was bumped
//   - StaleReads: GetSafe calls rejected because of a stale reference
type Stats struct {
	Slots         int
	Generation    uint32
	Invalidations uint64
	StaleReads    uint64
}

// Ref represents a safe reference to an arena element.
// It includes the generation ID to detect stale references.
type Ref struct {
	Gen  uint32
	Slot core.Slot
}

// Arena owns a sequence of elements and hands out generation-checked
// references to them.
//
// Arena is not safe for concurrent use.
type Arena[T any] struct {
	data          []T
	generation    uint32
	invalidations uint64
	staleReads    uint64
}

// New creates an arena that takes ownership of data.
// The slice is used as-is; the caller must not retain or modify it.
func New[T any](data []T) *Arena[T] {
	return &Arena[T]{
		data: data,
		// Initialize generation to 1 so 0 is invalid
		generation: 1,
	}
}

// Len returns the number of live elements.
func (a *Arena[T]) Len() int {
	return len(a.data)
}

// Generation returns the current generation of the arena.
func (a *Arena[T]) Generation() uint32 {
	return a.generation
}

// Ref returns a reference to slot under the current generation.
func (a *Arena[T]) Ref(slot core.Slot) Ref {
	return Ref{Gen: a.generation, Slot: slot}
}

// Get returns a pointer to the element at slot, or nil if the slot is out of
// range. It does not check generations.
func (a *Arena[T]) Get(slot core.Slot) *T {
	if int64(slot) >= int64(len(a.data)) {
		return nil
	}
	return &a.data[slot]
}

// GetSafe returns a pointer to the element behind ref.
// It validates the generation and returns ErrStaleRef if the reference is stale.
func (a *Arena[T]) GetSafe(ref Ref) (*T, error) {
	if ref.Gen != a.generation {
		a.staleReads++
		return nil, fmt.Errorf("%w: generation %d, arena at %d", ErrStaleRef, ref.Gen, a.generation)
	}
	p := a.Get(ref.Slot)
	if p == nil {
		a.staleReads++
		return nil, fmt.Errorf("%w: slot %d out of range", ErrStaleRef, ref.Slot)
	}
	return p, nil
}

// Valid reports whether gen is the current generation.
func (a *Arena[T]) Valid(gen uint32) bool {
	return gen == a.generation
}

// Take moves the elements out of the arena and returns them.
// The arena is left empty and every outstanding reference becomes stale.
func (a *Arena[T]) Take() []T {
	data := a.data
	a.data = nil
	a.invalidate()
	return data
}

// Free releases the elements to the garbage collector.
// All references taken before Free become stale. Free may be called more
// than once; each call bumps the generation again.
func (a *Arena[T]) Free() {
	clear(a.data)
	a.data = nil
	a.invalidate()
}

func (a *Arena[T]) invalidate() {
	a.generation++
	if a.generation == 0 {
		// Skip the reserved null generation on wrap-around.
		a.generation = 1
	}
	a.invalidations++
}

// Stats returns the current arena statistics.
func (a *Arena[T]) Stats() Stats {
	return Stats{
		Slots:         len(a.data),
		Generation:    a.generation,
		Invalidations: a.invalidations,
		StaleReads:    a.staleReads,
	}
}

func (a *Arena[T]) String() string {
	stats := a.Stats()
	return fmt.Sprintf(
		"Arena{slots: %d, generation: %d, invalidations: %d, stale reads: %d}",
		stats.Slots,
		stats.Generation,
		stats.Invalidations,
		stats.StaleReads,
	)
}
