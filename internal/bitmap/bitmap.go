package bitmap

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/viewdb/core"
	"github.com/hupe1980/viewdb/internal/conv"
)

// Set is a sorted set of slots backed by a Roaring bitmap.
type Set struct {
	rb *roaring.Bitmap
}

// New creates a new empty set.
func New() *Set {
	return &Set{
		rb: roaring.New(),
	}
}

// Of creates a set containing the given slots.
func Of(slots ...core.Slot) *Set {
	s := New()
	for _, slot := range slots {
		s.rb.Add(uint32(slot))
	}
	return s
}

// Range creates a set containing every slot in [0, n).
// It panics if n is negative or exceeds the slot space.
func Range(n int) *Set {
	hi, err := conv.SlotCount(n)
	if err != nil {
		panic("bitmap: " + err.Error())
	}
	s := New()
	if hi > 0 {
		s.rb.AddRange(0, hi)
	}
	return s
}

// Add adds a slot to the set.
func (s *Set) Add(slot core.Slot) {
	s.rb.Add(uint32(slot))
}

// Remove removes a slot from the set.
func (s *Set) Remove(slot core.Slot) {
	s.rb.Remove(uint32(slot))
}

// Contains checks if a slot is in the set.
func (s *Set) Contains(slot core.Slot) bool {
	return s.rb.Contains(uint32(slot))
}

// IsEmpty returns true if the set is empty.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of slots in the set.
func (s *Set) Cardinality() int {
	return int(s.rb.GetCardinality()) //nolint:gosec // slots are 32-bit
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{
		rb: s.rb.Clone(),
	}
}

// And keeps only the slots that are also in other.
func (s *Set) And(other *Set) {
	s.rb.And(other.rb)
}

// AndNot removes every slot that is in other.
func (s *Set) AndNot(other *Set) {
	s.rb.AndNot(other.rb)
}

// Or adds every slot of other.
func (s *Set) Or(other *Set) {
	s.rb.Or(other.rb)
}

// Intersects reports whether the two sets share at least one slot.
func (s *Set) Intersects(other *Set) bool {
	return s.rb.Intersects(other.rb)
}

// Intersection returns a new set with the slots present in both sets.
func Intersection(a, b *Set) *Set {
	return &Set{
		rb: roaring.And(a.rb, b.rb),
	}
}

// Minimum returns the smallest slot of the set.
// The second return value is false if the set is empty.
func (s *Set) Minimum() (core.Slot, bool) {
	if s.rb.IsEmpty() {
		return 0, false
	}
	return core.Slot(s.rb.Minimum()), true
}

// Iterator returns an iterator over the set in ascending slot order.
func (s *Set) Iterator() iter.Seq[core.Slot] {
	return func(yield func(core.Slot) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(core.Slot(it.Next())) {
				return
			}
		}
	}
}

// ToSlice returns the slots in ascending order.
func (s *Set) ToSlice() []core.Slot {
	out := make([]core.Slot, 0, s.rb.GetCardinality())
	for slot := range s.Iterator() {
		out = append(out, slot)
	}
	return out
}

// Clear removes all slots from the set.
func (s *Set) Clear() {
	s.rb.Clear()
}
