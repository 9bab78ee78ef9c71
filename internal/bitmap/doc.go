// Package bitmap provides the slot sets behind views and the borrow ledger.
//
// A Set is a thin wrapper around a 32-bit Roaring bitmap keyed by core.Slot.
// Roaring keeps its values sorted, so iterating a Set always visits slots in
// ascending order. Because slots are handed out in insertion order, a view
// built on a Set preserves the relative order of the records it references
// without any extra sorting, and can never reference the same record twice.
//
// # Example Usage
//
//	s := bitmap.New()
//	s.Add(3)
//	s.Add(1)
//
//	for slot := range s.Iterator() {
//	    // 1, then 3
//	}
//
//	held := bitmap.Of(3, 7)
//	if s.Intersects(held) {
//	    // conflict on slot 3
//	}
package bitmap
