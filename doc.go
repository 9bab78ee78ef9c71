// Package viewdb provides a minimal in-memory record store with borrowed views.
//
// A Store owns an ordered sequence of records of any type. Querying it with a
// predicate produces views: lightweight, ordered subsets that reference the
// records in place instead of copying them.
//
// # Quick Start
//
//	s := viewdb.New([]int{-1, 5, 0, 7})
//	defer s.Close()
//
//	positive := func(v int) bool { return v > 0 }
//	view, _ := s.Select(positive)
//	for v, err := range view.All() {
//	    // 5, 7
//	}
//
// # Views
//
// There are two kinds of views:
//
//   - View: read-only, shared. Any number of views may reference the same
//     records. Narrowing a View with Select leaves it untouched.
//   - MutView: exclusive. While it is live no other view may reference its
//     records. Narrowing a MutView consumes it.
//
// Views are materialized sequences of references, so they can be iterated
// any number of times. Iteration always follows insertion order.
//
// # Lifetimes and Aliasing
//
// A view is only valid while its store is. Go has no borrow checker, so the
// rules are enforced at runtime and every violation fails fast with a
// distinct error:
//
//   - ErrStaleReference: the view outlived its store (Close or Drain)
//   - ErrExclusiveConflict: the access would alias a mutable view
//   - ErrConsumed: the view was narrowed or released
//   - ErrClosed: the store itself is gone
//
// Views hold borrows until they are released:
//
//	v, _ := s.Select(positive)
//	defer v.Release()
//
// # Filtering Two Views
//
// FilterTwo applies one predicate to two views that may come from different
// stores with different lifetimes. Each result is bound only to its own
// source, so closing one store never affects the other result:
//
//	a2, b2, err := viewdb.FilterTwo(viewA, viewB, viewdb.Always[int]())
//
// # Consuming Iteration
//
// Drain moves the records out of the store and yields them by value. The
// store is closed afterwards:
//
//	for v, err := range s.Drain() {
//	    // owned values
//	}
package viewdb
