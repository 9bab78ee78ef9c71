package viewdb

import "errors"

// FilterOne returns a new view over the elements of v for which p returns
// true. It is equivalent to v.Select(p).
func FilterOne[T any](v *View[T], p Predicate[T]) (*View[T], error) {
	return v.Select(p)
}

// FilterTwo applies the same predicate to a and b independently and returns
// one new view per source.
//
// Each result points into the store of its own source and stays valid as
// long as that store does: closing the store behind b never invalidates the
// result derived from a, and vice versa. The sources may come from the same
// store or from different ones.
//
// The two filters do not affect each other. If one side fails its result is
// nil and the failure is reported in err, but the other result is still
// returned.
func FilterTwo[T any](a, b *View[T], p Predicate[T]) (*View[T], *View[T], error) {
	ra, errA := FilterOne(a, p)
	rb, errB := FilterOne(b, p)
	return ra, rb, errors.Join(errA, errB)
}
