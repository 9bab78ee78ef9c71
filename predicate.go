package viewdb

// Predicate selects elements. It must be pure: no side effects visible to
// other callers and the same answer for the same element.
type Predicate[T any] func(T) bool

// Always returns a predicate that keeps every element.
func Always[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// Never returns a predicate that drops every element.
func Never[T any]() Predicate[T] {
	return func(T) bool { return false }
}

// And keeps an element only if every predicate keeps it.
// Evaluation stops at the first predicate that drops the element.
// And() with no operands keeps everything.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Or keeps an element if any predicate keeps it.
// Evaluation stops at the first predicate that keeps the element.
// Or() with no operands drops everything.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p(v) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(v T) bool { return !p(v) }
}
