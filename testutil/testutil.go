package testutil

import (
	"math/rand"
	"sync"
)

// Record is a small non-scalar element type for store tests.
type Record struct {
	ID    int
	Value int
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Ints returns n pseudo-random integers in [minVal, maxVal).
// Locks only once per call (preferred over calling Intn in a loop).
func (r *RNG) Ints(n, minVal, maxVal int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal
	out := make([]int, n)
	for i := range out {
		out[i] = minVal + r.rand.Intn(span)
	}
	return out
}

// Records returns n records with sequential IDs and values in [minVal, maxVal).
func (r *RNG) Records(n, minVal, maxVal int) []Record {
	values := r.Ints(n, minVal, maxVal)
	out := make([]Record, n)
	for i, v := range values {
		out[i] = Record{ID: i, Value: v}
	}
	return out
}

// Range returns the integers in [lo, hi).
func Range(lo, hi int) []int {
	if hi <= lo {
		return nil
	}
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}

// Filter returns the elements of xs for which keep returns true, in order.
// It is the brute-force reference for store and view selections.
func Filter[T any](xs []T, keep func(T) bool) []T {
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}
