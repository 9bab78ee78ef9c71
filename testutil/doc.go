// Package testutil provides testing utilities for viewdb.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random record sequences and computing
// the expected result of a selection by brute force.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	data := rng.Ints(1000, -100, 100) // uniform in [-100, 100)
//
// # Ground Truth
//
//	want := testutil.Filter(data, isPositive)
package testutil
