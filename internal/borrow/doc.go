// Package borrow implements the aliasing ledger of a store.
//
// Every view registers the slots it references with the ledger of its store:
//
//   - Shared borrows (read views) are counted per slot. Any number of shared
//     borrows may overlap.
//   - Exclusive borrows (mutable views) are tracked as a set. An exclusive
//     borrow may not overlap any other borrow, shared or exclusive.
//
// Conflicts are reported as *ConflictError, which unwraps to ErrConflict and
// names the first offending slot.
//
// The ledger is not safe for concurrent use.
package borrow
