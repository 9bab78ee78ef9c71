// Package arena provides the generation-checked slot storage behind a store.
//
// An Arena owns the backing slice of a store. Elements are addressed by
// core.Slot, and every borrowed reference is an arena.Ref carrying the
// generation it was taken under.
//
// # Features
//
//   - Stable slots: an element never moves while the arena is live
//   - Generation tracking: Free and Take bump the generation, turning every
//     outstanding Ref stale
//   - Fail-fast dereference: GetSafe returns ErrStaleRef instead of data that
//     no longer belongs to the caller
//
// # Safety
//
// Methods never panic on bad input. Get returns nil for invalid slots and
// GetSafe returns an error for stale or out-of-range references.
package arena
