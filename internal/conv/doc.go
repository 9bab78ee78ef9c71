// Package conv provides checked conversions between Go's int and slot
// positions.
//
// Slots are 32-bit, so a store can address at most MaxSlot+1 elements.
// These functions reject values outside that space instead of wrapping.
//
// For conversions that are provably safe by domain constraints (e.g. loop
// indices bounded by a bitmap), use direct type casts instead.
package conv
