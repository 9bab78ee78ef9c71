// Package core holds the identifier types shared by the store, the views and
// the internal bookkeeping packages.
package core

// Slot is the dense position of an element inside its owning store.
// Slots are assigned in insertion order, so ascending slot order is the
// original order of the records.
type Slot uint32

// MaxSlot is the maximum possible value for a Slot.
const MaxSlot = ^Slot(0)
