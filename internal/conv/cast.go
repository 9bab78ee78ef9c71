package conv

import (
	"fmt"
	"math"

	"github.com/hupe1980/viewdb/core"
)

// IntToSlot converts a position to a slot safely.
func IntToSlot(v int) (core.Slot, error) {
	if v < 0 {
		return 0, fmt.Errorf("slot overflow: %d cannot be converted to a slot (negative)", v)
	}
	if uint64(v) > uint64(core.MaxSlot) {
		return 0, fmt.Errorf("slot overflow: %d cannot be converted to a slot (too large)", v)
	}
	return core.Slot(v), nil
}

// SlotCount converts an element count to the exclusive upper bound of the
// slot range [0, n).
func SlotCount(n int) (uint64, error) {
	if n < 0 {
		return 0, fmt.Errorf("slot overflow: count %d is negative", n)
	}
	if uint64(n) > uint64(core.MaxSlot)+1 {
		return 0, fmt.Errorf("slot overflow: count %d exceeds slot space", n)
	}
	return uint64(n), nil
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}
