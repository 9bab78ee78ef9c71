package viewdb

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hupe1980/viewdb/core"
	"github.com/hupe1980/viewdb/internal/arena"
	"github.com/hupe1980/viewdb/internal/borrow"
)

var (
	// ErrClosed is returned when an operation is attempted on a closed or
	// drained store.
	ErrClosed = errors.New("store closed")

	// ErrStaleReference is returned when a view is used after the store it
	// points into was closed or drained.
	ErrStaleReference = errors.New("stale reference")

	// ErrExclusiveConflict is returned when an operation would alias elements
	// held by a mutable view, or would hand out a mutable view over elements
	// that are already borrowed.
	ErrExclusiveConflict = errors.New("exclusive-access conflict")

	// ErrConsumed is returned when a view is used after it was narrowed
	// (mutable views) or released.
	ErrConsumed = errors.New("view consumed")
)

// AccessError describes a rejected access to a store or view.
//
// It wraps one of the sentinel errors above, so callers can match it with
// errors.Is and still get the details via errors.As.
type AccessError struct {
	// Op is the operation that was rejected, e.g. "select" or "iterate".
	Op string
	// Store identifies the store the access was aimed at.
	Store uuid.UUID
	// Slot is the first offending slot, if any.
	Slot    core.Slot
	HasSlot bool
	// Err is the public sentinel.
	Err   error
	cause error
}

func (e *AccessError) Error() string {
	if e.HasSlot {
		return fmt.Sprintf("viewdb: %s: %v (store=%s, slot=%d)", e.Op, e.Err, e.Store, e.Slot)
	}
	return fmt.Sprintf("viewdb: %s: %v (store=%s)", e.Op, e.Err, e.Store)
}

// Unwrap returns both the public sentinel and the internal cause.
func (e *AccessError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.cause}
}

// IsStale returns true if err reports a view used after its store went away.
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleReference)
}

// IsConflict returns true if err reports an aliasing violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrExclusiveConflict)
}

func newAccessError(op string, store uuid.UUID, sentinel error) *AccessError {
	return &AccessError{Op: op, Store: store, Err: sentinel}
}

// translateError maps errors from the internal packages onto the public
// sentinels.
func translateError(op string, store uuid.UUID, err error) error {
	if err == nil {
		return nil
	}

	var ae *AccessError
	if errors.As(err, &ae) {
		return err
	}

	var ce *borrow.ConflictError
	if errors.As(err, &ce) {
		return &AccessError{Op: op, Store: store, Slot: ce.Slot, HasSlot: true, Err: ErrExclusiveConflict, cause: err}
	}
	if errors.Is(err, arena.ErrStaleRef) {
		return &AccessError{Op: op, Store: store, Err: ErrStaleReference, cause: err}
	}

	return err
}
