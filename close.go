package viewdb

import "context"

// Close destroys the store. Every view derived from it becomes stale.
// Close is idempotent and always returns nil.
func (s *Store[T]) Close() error {
	if s == nil || s.closed {
		return nil
	}
	size := s.arena.Len()
	live := !s.ledger.Idle()
	s.arena.Free()
	s.ledger.Reset()
	s.closed = true
	s.logger.LogClose(context.Background(), size, live)
	return nil
}
