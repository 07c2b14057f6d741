package inflight

import (
	"errors"
	"sync"
)

var ErrAlreadyInFlight = errors.New("a transition for this record is already in progress")

// Set tracks record ids with an outstanding status transition so a record is
// never submitted twice concurrently. Completion must be deferred at the call
// site so the id is released on both the success and the error path.
type Set struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewSet() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// Begin reserves recordID. It fails with ErrAlreadyInFlight if a transition
// for the record is still outstanding.
func (s *Set) Begin(recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[recordID]; ok {
		return ErrAlreadyInFlight
	}
	s.ids[recordID] = struct{}{}
	return nil
}

// Complete releases recordID unconditionally.
func (s *Set) Complete(recordID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, recordID)
}

// Contains reports whether recordID has an outstanding transition.
func (s *Set) Contains(recordID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[recordID]
	return ok
}

// Len returns the number of outstanding transitions.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
