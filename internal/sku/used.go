package sku

import "sync"

// UsedSet is a mutex-guarded set of codes already in circulation. One
// synthesis batch shares one UsedSet; concurrent batches sharing a set get
// their serialization from the lock instead of coordinating externally.
type UsedSet struct {
	mu    sync.Mutex
	codes map[string]struct{}
}

// NewUsedSet builds a set pre-populated with the given codes.
func NewUsedSet(codes ...string) *UsedSet {
	s := &UsedSet{codes: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		s.codes[c] = struct{}{}
	}
	return s
}

// Contains reports whether a code is taken.
func (s *UsedSet) Contains(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.codes[code]
	return ok
}

// Add marks a code as taken.
func (s *UsedSet) Add(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code] = struct{}{}
}

// Len returns the number of codes in the set.
func (s *UsedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}
