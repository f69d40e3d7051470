package store

// Set is an unordered collection of unique byte strings with O(1) average
// membership, insertion, and removal. Backs SADD/SREM/SCARD/SMEMBERS/
// SISMEMBER/SINTER.
type Set struct {
	members map[string]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{members: make(map[string]struct{})}
}

// Add inserts member, returning true if it was not already present.
func (s *Set) Add(member string) bool {
	if _, exists := s.members[member]; exists {
		return false
	}
	s.members[member] = struct{}{}
	return true
}

// Remove deletes member, returning true if it was present.
func (s *Set) Remove(member string) bool {
	if _, exists := s.members[member]; !exists {
		return false
	}
	delete(s.members, member)
	return true
}

// Contains reports whether member is in the set.
func (s *Set) Contains(member string) bool {
	_, exists := s.members[member]
	return exists
}

// Len returns the cardinality of the set.
func (s *Set) Len() int { return len(s.members) }

// Members returns every member, in unspecified order.
func (s *Set) Members() []string {
	out := make([]string, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	return out
}
