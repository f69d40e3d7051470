// Package store implements the typed, lazily- and actively-expiring
// keyspace that sits beneath the command registry. Exactly one goroutine
// — the reactor's Engine loop — ever calls into a Storage, so nothing
// here takes a lock; see reactor/engine.go for how that invariant is
// maintained.
package store

import (
	"time"

	"golang.org/x/exp/rand"
)

// DefaultSweepMaxChecks is the default bound on how many entries a single
// Sweep call examines.
const DefaultSweepMaxChecks = 20

type entry struct {
	value     Value
	expiresAt time.Time
	hasExpiry bool
}

// expired reports whether the entry's deadline, if any, has passed as of
// now. now is taken from time.Now() throughout this package, which in Go
// carries a monotonic reading alongside the wall clock — comparisons via
// Before/After/Sub use that monotonic reading automatically, so expiry
// checks are immune to wall-clock adjustments without any extra plumbing.
func (e *entry) expired(now time.Time) bool {
	return e.hasExpiry && !e.expiresAt.After(now)
}

// Storage is the keyspace: a map from owned string keys to Entry, plus a
// btree-backed secondary index that gives KEYS a stable iteration order.
//
// Every method takes its key as a string. The lookups themselves never
// copy the key, but a caller holding the key as a []byte (as the command
// handlers do) converts it with string(...) before the call, and that
// conversion may allocate.
type Storage struct {
	data  map[string]*entry
	index *keyIndex
	rng   *rand.Rand
}

// New returns an empty Storage.
func New() *Storage {
	return &Storage{
		data:  make(map[string]*entry),
		index: newKeyIndex(),
		rng:   rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// findEntry is the one read path every public operation funnels through;
// it is where lazy expiration happens.
func (s *Storage) findEntry(key string) *entry {
	e, ok := s.data[key]
	if !ok {
		return nil
	}
	if e.expired(time.Now()) {
		delete(s.data, key)
		s.index.remove(key)
		return nil
	}
	return e
}

// Exists reports whether key is present and not expired.
func (s *Storage) Exists(key string) bool {
	return s.findEntry(key) != nil
}

// Erase removes key unconditionally, with no expiration check: erasing a
// structurally-present-but-expired key still reports true, since it was
// still there to remove.
func (s *Storage) Erase(key string) bool {
	if _, ok := s.data[key]; !ok {
		return false
	}
	delete(s.data, key)
	s.index.remove(key)
	return true
}

// Keys returns every non-expired key, sweeping out any expired entry it
// encounters along the way. Order is the btree index's ascending byte
// order — deterministic, unlike a bare map range.
func (s *Storage) Keys() []string {
	now := time.Now()
	result := make([]string, 0, len(s.data))
	var expired []string
	s.index.ascend(func(key string) bool {
		e := s.data[key]
		if e == nil || e.expired(now) {
			expired = append(expired, key)
		} else {
			result = append(result, key)
		}
		return true
	})
	for _, key := range expired {
		delete(s.data, key)
		s.index.remove(key)
	}
	return result
}

// Clear removes every entry.
func (s *Storage) Clear() {
	s.data = make(map[string]*entry)
	s.index = newKeyIndex()
}

// Len returns the number of structurally-present entries, including any
// not-yet-swept expired ones, so a caller can observe what Sweep removed.
func (s *Storage) Len() int {
	return len(s.data)
}

func (s *Storage) insert(key string, v Value) *entry {
	e := &entry{value: v}
	s.data[key] = e
	s.index.insert(key)
	return e
}

// FindText returns the Text stored at key, ErrNotFound if absent or
// expired, or ErrWrongType if key holds a different kind.
func (s *Storage) FindText(key string) (*Text, error) {
	e := s.findEntry(key)
	if e == nil {
		return nil, ErrNotFound
	}
	t, ok := e.value.(*Text)
	if !ok {
		return nil, ErrWrongType
	}
	return t, nil
}

// FindOrCreateText returns the Text at key, creating an empty one if
// absent. ErrWrongType if a different kind is already stored.
func (s *Storage) FindOrCreateText(key string) (*Text, error) {
	e := s.findEntry(key)
	if e == nil {
		t := NewText(nil)
		s.insert(key, t)
		return t, nil
	}
	t, ok := e.value.(*Text)
	if !ok {
		return nil, ErrWrongType
	}
	return t, nil
}

// SetText overwrites key with data as a Text value, clearing any
// previous TTL (matching real Redis SET semantics). ErrWrongType if key
// holds a non-expired value of a different kind.
func (s *Storage) SetText(key string, data []byte) error {
	e := s.findEntry(key)
	if e != nil {
		if _, ok := e.value.(*Text); !ok {
			return ErrWrongType
		}
	}
	s.insert(key, NewText(data))
	return nil
}

// FindDeque returns the Deque stored at key, ErrNotFound if absent or
// expired, or ErrWrongType if key holds a different kind.
func (s *Storage) FindDeque(key string) (*Deque, error) {
	e := s.findEntry(key)
	if e == nil {
		return nil, ErrNotFound
	}
	d, ok := e.value.(*Deque)
	if !ok {
		return nil, ErrWrongType
	}
	return d, nil
}

// FindOrCreateDeque returns the Deque at key, creating an empty one if
// absent. ErrWrongType if a different kind is already stored.
func (s *Storage) FindOrCreateDeque(key string) (*Deque, error) {
	e := s.findEntry(key)
	if e == nil {
		d := NewDeque()
		s.insert(key, d)
		return d, nil
	}
	d, ok := e.value.(*Deque)
	if !ok {
		return nil, ErrWrongType
	}
	return d, nil
}

// FindSet returns the Set stored at key, ErrNotFound if absent or
// expired, or ErrWrongType if key holds a different kind.
func (s *Storage) FindSet(key string) (*Set, error) {
	e := s.findEntry(key)
	if e == nil {
		return nil, ErrNotFound
	}
	set, ok := e.value.(*Set)
	if !ok {
		return nil, ErrWrongType
	}
	return set, nil
}

// FindOrCreateSet returns the Set at key, creating an empty one if
// absent. ErrWrongType if a different kind is already stored.
func (s *Storage) FindOrCreateSet(key string) (*Set, error) {
	e := s.findEntry(key)
	if e == nil {
		set := NewSet()
		s.insert(key, set)
		return set, nil
	}
	set, ok := e.value.(*Set)
	if !ok {
		return nil, ErrWrongType
	}
	return set, nil
}

// SetExpiry sets an absolute deadline ttl in the future on key, returning
// false if key is absent or already expired.
func (s *Storage) SetExpiry(key string, ttl time.Duration) bool {
	e := s.findEntry(key)
	if e == nil {
		return false
	}
	e.expiresAt = time.Now().Add(ttl)
	e.hasExpiry = true
	return true
}

// GetTTL returns -2 if key is absent or expired, -1 if present with no
// deadline, else the remaining whole seconds until expiry (never
// negative).
func (s *Storage) GetTTL(key string) int64 {
	e := s.findEntry(key)
	if e == nil {
		return -2
	}
	if !e.hasExpiry {
		return -1
	}
	remaining := int64(time.Until(e.expiresAt) / time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}
