package store

import "time"

// Sweep is the active-expiration pass: a bounded, probabilistic scan that
// evicts expired entries even when nothing ever reads them again.
//
// Go's map type exposes no stable bucket handle to walk directly, so
// each attempt instead uses rng to pick a random offset into the map's
// current (randomized) iteration order and examines the single entry
// found there. The stopping rule: continue until either maxChecks
// entries have been examined or 2*maxChecks attempts have been made,
// whichever comes first — the attempt cap exists so an (almost) empty
// keyspace can't spin.
func (s *Storage) Sweep(maxChecks int) {
	if maxChecks <= 0 {
		maxChecks = DefaultSweepMaxChecks
	}
	if len(s.data) == 0 {
		return
	}

	now := time.Now()
	checked := 0
	maxAttempts := maxChecks * 2

	for attempt := 0; checked < maxChecks && attempt < maxAttempts; attempt++ {
		if len(s.data) == 0 {
			return
		}
		skip := s.rng.Intn(len(s.data))
		i := 0
		for key, e := range s.data {
			if i < skip {
				i++
				continue
			}
			checked++
			if e.expired(now) {
				delete(s.data, key)
				s.index.remove(key)
			}
			break
		}
	}
}
