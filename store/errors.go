package store

import "github.com/pkg/errors"

// Sentinel storage errors, returned by the Find*/FindOrCreate* family.
// Handlers translate these into the appropriate RESP replies.
var (
	// ErrNotFound means the key is absent (or was lazily expired on this
	// access).
	ErrNotFound = errors.New("key not found")
	// ErrWrongType means the key exists but holds a different StoredValue
	// kind than the one requested.
	ErrWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
)
