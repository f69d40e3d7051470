// Package randkey generates random byte strings for stress and property
// tests, so test code across packages shares one generator instead of
// each package rolling its own.
package randkey

import (
	"sort"

	"golang.org/x/exp/rand"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Bytes returns a random byte string of the given length drawn from an
// alphanumeric charset, safe to use as a RESP bulk string payload.
func Bytes(r *rand.Rand, length int) []byte {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[r.Intn(len(charset))]
	}
	return b
}

// Sort orders a slice of byte strings lexicographically in place, used by
// tests that need a deterministic order to compare against KEYS output.
func Sort(data [][]byte) {
	sort.Slice(data, func(i, j int) bool {
		return string(data[i]) < string(data[j])
	})
}
