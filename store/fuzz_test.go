package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/emberkv/ember/internal/randkey"
)

// TestStorage_RandomKeysSurviveKeysRoundTrip stress-tests SetText/Keys
// with a large batch of random keys, asserting that Keys() always
// reports exactly the set of keys currently written — regardless of
// their random byte content — in sorted order.
func TestStorage_RandomKeysSurviveKeysRoundTrip(t *testing.T) {
	s := New()
	r := rand.New(rand.NewSource(1))

	const n = 500
	want := make([][]byte, 0, n)
	seen := make(map[string]bool)
	for len(want) < n {
		k := randkey.Bytes(r, 12)
		if seen[string(k)] {
			continue
		}
		seen[string(k)] = true
		want = append(want, k)
		assert.NoError(t, s.SetText(string(k), randkey.Bytes(r, 8)))
	}

	randkey.Sort(want)
	wantStrs := make([]string, len(want))
	for i, k := range want {
		wantStrs[i] = string(k)
	}

	assert.Equal(t, wantStrs, s.Keys())
}
