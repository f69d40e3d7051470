package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStorage_SetGetText(t *testing.T) {
	s := New()
	err := s.SetText("k", []byte("hello"))
	assert.NoError(t, err)

	text, err := s.FindText("k")
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(text.Data))
}

func TestStorage_FindMissingIsNotFound(t *testing.T) {
	s := New()
	_, err := s.FindText("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_WrongTypeConfinement(t *testing.T) {
	s := New()
	assert.NoError(t, s.SetText("k", []byte("v")))

	_, err := s.FindDeque("k")
	assert.ErrorIs(t, err, ErrWrongType)

	_, err = s.FindSet("k")
	assert.ErrorIs(t, err, ErrWrongType)

	_, err = s.FindOrCreateDeque("k")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestStorage_FindOrCreateDequeCreatesOnAbsence(t *testing.T) {
	s := New()
	d, err := s.FindOrCreateDeque("list")
	assert.NoError(t, err)
	assert.Equal(t, 0, d.Len())
	assert.True(t, s.Exists("list"))
}

func TestStorage_EraseReportsPresence(t *testing.T) {
	s := New()
	assert.False(t, s.Erase("ghost"))
	assert.NoError(t, s.SetText("k", []byte("v")))
	assert.True(t, s.Erase("k"))
	assert.False(t, s.Exists("k"))
}

func TestStorage_ClearRemovesEverything(t *testing.T) {
	s := New()
	assert.NoError(t, s.SetText("a", []byte("1")))
	assert.NoError(t, s.SetText("b", []byte("2")))
	s.Clear()
	assert.Equal(t, 0, len(s.Keys()))
}

func TestStorage_KeysConsistency(t *testing.T) {
	s := New()
	assert.NoError(t, s.SetText("a", []byte("1")))
	assert.NoError(t, s.SetText("b", []byte("2")))
	assert.NoError(t, s.SetText("c", []byte("3")))

	keys := s.Keys()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, keys)
}

func TestStorage_LazyExpiration(t *testing.T) {
	s := New()
	assert.NoError(t, s.SetText("k", []byte("v")))
	assert.True(t, s.SetExpiry("k", 0))

	time.Sleep(2 * time.Millisecond)

	assert.False(t, s.Exists("k"))
	assert.EqualValues(t, -2, s.GetTTL("k"))
	_, err := s.FindText("k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_TTLNoDeadline(t *testing.T) {
	s := New()
	assert.NoError(t, s.SetText("k", []byte("v")))
	assert.EqualValues(t, -1, s.GetTTL("k"))
}

func TestStorage_TTLMissing(t *testing.T) {
	s := New()
	assert.EqualValues(t, -2, s.GetTTL("missing"))
}

func TestStorage_TTLMonotonicity(t *testing.T) {
	s := New()
	assert.NoError(t, s.SetText("k", []byte("v")))
	assert.True(t, s.SetExpiry("k", 100*time.Second))

	ttl := s.GetTTL("k")
	assert.GreaterOrEqual(t, ttl, int64(99))
	assert.LessOrEqual(t, ttl, int64(100))
}

func TestStorage_SetExpiryOnMissingKeyFails(t *testing.T) {
	s := New()
	assert.False(t, s.SetExpiry("missing", time.Second))
}

func TestStorage_SetTextClearsExistingTTL(t *testing.T) {
	s := New()
	assert.NoError(t, s.SetText("k", []byte("v")))
	assert.True(t, s.SetExpiry("k", time.Second))
	assert.NoError(t, s.SetText("k", []byte("v2")))
	assert.EqualValues(t, -1, s.GetTTL("k"))
}

func TestStorage_SweepTerminatesWithinBound(t *testing.T) {
	s := New()
	for i := 0; i < 100; i++ {
		key := string(rune('a' + i%26))
		assert.NoError(t, s.SetText(key, []byte("v")))
	}
	assert.NotPanics(t, func() { s.Sweep(20) })
}

func TestStorage_SweepEvictsExpiredEntries(t *testing.T) {
	s := New()
	for i := 0; i < 50; i++ {
		key := string(rune('a')) + string(rune('A'+i))
		assert.NoError(t, s.SetText(key, []byte("v")))
		assert.True(t, s.SetExpiry(key, 0))
	}
	time.Sleep(2 * time.Millisecond)

	before := s.Len()
	for i := 0; i < 50; i++ {
		s.Sweep(20)
	}
	after := s.Len()
	assert.Less(t, after, before)
}

func TestStorage_SweepOnEmptyStorage(t *testing.T) {
	s := New()
	assert.NotPanics(t, func() { s.Sweep(20) })
}

func TestDeque_PushPopOrder(t *testing.T) {
	d := NewDeque()
	d.PushBack([]byte("b"))
	d.PushBack([]byte("c"))
	d.PushFront([]byte("a"))

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, "a", string(d.At(0)))
	assert.Equal(t, "b", string(d.At(1)))
	assert.Equal(t, "c", string(d.At(2)))

	v, ok := d.PopFront()
	assert.True(t, ok)
	assert.Equal(t, "a", string(v))

	v, ok = d.PopBack()
	assert.True(t, ok)
	assert.Equal(t, "c", string(v))

	assert.Equal(t, 1, d.Len())
}

func TestDeque_PopEmpty(t *testing.T) {
	d := NewDeque()
	_, ok := d.PopFront()
	assert.False(t, ok)
	_, ok = d.PopBack()
	assert.False(t, ok)
}

func TestDeque_GrowsPastInitialCapacity(t *testing.T) {
	d := NewDeque()
	for i := 0; i < 100; i++ {
		d.PushBack([]byte{byte(i)})
	}
	assert.Equal(t, 100, d.Len())
	for i := 0; i < 100; i++ {
		assert.Equal(t, byte(i), d.At(i)[0])
	}
}

func TestSet_AddRemoveContains(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("a"))
	assert.True(t, s.Contains("a"))
	assert.Equal(t, 1, s.Len())

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.False(t, s.Contains("a"))
}
