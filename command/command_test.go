package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emberkv/ember/arena"
	"github.com/emberkv/ember/store"
	"github.com/emberkv/ember/wire"
)

func bulk(s string) *wire.Value {
	return wire.NewBulkString([]byte(s))
}

func TestDispatch_Ping(t *testing.T) {
	st := store.New()
	a := arena.New(4096)

	reply := Dispatch("PING", nil, st, a)
	assert.Equal(t, wire.SimpleString, reply.Kind)
	assert.Equal(t, "PONG", string(reply.Str))

	reply = Dispatch("PING", []*wire.Value{bulk("hello")}, st, a)
	assert.Equal(t, wire.BulkString, reply.Kind)
	assert.Equal(t, "hello", string(reply.Str))

	reply = Dispatch("PING", []*wire.Value{bulk("a"), bulk("b")}, st, a)
	assert.Equal(t, wire.Error, reply.Kind)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	st := store.New()
	a := arena.New(4096)
	reply := Dispatch("NOSUCHCOMMAND", nil, st, a)
	assert.Equal(t, wire.Error, reply.Kind)
}

func TestDispatch_SetGet(t *testing.T) {
	st := store.New()
	a := arena.New(4096)

	reply := Dispatch("SET", []*wire.Value{bulk("k"), bulk("v")}, st, a)
	assert.Equal(t, "OK", string(reply.Str))

	reply = Dispatch("GET", []*wire.Value{bulk("k")}, st, a)
	assert.Equal(t, wire.BulkString, reply.Kind)
	assert.Equal(t, "v", string(reply.Str))
}

func TestDispatch_GetMissingIsNil(t *testing.T) {
	st := store.New()
	a := arena.New(4096)

	reply := Dispatch("GET", []*wire.Value{bulk("ghost")}, st, a)
	assert.Equal(t, wire.BulkString, reply.Kind)
	assert.Equal(t, "(nil)", string(reply.Str))
}

func TestDispatch_GetMissingStrictNil(t *testing.T) {
	SetStrictNilReplies(true)
	defer SetStrictNilReplies(false)

	st := store.New()
	a := arena.New(4096)
	reply := Dispatch("GET", []*wire.Value{bulk("ghost")}, st, a)
	assert.True(t, reply.Null)
}

func TestDispatch_WrongType(t *testing.T) {
	st := store.New()
	a := arena.New(4096)

	Dispatch("SET", []*wire.Value{bulk("k"), bulk("v")}, st, a)
	reply := Dispatch("LPUSH", []*wire.Value{bulk("k"), bulk("x")}, st, a)
	assert.Equal(t, wire.Error, reply.Kind)
	assert.Contains(t, string(reply.Str), "WRONGTYPE")
}

func TestDispatch_DelKeysFlushDB(t *testing.T) {
	st := store.New()
	a := arena.New(4096)

	Dispatch("SET", []*wire.Value{bulk("a"), bulk("1")}, st, a)
	Dispatch("SET", []*wire.Value{bulk("b"), bulk("2")}, st, a)

	reply := Dispatch("KEYS", nil, st, a)
	assert.Equal(t, wire.Array, reply.Kind)
	assert.Len(t, reply.Elems, 2)

	reply = Dispatch("DEL", []*wire.Value{bulk("a"), bulk("ghost")}, st, a)
	assert.EqualValues(t, 1, reply.Int)

	reply = Dispatch("FLUSHDB", nil, st, a)
	assert.Equal(t, "OK", string(reply.Str))

	reply = Dispatch("KEYS", nil, st, a)
	assert.Len(t, reply.Elems, 0)
}

func TestDispatch_ExpireAndTTL(t *testing.T) {
	st := store.New()
	a := arena.New(4096)

	Dispatch("SET", []*wire.Value{bulk("k"), bulk("v")}, st, a)

	reply := Dispatch("EXPIRE", []*wire.Value{bulk("k"), bulk("100")}, st, a)
	assert.EqualValues(t, 1, reply.Int)

	reply = Dispatch("TTL", []*wire.Value{bulk("k")}, st, a)
	assert.GreaterOrEqual(t, reply.Int, int64(99))

	reply = Dispatch("EXPIRE", []*wire.Value{bulk("ghost"), bulk("10")}, st, a)
	assert.EqualValues(t, 0, reply.Int)

	reply = Dispatch("EXPIRE", []*wire.Value{bulk("k"), bulk("-1")}, st, a)
	assert.Equal(t, wire.Error, reply.Kind)

	reply = Dispatch("TTL", []*wire.Value{bulk("ghost")}, st, a)
	assert.EqualValues(t, -2, reply.Int)
}

func TestDispatch_ListCommands(t *testing.T) {
	st := store.New()
	a := arena.New(4096)

	reply := Dispatch("LPUSH", []*wire.Value{bulk("l"), bulk("a"), bulk("b"), bulk("c")}, st, a)
	assert.EqualValues(t, 3, reply.Int)

	// LPUSH l a b c -> c pushed last ends up frontmost: [c b a]
	reply = Dispatch("LRANGE", []*wire.Value{bulk("l"), bulk("0"), bulk("-1")}, st, a)
	assert.Equal(t, []string{"c", "b", "a"}, valuesToStrings(reply.Elems))

	reply = Dispatch("RPUSH", []*wire.Value{bulk("l"), bulk("z")}, st, a)
	assert.EqualValues(t, 4, reply.Int)

	reply = Dispatch("LLEN", []*wire.Value{bulk("l")}, st, a)
	assert.EqualValues(t, 4, reply.Int)

	reply = Dispatch("LPOP", []*wire.Value{bulk("l")}, st, a)
	assert.Equal(t, "c", string(reply.Str))

	reply = Dispatch("RPOP", []*wire.Value{bulk("l"), bulk("2")}, st, a)
	assert.Equal(t, wire.Array, reply.Kind)
	assert.Equal(t, []string{"z", "a"}, valuesToStrings(reply.Elems))

	reply = Dispatch("LPOP", []*wire.Value{bulk("missing")}, st, a)
	assert.Equal(t, "(nil)", string(reply.Str))

	reply = Dispatch("LPOP", []*wire.Value{bulk("missing"), bulk("3")}, st, a)
	assert.Equal(t, "(nil)", string(reply.Str))
}

func TestDispatch_SetCommands(t *testing.T) {
	st := store.New()
	a := arena.New(4096)

	reply := Dispatch("SADD", []*wire.Value{bulk("s"), bulk("a"), bulk("b"), bulk("a")}, st, a)
	assert.EqualValues(t, 2, reply.Int)

	reply = Dispatch("SCARD", []*wire.Value{bulk("s")}, st, a)
	assert.EqualValues(t, 2, reply.Int)

	reply = Dispatch("SISMEMBER", []*wire.Value{bulk("s"), bulk("a")}, st, a)
	assert.EqualValues(t, 1, reply.Int)

	reply = Dispatch("SISMEMBER", []*wire.Value{bulk("s"), bulk("z")}, st, a)
	assert.EqualValues(t, 0, reply.Int)

	reply = Dispatch("SREM", []*wire.Value{bulk("s"), bulk("a")}, st, a)
	assert.EqualValues(t, 1, reply.Int)

	reply = Dispatch("SMEMBERS", []*wire.Value{bulk("s")}, st, a)
	assert.Equal(t, []string{"b"}, valuesToStrings(reply.Elems))
}

func TestDispatch_SInter(t *testing.T) {
	st := store.New()
	a := arena.New(4096)

	Dispatch("SADD", []*wire.Value{bulk("s1"), bulk("a"), bulk("b"), bulk("c")}, st, a)
	Dispatch("SADD", []*wire.Value{bulk("s2"), bulk("b"), bulk("c"), bulk("d")}, st, a)

	reply := Dispatch("SINTER", []*wire.Value{bulk("s1"), bulk("s2")}, st, a)
	assert.ElementsMatch(t, []string{"b", "c"}, valuesToStrings(reply.Elems))

	reply = Dispatch("SINTER", []*wire.Value{bulk("s1"), bulk("missing")}, st, a)
	assert.Len(t, reply.Elems, 0)
}

func valuesToStrings(vs []*wire.Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v.Str)
	}
	return out
}
