package command

import (
	"github.com/emberkv/ember/arena"
	"github.com/emberkv/ember/store"
	"github.com/emberkv/ember/wire"
)

func init() {
	Register("DEL", execDel)
	Register("KEYS", execKeys)
	Register("FLUSHDB", execFlushDB)
	Register("EXPIRE", execExpire)
	Register("TTL", execTTL)
}

// execDel accepts a variadic key list and counts actual removals rather
// than echoing the argument count.
func execDel(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) == 0 {
		return errArgCount("DEL")
	}
	var count int64
	for _, v := range args {
		key, ok := bulkArg(v)
		if !ok {
			return errNotBulkString()
		}
		if st.Erase(string(key)) {
			count++
		}
	}
	return wire.NewInteger(count)
}

// execKeys takes no pattern argument: it always returns every live key,
// unlike real Redis's glob-matching KEYS.
func execKeys(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) != 0 {
		return errArgCount("KEYS")
	}
	keys := st.Keys()
	elems := make([]*wire.Value, len(keys))
	for i, k := range keys {
		elems[i] = wire.NewBulkString(a.CopyBytes([]byte(k)))
	}
	return wire.NewArray(elems)
}

func execFlushDB(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) != 0 {
		return errArgCount("FLUSHDB")
	}
	st.Clear()
	return wire.NewSimpleString("OK")
}

// execExpire treats a negative seconds argument the same as a
// non-integer one: both are rejected with the same integer-parse error
// rather than a distinct range error.
func execExpire(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) != 2 {
		return errArgCount("EXPIRE")
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	secArg, ok := bulkArg(args[1])
	if !ok {
		return errNotBulkString()
	}
	secs, err := parseInt(secArg)
	if err != nil || secs < 0 {
		return errNotInteger()
	}
	if st.SetExpiry(string(key), secondsToDuration(secs)) {
		return wire.NewInteger(1)
	}
	return wire.NewInteger(0)
}

func execTTL(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) != 1 {
		return errArgCount("TTL")
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	return wire.NewInteger(st.GetTTL(string(key)))
}
