package command

import (
	"github.com/emberkv/ember/arena"
	"github.com/emberkv/ember/store"
	"github.com/emberkv/ember/wire"
)

func init() {
	Register("GET", execGet)
	Register("SET", execSet)
}

// execGet distinguishes a missing key from a present-but-wrong-kind key:
// the former is a nil reply, the latter a WRONGTYPE error.
func execGet(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) != 1 {
		return errArgCount("GET")
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	text, err := st.FindText(string(key))
	if err != nil {
		if err == store.ErrWrongType {
			return errWrongType()
		}
		return nilReply()
	}
	return wire.NewBulkString(a.CopyBytes(text.Data))
}

// execSet always overwrites, clearing any TTL on the key, matching
// SetText's documented semantics.
func execSet(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) != 2 {
		return errArgCount("SET")
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	val, ok := bulkArg(args[1])
	if !ok {
		return errNotBulkString()
	}
	if err := st.SetText(string(key), ownCopy(val)); err != nil {
		return errWrongType()
	}
	return wire.NewSimpleString("OK")
}
