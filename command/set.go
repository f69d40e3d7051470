package command

import (
	"github.com/emberkv/ember/arena"
	"github.com/emberkv/ember/store"
	"github.com/emberkv/ember/wire"
)

func init() {
	Register("SADD", execSAdd)
	Register("SREM", execSRem)
	Register("SCARD", execSCard)
	Register("SMEMBERS", execSMembers)
	Register("SISMEMBER", execSIsMember)
	Register("SINTER", execSInter)
}

func execSAdd(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) < 2 {
		return errArgCount("SADD")
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	set, err := st.FindOrCreateSet(string(key))
	if err != nil {
		return errWrongType()
	}
	var added int64
	for _, v := range args[1:] {
		member, ok := bulkArg(v)
		if !ok {
			return errNotBulkString()
		}
		if set.Add(string(member)) {
			added++
		}
	}
	return wire.NewInteger(added)
}

func execSRem(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) < 2 {
		return errArgCount("SREM")
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	set, err := st.FindSet(string(key))
	if err == store.ErrWrongType {
		return errWrongType()
	}
	if err == store.ErrNotFound {
		return wire.NewInteger(0)
	}
	var removed int64
	for _, v := range args[1:] {
		member, ok := bulkArg(v)
		if !ok {
			return errNotBulkString()
		}
		if set.Remove(string(member)) {
			removed++
		}
	}
	return wire.NewInteger(removed)
}

func execSCard(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) != 1 {
		return errArgCount("SCARD")
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	set, err := st.FindSet(string(key))
	if err == store.ErrWrongType {
		return errWrongType()
	}
	if err == store.ErrNotFound {
		return wire.NewInteger(0)
	}
	return wire.NewInteger(int64(set.Len()))
}

func execSMembers(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) != 1 {
		return errArgCount("SMEMBERS")
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	set, err := st.FindSet(string(key))
	if err == store.ErrWrongType {
		return errWrongType()
	}
	if err == store.ErrNotFound {
		return wire.NewArray([]*wire.Value{})
	}
	members := set.Members()
	elems := make([]*wire.Value, len(members))
	for i, m := range members {
		elems[i] = wire.NewBulkString(a.CopyBytes([]byte(m)))
	}
	return wire.NewArray(elems)
}

func execSIsMember(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) != 2 {
		return errArgCount("SISMEMBER")
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	member, ok := bulkArg(args[1])
	if !ok {
		return errNotBulkString()
	}
	set, err := st.FindSet(string(key))
	if err == store.ErrWrongType {
		return errWrongType()
	}
	if err == store.ErrNotFound {
		return wire.NewInteger(0)
	}
	if set.Contains(string(member)) {
		return wire.NewInteger(1)
	}
	return wire.NewInteger(0)
}

// execSInter intersects every operand against the first; any absent
// operand makes the whole intersection empty without reporting an error,
// matching how an empty-set operand would behave if it existed.
func execSInter(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) < 1 {
		return errArgCount("SINTER")
	}
	sets := make([]*store.Set, len(args))
	for i, v := range args {
		key, ok := bulkArg(v)
		if !ok {
			return errNotBulkString()
		}
		set, err := st.FindSet(string(key))
		if err == store.ErrWrongType {
			return errWrongType()
		}
		if err == store.ErrNotFound {
			return wire.NewArray([]*wire.Value{})
		}
		sets[i] = set
	}

	first := sets[0]
	result := make([]*wire.Value, 0, first.Len())
	for _, m := range first.Members() {
		inAll := true
		for _, other := range sets[1:] {
			if !other.Contains(m) {
				inAll = false
				break
			}
		}
		if inAll {
			result = append(result, wire.NewBulkString(a.CopyBytes([]byte(m))))
		}
	}
	return wire.NewArray(result)
}
