package command

import (
	"github.com/emberkv/ember/arena"
	"github.com/emberkv/ember/store"
	"github.com/emberkv/ember/wire"
)

func init() {
	Register("LPUSH", execLPush)
	Register("RPUSH", execRPush)
	Register("LPOP", execLPop)
	Register("RPOP", execRPop)
	Register("LLEN", execLLen)
	Register("LRANGE", execLRange)
}

func execLPush(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	return execPush(args, st, a, true, "LPUSH")
}

func execRPush(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	return execPush(args, st, a, false, "RPUSH")
}

// execPush pushes each value argument in turn. Pushing to the front one
// argument at a time naturally reverses a multi-value LPUSH relative to
// its argument order — the same behavior real Redis documents, carried
// over unchanged rather than special-cased.
func execPush(args []*wire.Value, st *store.Storage, a *arena.Arena, front bool, name string) *wire.Value {
	if len(args) < 2 {
		return errArgCount(name)
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	d, err := st.FindOrCreateDeque(string(key))
	if err != nil {
		return errWrongType()
	}
	for _, v := range args[1:] {
		val, ok := bulkArg(v)
		if !ok {
			return errNotBulkString()
		}
		if front {
			d.PushFront(ownCopy(val))
		} else {
			d.PushBack(ownCopy(val))
		}
	}
	return wire.NewInteger(int64(d.Len()))
}

func execLPop(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	return execPop(args, st, a, true, "LPOP")
}

func execRPop(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	return execPop(args, st, a, false, "RPOP")
}

// execPop implements both the no-count (single bulk-string-or-nil reply)
// and with-count (array reply) shapes. An explicit count against an
// absent key returns the same nil reply as the no-count form rather
// than an empty array: "nothing to pop" is one outcome regardless of
// how many elements were asked for.
func execPop(args []*wire.Value, st *store.Storage, a *arena.Arena, front bool, name string) *wire.Value {
	if len(args) < 1 || len(args) > 2 {
		return errArgCount(name)
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	d, err := st.FindDeque(string(key))
	if err == store.ErrWrongType {
		return errWrongType()
	}

	if len(args) == 1 {
		if err == store.ErrNotFound {
			return nilReply()
		}
		var v []byte
		var ok2 bool
		if front {
			v, ok2 = d.PopFront()
		} else {
			v, ok2 = d.PopBack()
		}
		if !ok2 {
			return nilReply()
		}
		return wire.NewBulkString(a.CopyBytes(v))
	}

	countArg, ok := bulkArg(args[1])
	if !ok {
		return errNotBulkString()
	}
	count, cerr := parseInt(countArg)
	if cerr != nil {
		return errNotInteger()
	}
	if err == store.ErrNotFound {
		return nilReply()
	}
	if count < 0 {
		count = 0
	}
	elems := make([]*wire.Value, 0, count)
	for i := int64(0); i < count; i++ {
		var v []byte
		var ok2 bool
		if front {
			v, ok2 = d.PopFront()
		} else {
			v, ok2 = d.PopBack()
		}
		if !ok2 {
			break
		}
		elems = append(elems, wire.NewBulkString(a.CopyBytes(v)))
	}
	return wire.NewArray(elems)
}

func execLLen(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) != 1 {
		return errArgCount("LLEN")
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	d, err := st.FindDeque(string(key))
	if err == store.ErrWrongType {
		return errWrongType()
	}
	if err == store.ErrNotFound {
		return wire.NewInteger(0)
	}
	return wire.NewInteger(int64(d.Len()))
}

// execLRange clamps start/stop the way real Redis LRANGE does: negative
// indices count from the end, out-of-range bounds clamp to the valid
// span, and an empty resulting span is an empty array rather than an
// error.
func execLRange(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	if len(args) != 3 {
		return errArgCount("LRANGE")
	}
	key, ok := bulkArg(args[0])
	if !ok {
		return errNotBulkString()
	}
	startArg, ok := bulkArg(args[1])
	if !ok {
		return errNotBulkString()
	}
	stopArg, ok := bulkArg(args[2])
	if !ok {
		return errNotBulkString()
	}
	start, err := parseInt(startArg)
	if err != nil {
		return errNotInteger()
	}
	stop, err := parseInt(stopArg)
	if err != nil {
		return errNotInteger()
	}

	d, ferr := st.FindDeque(string(key))
	if ferr == store.ErrWrongType {
		return errWrongType()
	}
	if ferr == store.ErrNotFound {
		return wire.NewArray([]*wire.Value{})
	}

	n := int64(d.Len())
	start = normalizeIndex(start, n)
	stop = normalizeIndex(stop, n)
	if start < 0 {
		start = 0
	}
	if stop > n-1 {
		stop = n - 1
	}
	if n == 0 || start > stop {
		return wire.NewArray([]*wire.Value{})
	}

	elems := make([]*wire.Value, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		elems = append(elems, wire.NewBulkString(a.CopyBytes(d.At(int(i)))))
	}
	return wire.NewArray(elems)
}

func normalizeIndex(i, n int64) int64 {
	if i < 0 {
		i += n
	}
	return i
}
