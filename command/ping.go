package command

import (
	"github.com/emberkv/ember/arena"
	"github.com/emberkv/ember/store"
	"github.com/emberkv/ember/wire"
)

func init() {
	Register("PING", execPing)
}

// execPing: no argument replies with a simple status, one argument
// echoes it back as a bulk string, anything else is an arity error.
func execPing(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	switch len(args) {
	case 0:
		return wire.NewSimpleString("PONG")
	case 1:
		msg, ok := bulkArg(args[0])
		if !ok {
			return errNotBulkString()
		}
		return wire.NewBulkString(a.CopyBytes(msg))
	default:
		return errArgCount("PING")
	}
}
