// Package command implements the command registry and the per-command
// handlers that execute against the storage engine.
//
// Commands register themselves from an init() in their own file. The
// table is a flat, registration-order slice rather than a map, scanned
// linearly on dispatch. Registration order is the order in which the
// package's files are initialized (by file name: key.go, list.go,
// ping.go, set.go, string.go), so the table is not arranged by how often
// a command is used.
package command

import (
	"github.com/emberkv/ember/arena"
	"github.com/emberkv/ember/store"
	"github.com/emberkv/ember/wire"
)

// Handler executes one command. args holds the already-parsed RESP
// values following the command name (never the name itself). The
// returned Value must be allocated from arena.
type Handler func(args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value

type registration struct {
	name    string
	handler Handler
}

var table []registration

// Register adds a command to the global table. name must be non-empty
// uppercase ASCII and unique; violating either is a programmer error,
// so it panics at init time rather than surfacing as a runtime
// condition to recover from.
func Register(name string, h Handler) {
	if !isUpperASCII(name) {
		panic("command: invalid command name " + name)
	}
	for _, r := range table {
		if r.name == name {
			panic("command: duplicate command " + name)
		}
	}
	table = append(table, registration{name: name, handler: h})
}

func isUpperASCII(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// Dispatch looks up name by linear scan over the registration-order table
// and executes its handler, or returns an unknown-command error.
func Dispatch(name string, args []*wire.Value, st *store.Storage, a *arena.Arena) *wire.Value {
	for _, r := range table {
		if r.name == name {
			return r.handler(args, st, a)
		}
	}
	return wire.NewError("ERR unknown command '" + name + "'")
}
