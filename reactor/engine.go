package reactor

import (
	"context"

	"github.com/emberkv/ember/arena"
	"github.com/emberkv/ember/command"
	"github.com/emberkv/ember/store"
	"github.com/emberkv/ember/wire"
)

// Engine is the single goroutine that ever touches a *store.Storage. Every
// connection goroutine does its own I/O and RESP parsing, but a parsed
// command crosses into Engine's goroutine over a channel before it
// touches storage. That keeps Storage itself lock-free without asking
// every command handler to take a mutex.
type Engine struct {
	storage            *store.Storage
	calls              chan call
	sweepMaxChecks     int
	sweepThreshold     int
	commandsSinceSweep int
}

type call struct {
	name   string
	args   []*wire.Value
	arena  *arena.Arena
	result chan *wire.Value
}

// NewEngine creates an Engine with its own private Storage. sweepMaxChecks
// bounds how many entries a single active-expiration pass examines;
// sweepThreshold is how many commands accumulate between passes. A zero
// or negative sweepThreshold disables active expiration entirely,
// leaving only the lazy expiration every read path already does.
func NewEngine(sweepMaxChecks, sweepThreshold int) *Engine {
	return &Engine{
		storage:        store.New(),
		calls:          make(chan call),
		sweepMaxChecks: sweepMaxChecks,
		sweepThreshold: sweepThreshold,
	}
}

// Run drives the engine loop until ctx is cancelled. It must run in
// exactly one goroutine for the lifetime of the Engine.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-e.calls:
			c.result <- command.Dispatch(c.name, c.args, e.storage, c.arena)
			if e.sweepThreshold > 0 {
				e.commandsSinceSweep++
				if e.commandsSinceSweep >= e.sweepThreshold {
					e.storage.Sweep(e.sweepMaxChecks)
					e.commandsSinceSweep = 0
				}
			}
		}
	}
}

// Execute hands a parsed command to the engine goroutine and blocks for
// its reply. Safe to call concurrently from any number of connection
// goroutines; Engine serializes them internally.
func (e *Engine) Execute(name string, args []*wire.Value, a *arena.Arena) *wire.Value {
	c := call{name: name, args: args, arena: a, result: make(chan *wire.Value, 1)}
	e.calls <- c
	return <-c.result
}
