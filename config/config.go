// Package config holds the server's tunables as a plain struct of
// constructor parameters rather than a framework-specific settings
// object, sourced either from flags by default or from a viper-loaded
// file when one is given.
package config

import (
	"strconv"
)

// Config collects every knob the reactor and storage engine need at
// startup.
type Config struct {
	Host string
	Port int

	// Backlog is advisory on most platforms (Go's net package doesn't
	// expose listen(2)'s backlog argument directly) but kept here so it
	// can be surfaced in diagnostics and config files even though
	// ListenAndServe doesn't currently thread it through.
	Backlog int

	// ArenaCapacity sizes each connection's bump allocator in bytes.
	ArenaCapacity int

	// ReadBufferSize sizes the buffer each connection goroutine reads
	// raw socket bytes into before feeding them to the parser.
	ReadBufferSize int

	// SweepMaxChecks bounds how many entries one active-expiration pass
	// examines.
	SweepMaxChecks int

	// SweepThreshold is how many commands the engine processes between
	// active-expiration passes. Zero or negative disables active
	// sweeping; expiration still happens lazily on access.
	SweepThreshold int

	// StrictNilReplies switches "no value" replies from the literal
	// "(nil)" bulk string this server writes by default to the real
	// RESP null bulk string ($-1).
	StrictNilReplies bool
}

// Default returns the configuration the server starts with when nothing
// overrides it.
func Default() Config {
	return Config{
		Host:             "127.0.0.1",
		Port:             6379,
		Backlog:          511,
		ArenaCapacity:    64 * 1024,
		ReadBufferSize:   16 * 1024,
		SweepMaxChecks:   20,
		SweepThreshold:   1024,
		StrictNilReplies: false,
	}
}

// Address returns the host:port pair net.Listen expects.
func (c Config) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
