package command

import (
	"strconv"
	"time"

	"github.com/emberkv/ember/wire"
)

// strictNilReplies controls whether a "no value" reply is the real RESP
// null bulk string or the literal "(nil)" bulk string. Set once at
// startup from config; see cmd/emberd for the wiring.
var strictNilReplies = false

// SetStrictNilReplies configures the nil-reply shape for every handler in
// this package. Intended to be called once, before the reactor starts
// accepting connections.
func SetStrictNilReplies(strict bool) {
	strictNilReplies = strict
}

func nilReply() *wire.Value {
	if strictNilReplies {
		return wire.NullBulkString()
	}
	return wire.NewBulkString([]byte("(nil)"))
}

func bulkArg(v *wire.Value) ([]byte, bool) {
	if !v.IsBulkString() {
		return nil, false
	}
	return v.Str, true
}

func parseInt(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}

// ownCopy copies a []byte that aliases arena- or parser-owned memory into
// a freshly heap-allocated slice the Storage engine can hold onto
// indefinitely — arena contents become invalid the moment the owning
// connection resets its arena, but stored values must outlive that.
func ownCopy(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

func errWrongType() *wire.Value {
	return wire.NewError("WRONGTYPE Operation against a key holding the wrong kind of value")
}

func errArgCount(cmd string) *wire.Value {
	return wire.NewError("ERR wrong number of arguments for '" + cmd + "' command")
}

func errNotBulkString() *wire.Value {
	return wire.NewError("ERR value is not a bulk string")
}

func errNotInteger() *wire.Value {
	return wire.NewError("ERR value is not an integer")
}

func secondsToDuration(secs int64) time.Duration {
	return time.Duration(secs) * time.Second
}
