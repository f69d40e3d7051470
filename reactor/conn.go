package reactor

import (
	"context"
	"log"
	"net"
	"runtime"

	"github.com/emberkv/ember/arena"
	"github.com/emberkv/ember/wire"
)

// clientConn is the per-connection state: one goroutine per connection
// does its own read/parse/dispatch/write, using a resumable Feed-based
// parser so a command split across TCP segments just waits for more
// bytes instead of needing a buffering layer of its own.
type clientConn struct {
	server *Server
	rwc    net.Conn
	remote string

	arena      *arena.Arena
	parser     *wire.Parser
	serializer *wire.Serializer
}

func (s *Server) newConn(rwc net.Conn, a *arena.Arena) *clientConn {
	return &clientConn{
		server:     s,
		rwc:        rwc,
		remote:     rwc.RemoteAddr().String(),
		arena:      a,
		parser:     wire.NewParser(a),
		serializer: wire.NewSerializer(),
	}
}

func (c *clientConn) serve(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Printf("reactor: panic serving %s: %v\n%s", c.remote, r, buf)
		}
		c.rwc.Close()
		if c.server.arenaPool != nil {
			_ = c.server.arenaPool.Return(ctx, c.arena)
		}
	}()

	readBuf := make([]byte, c.server.config.ReadBufferSize)
	for {
		n, err := c.rwc.Read(readBuf)
		if n > 0 {
			if !c.consume(readBuf[:n]) {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// consume feeds newly-read bytes through the parser, dispatching every
// complete command it yields and folding each reply into one batch
// buffer via serializer.Append, then writes that batch once at the end
// instead of issuing a socket write per command. It returns false if
// the connection should be torn down.
func (c *clientConn) consume(chunk []byte) bool {
	var batch []byte
	for len(chunk) > 0 {
		consumed, outcome, value := c.parser.Feed(chunk)
		chunk = chunk[consumed:]

		switch outcome {
		case wire.NeedMore:
			// The parser still holds live references into the arena for
			// this partial value, so the arena can't be reset yet.
			return c.flush(batch)
		case wire.Cancelled:
			batch = c.serializer.Append(batch, wire.NewError("ERR Protocol error"))
			c.flush(batch)
			return false
		case wire.Done:
			reply, ok := c.dispatch(value)
			batch = c.serializer.Append(batch, reply)
			if !ok {
				c.flush(batch)
				return false
			}
		}
	}
	if !c.flush(batch) {
		return false
	}
	c.arena.Reset()
	c.parser.Rebind(c.arena)
	return true
}

// dispatch expects value to be the multi-bulk array shape every RESP
// client sends a command as: a non-empty array whose first element is a
// bulk string naming the command. A non-array, an empty array, or a
// non-bulk-string first element is a protocol error; the remaining
// elements go to the handler unchecked, and handlers reject any that is
// not a bulk string.
func (c *clientConn) dispatch(value *wire.Value) (*wire.Value, bool) {
	if value.Kind != wire.Array || len(value.Elems) == 0 {
		return wire.NewError("ERR Protocol error: expected array of bulk strings"), false
	}
	name := value.Elems[0]
	if !name.IsBulkString() {
		return wire.NewError("ERR Protocol error: command name must be a bulk string"), false
	}
	reply := c.server.engine.Execute(upperASCII(name.Str), value.Elems[1:], c.arena)
	return reply, true
}

// flush writes batch to the connection in full, retrying past partial
// writes, and reports whether the connection should stay open.
func (c *clientConn) flush(batch []byte) bool {
	for len(batch) > 0 {
		n, err := c.rwc.Write(batch)
		if err != nil {
			log.Printf("reactor: write to %s failed: %v", c.remote, err)
			return false
		}
		batch = batch[n:]
	}
	return true
}

func upperASCII(b []byte) string {
	out := make([]byte, len(b))
	for i, ch := range b {
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		out[i] = ch
	}
	return string(out)
}
