package wire

import (
	"strconv"

	"github.com/emberkv/ember/arena"
)

// Serializer turns a Value tree into RESP wire bytes in two passes: a
// SizeOf walk to compute the exact byte count, then a WriteInto walk that
// appends into a buffer sized exactly once. The serializer keeps a
// reusable output buffer across calls (length reset, capacity retained)
// so repeated replies in a pipelined batch don't each allocate.
type Serializer struct {
	buf []byte
}

// NewSerializer creates an empty, reusable Serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

// Serialize empties the serializer's internal buffer, writes the wire
// encoding of v into it, and returns it. The returned slice is valid until
// the next call to Serialize/Reset or the Serializer's destruction — copy
// it out (or write it to the socket) before reusing the Serializer.
func (s *Serializer) Serialize(v *Value) []byte {
	return s.Append(s.buf[:0], v)
}

// Reset empties the internal buffer without releasing its capacity.
func (s *Serializer) Reset() {
	s.buf = s.buf[:0]
}

// Append writes v's wire encoding onto dst and returns the grown slice. It
// is the batching primitive the reactor uses to fold many replies into a
// single write buffer; Serializer.Serialize is Append(buf[:0], v).
func (s *Serializer) Append(dst []byte, v *Value) []byte {
	n := SizeOf(v)
	start := len(dst)
	if cap(dst)-start < n {
		grown := make([]byte, start, start+n)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:start+n]
	written := WriteInto(dst[start:], v)
	if written != n {
		panic("wire: SizeOf/WriteInto disagreed on length")
	}
	s.buf = dst
	return dst
}

// SizeOf computes the exact wire size of v.
func SizeOf(v *Value) int {
	switch v.Kind {
	case SimpleString, Error:
		return 1 + len(v.Str) + 2
	case Integer:
		return 1 + decimalWidth(v.Int) + 2
	case BulkString:
		if v.Null {
			return len("$-1\r\n")
		}
		return 1 + decimalWidth(int64(len(v.Str))) + 2 + len(v.Str) + 2
	case Array:
		if v.Null {
			return len("*-1\r\n")
		}
		n := 1 + decimalWidth(int64(len(v.Elems))) + 2
		for _, e := range v.Elems {
			n += SizeOf(e)
		}
		return n
	}
	panic("wire: unknown value kind")
}

// WriteInto writes v's wire encoding into buf, which must be exactly
// SizeOf(v) bytes long, and returns the number of bytes written.
func WriteInto(buf []byte, v *Value) int {
	switch v.Kind {
	case SimpleString:
		return writeLine(buf, '+', v.Str)
	case Error:
		return writeLine(buf, '-', v.Str)
	case Integer:
		n := 0
		buf[n] = ':'
		n++
		n += writeDecimal(buf[n:], v.Int)
		buf[n] = '\r'
		buf[n+1] = '\n'
		return n + 2
	case BulkString:
		if v.Null {
			return copy(buf, "$-1\r\n")
		}
		n := 0
		buf[n] = '$'
		n++
		n += writeDecimal(buf[n:], int64(len(v.Str)))
		buf[n] = '\r'
		buf[n+1] = '\n'
		n += 2
		n += copy(buf[n:], v.Str)
		buf[n] = '\r'
		buf[n+1] = '\n'
		return n + 2
	case Array:
		if v.Null {
			return copy(buf, "*-1\r\n")
		}
		n := 0
		buf[n] = '*'
		n++
		n += writeDecimal(buf[n:], int64(len(v.Elems)))
		buf[n] = '\r'
		buf[n+1] = '\n'
		n += 2
		for _, e := range v.Elems {
			n += WriteInto(buf[n:], e)
		}
		return n
	}
	panic("wire: unknown value kind")
}

func writeLine(buf []byte, prefix byte, payload []byte) int {
	buf[0] = prefix
	n := 1 + copy(buf[1:], payload)
	buf[n] = '\r'
	buf[n+1] = '\n'
	return n + 2
}

func decimalWidth(n int64) int {
	return len(strconv.FormatInt(n, 10))
}

func writeDecimal(buf []byte, n int64) int {
	s := strconv.FormatInt(n, 10)
	return copy(buf, s)
}

// CopyReply copies a serialized value out of a Serializer buffer into a
// fresh arena allocation, used when a reply must outlive
// the serializer's next call within the same arena generation.
func CopyReply(a *arena.Arena, encoded []byte) []byte {
	return a.CopyBytes(encoded)
}
