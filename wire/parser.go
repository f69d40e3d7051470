package wire

import (
	"strconv"

	"github.com/emberkv/ember/arena"
)

// Outcome tags what a Feed call produced.
type Outcome uint8

const (
	// NeedMore means every byte passed to Feed was absorbed into internal
	// state; call Feed again with the continuation of the stream.
	NeedMore Outcome = iota
	// Done means a complete top-level value was produced.
	Done
	// Cancelled means the input was not valid RESP. The parser is poisoned
	// until Reset is called.
	Cancelled
)

type state uint8

const (
	stType state = iota
	stSimple
	stErrorLine
	stInteger
	stBulkLen
	stBulkData
	stBulkCRLF
	stArrayLen
	stArrayElems
	stPoisoned
)

// Parser is a resumable, non-blocking RESP decoder. A single Parser value
// decodes one top-level RESP value across any number of Feed calls, no
// matter how the input bytes are chunked by the transport. All byte
// payloads it produces are carved out of the Arena it is bound to.
type Parser struct {
	arena *arena.Arena
	state state

	// line accumulates a CRLF-terminated line (simple string / error /
	// integer / bulk-length / array-length) across Feed calls.
	line []byte

	// bulk string sub-state
	bulkBuf       []byte
	bulkRemaining int
	crlfSeen      int

	// array sub-state
	arrayElems []*Value
	arrayIndex int
	child      *Parser
}

// NewParser creates a Parser that allocates from a.
func NewParser(a *arena.Arena) *Parser {
	return &Parser{arena: a, state: stType}
}

// Reset returns the parser to its initial dispatch state, discarding any
// partial progress. It does not touch the arena: bytes already handed out
// stay valid until the arena itself is reset.
func (p *Parser) Reset() {
	p.state = stType
	p.line = nil
	p.bulkBuf = nil
	p.bulkRemaining = 0
	p.crlfSeen = 0
	p.arrayElems = nil
	p.arrayIndex = 0
	if p.child != nil {
		p.child.Reset()
	}
}

// Rebind points the parser (and any nested child parser) at a new arena,
// used when a ClientState's arena is swapped out from under a pooled
// Parser.
func (p *Parser) Rebind(a *arena.Arena) {
	p.arena = a
	if p.child != nil {
		p.child.Rebind(a)
	}
}

// Feed advances the parser with the next chunk of input. consumed is
// always <= len(data).
func (p *Parser) Feed(data []byte) (consumed int, outcome Outcome, value *Value) {
	total := 0
	for {
		if p.state == stPoisoned {
			return total, Cancelled, nil
		}

		switch p.state {
		case stType:
			if total >= len(data) {
				return total, NeedMore, nil
			}
			b := data[total]
			total++
			switch b {
			case '+':
				p.state = stSimple
			case '-':
				p.state = stErrorLine
			case ':':
				p.state = stInteger
			case '$':
				p.state = stBulkLen
			case '*':
				p.state = stArrayLen
			default:
				p.state = stPoisoned
				return total, Cancelled, nil
			}

		case stSimple, stErrorLine, stInteger, stBulkLen, stArrayLen:
			line, n, ok, done := p.feedLine(data[total:])
			total += n
			if !done {
				return total, NeedMore, nil
			}
			if !ok {
				p.state = stPoisoned
				return total, Cancelled, nil
			}
			v, outcome, consumedMore, ok := p.completeLine(line, data[total:])
			total += consumedMore
			if !ok {
				p.state = stPoisoned
				return total, Cancelled, nil
			}
			if outcome == Done {
				p.state = stType
				return total, Done, v
			}
			// else: transitioned into a bulk/array sub-state, keep looping

		case stBulkData:
			n := copy(p.bulkBuf[len(p.bulkBuf)-p.bulkRemaining:], data[total:])
			total += n
			p.bulkRemaining -= n
			if p.bulkRemaining > 0 {
				return total, NeedMore, nil
			}
			p.state = stBulkCRLF
			p.crlfSeen = 0

		case stBulkCRLF:
			want := []byte{'\r', '\n'}
			for p.crlfSeen < 2 {
				if total >= len(data) {
					return total, NeedMore, nil
				}
				if data[total] != want[p.crlfSeen] {
					p.state = stPoisoned
					return total + 1, Cancelled, nil
				}
				total++
				p.crlfSeen++
			}
			v := &Value{Kind: BulkString, Str: p.bulkBuf}
			p.state = stType
			p.bulkBuf = nil
			return total, Done, v

		case stArrayElems:
			if p.arrayIndex >= len(p.arrayElems) {
				v := &Value{Kind: Array, Elems: p.arrayElems}
				p.state = stType
				p.arrayElems = nil
				p.arrayIndex = 0
				return total, Done, v
			}
			if p.child == nil {
				p.child = NewParser(p.arena)
			}
			n, childOutcome, v := p.child.Feed(data[total:])
			total += n
			switch childOutcome {
			case Done:
				p.arrayElems[p.arrayIndex] = v
				p.arrayIndex++
				p.child.Reset()
				// loop again: there may be more buffered data for the
				// next element, or we may need more input.
			case NeedMore:
				return total, NeedMore, nil
			case Cancelled:
				p.state = stPoisoned
				return total, Cancelled, nil
			}

		default:
			p.state = stPoisoned
			return total, Cancelled, nil
		}
	}
}

// feedLine accumulates bytes into p.line until a CRLF terminator is found.
// It returns the line (without the CRLF) and whether a terminator was
// found (done) and whether the line was well-formed (ok, only meaningful
// when done is true — a bare \n without a preceding \r is malformed).
func (p *Parser) feedLine(data []byte) (line []byte, consumed int, ok bool, done bool) {
	for i, b := range data {
		if b == '\n' {
			var prev byte
			if i > 0 {
				prev = data[i-1]
			} else if len(p.line) > 0 {
				prev = p.line[len(p.line)-1]
			}
			if prev != '\r' {
				return nil, i + 1, false, true
			}
			// trim the trailing \r, whether it came from this chunk or
			// from the previously accumulated line.
			var full []byte
			if i > 0 {
				full = p.arena.Alloc(len(p.line) + i - 1)
				copy(full, p.line)
				copy(full[len(p.line):], data[:i-1])
			} else {
				full = p.line[:len(p.line)-1]
			}
			p.line = nil
			return full, i + 1, true, true
		}
	}
	// no terminator in this chunk: accumulate everything and ask for more.
	p.line = p.arena.Grow(p.line, len(p.line)+len(data))
	copy(p.line[len(p.line)-len(data):], data)
	return nil, len(data), true, false
}

// completeLine is called once a CRLF-terminated line has been produced for
// the current state. It either finishes the value outright (simple
// string, error, integer, zero-length array) or transitions into a
// length-prefixed payload sub-state (bulk string, non-empty array). It
// never consumes bytes past the line: consumed is always 0, and a
// zero-length bulk string goes through the ordinary data and CRLF states.
func (p *Parser) completeLine(line []byte, rest []byte) (v *Value, outcome Outcome, consumed int, ok bool) {
	switch p.state {
	case stSimple:
		return &Value{Kind: SimpleString, Str: line}, Done, 0, true
	case stErrorLine:
		return &Value{Kind: Error, Str: line}, Done, 0, true
	case stInteger:
		n, err := strconv.ParseInt(string(line), 10, 64)
		if err != nil {
			return nil, 0, 0, false
		}
		return &Value{Kind: Integer, Int: n}, Done, 0, true
	case stBulkLen:
		n, err := strconv.Atoi(string(line))
		if err != nil || n < 0 {
			return nil, 0, 0, false
		}
		p.bulkBuf = p.arena.Alloc(n)
		p.bulkRemaining = n
		p.state = stBulkData
		return nil, NeedMore, 0, true
	case stArrayLen:
		n, err := strconv.Atoi(string(line))
		if err != nil || n < 0 {
			return nil, 0, 0, false
		}
		if n == 0 {
			return &Value{Kind: Array, Elems: []*Value{}}, Done, 0, true
		}
		p.arrayElems = make([]*Value, n)
		p.arrayIndex = 0
		p.state = stArrayElems
		return nil, NeedMore, 0, true
	}
	return nil, 0, 0, false
}
