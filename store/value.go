package store

// Kind tags the three value variants a keyspace entry can hold. Keys
// never change kind after creation: a command whose required kind
// disagrees with the stored kind gets ErrWrongType, never a silent
// reinterpretation.
type Kind uint8

const (
	KindText Kind = iota
	KindDeque
	KindSet
)

// Value is the sum type every keyspace entry holds: exactly one of Text,
// Deque, or Set. A plain interface plus three concrete types is enough
// here — generics wouldn't buy anything over the per-kind Find/FindOrCreate
// accessors each type already gets.
type Value interface {
	Kind() Kind
}

// Text is a mutable byte string, the value behind GET/SET.
type Text struct {
	Data []byte
}

func (*Text) Kind() Kind { return KindText }

// NewText wraps data as a fresh Text value. data is expected to already
// be owned (copied out of the caller's arena).
func NewText(data []byte) *Text { return &Text{Data: data} }

func (*Deque) Kind() Kind { return KindDeque }

func (*Set) Kind() Kind { return KindSet }
