package store

// Deque is a double-ended sequence of owned byte strings with O(1)
// push/pop at both ends, O(1) size, and O(1) random access by index. It
// backs the LPUSH/RPUSH/LPOP/RPOP/LLEN/LRANGE command family.
//
// Backed by a resizable ring buffer rather than a plain slice so that
// pushing to the front doesn't degrade to O(n) per push.
type Deque struct {
	buf  [][]byte
	head int
	size int
}

// NewDeque returns an empty Deque.
func NewDeque() *Deque {
	return &Deque{}
}

// Len returns the number of elements.
func (d *Deque) Len() int { return d.size }

func (d *Deque) grow() {
	newCap := 4
	if len(d.buf) > 0 {
		newCap = len(d.buf) * 2
	}
	newBuf := make([][]byte, newCap)
	for i := 0; i < d.size; i++ {
		newBuf[i] = d.buf[(d.head+i)%len(d.buf)]
	}
	d.buf = newBuf
	d.head = 0
}

func (d *Deque) ensureCapacity() {
	if d.size == len(d.buf) {
		d.grow()
	}
}

// PushFront prepends v.
func (d *Deque) PushFront(v []byte) {
	d.ensureCapacity()
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = v
	d.size++
}

// PushBack appends v.
func (d *Deque) PushBack(v []byte) {
	d.ensureCapacity()
	idx := (d.head + d.size) % len(d.buf)
	d.buf[idx] = v
	d.size++
}

// PopFront removes and returns the first element. ok is false on an empty
// deque.
func (d *Deque) PopFront() (v []byte, ok bool) {
	if d.size == 0 {
		return nil, false
	}
	v = d.buf[d.head]
	d.buf[d.head] = nil
	d.head = (d.head + 1) % len(d.buf)
	d.size--
	return v, true
}

// PopBack removes and returns the last element. ok is false on an empty
// deque.
func (d *Deque) PopBack() (v []byte, ok bool) {
	if d.size == 0 {
		return nil, false
	}
	idx := (d.head + d.size - 1) % len(d.buf)
	v = d.buf[idx]
	d.buf[idx] = nil
	d.size--
	return v, true
}

// At returns the element at the given 0-indexed position from the front.
// The caller must ensure 0 <= i < Len().
func (d *Deque) At(i int) []byte {
	return d.buf[(d.head+i)%len(d.buf)]
}
