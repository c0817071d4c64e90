package bitcode

// Reader consumes a Bits sequence from the front.
// The underlying sequence is never modified; a Reader only advances its cursor.
type Reader struct {
	bits Bits
	pos  int
}

// NewReader returns a Reader positioned at the first bit of b.
func NewReader(b Bits) *Reader {
	return &Reader{bits: b}
}

// Next pops the front bit. ok is false when the sequence is exhausted.
func (r *Reader) Next() (bit, ok bool) {
	if r.pos >= r.bits.n {
		return false, false
	}
	bit = r.bits.At(r.pos)
	r.pos++
	return bit, true
}

// Done reports whether every bit has been consumed.
func (r *Reader) Done() bool { return r.pos >= r.bits.n }

// Pos returns the index of the next bit to be consumed.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unconsumed bits.
func (r *Reader) Remaining() int { return r.bits.n - r.pos }

// Rest returns the unconsumed suffix as a new sequence.
func (r *Reader) Rest() Bits {
	if r.pos == 0 {
		return r.bits
	}
	rest := make([]bool, 0, r.Remaining())
	for i := r.pos; i < r.bits.n; i++ {
		rest = append(rest, r.bits.At(i))
	}
	return Of(rest...)
}
