// Package bitcode provides the dense, immutable bit sequences that annotate
// regular expressions during bitcoded derivative matching.
//
// A bit records one path choice:
//
//	Z (false) - left alternative taken, or one more star iteration entered
//	S (true)  - right alternative taken, or star iteration stopped
//
// Bits values are persistent: every operation returns a new sequence and never
// writes into the backing array of an existing one, so sequences can be shared
// freely between annotated trees of different derivative steps.
package bitcode

import "strings"

const (
	Z = false
	S = true
)

const wordBits = 64

// Bits is an immutable sequence of bits packed into 64-bit words.
// The zero value is the empty sequence.
type Bits struct {
	words []uint64
	n     int
}

// Of returns a sequence holding the given bits in order.
func Of(bs ...bool) Bits {
	if len(bs) == 0 {
		return Bits{}
	}
	words := make([]uint64, wordsFor(len(bs)))
	for i, b := range bs {
		if b {
			words[i/wordBits] |= 1 << (i % wordBits)
		}
	}
	return Bits{words: words, n: len(bs)}
}

// Parse builds a sequence from a string of '0' and '1' characters.
// Any other character is ignored, so "0 1 1" and "011" are equivalent.
func Parse(s string) Bits {
	bs := make([]bool, 0, len(s))
	for _, c := range s {
		switch c {
		case '0':
			bs = append(bs, Z)
		case '1':
			bs = append(bs, S)
		}
	}
	return Of(bs...)
}

func wordsFor(n int) int {
	return (n + wordBits - 1) / wordBits
}

// Len returns the number of bits in the sequence.
func (b Bits) Len() int { return b.n }

// Empty reports whether the sequence holds no bits.
func (b Bits) Empty() bool { return b.n == 0 }

// At returns the bit at index i. It panics if i is out of range.
func (b Bits) At(i int) bool {
	if i < 0 || i >= b.n {
		panic("bitcode: index out of range")
	}
	return b.words[i/wordBits]&(1<<(i%wordBits)) != 0
}

// Equal reports whether a and b hold the same bits in the same order.
func (b Bits) Equal(o Bits) bool {
	if b.n != o.n {
		return false
	}
	full := b.n / wordBits
	for i := 0; i < full; i++ {
		if b.words[i] != o.words[i] {
			return false
		}
	}
	if rem := b.n % wordBits; rem != 0 {
		mask := uint64(1)<<rem - 1
		return b.words[full]&mask == o.words[full]&mask
	}
	return true
}

// Append returns b followed by bit.
func (b Bits) Append(bit bool) Bits {
	words := make([]uint64, wordsFor(b.n+1))
	copy(words, b.words)
	if bit {
		words[b.n/wordBits] |= 1 << (b.n % wordBits)
	}
	return Bits{words: words, n: b.n + 1}
}

// Prepend returns bit followed by b.
func (b Bits) Prepend(bit bool) Bits {
	return Concat(Of(bit), b)
}

// Concat returns the concatenation of the given sequences in order.
func Concat(seqs ...Bits) Bits {
	total := 0
	nonEmpty := 0
	var last Bits
	for _, s := range seqs {
		if s.n > 0 {
			nonEmpty++
			last = s
		}
		total += s.n
	}
	switch nonEmpty {
	case 0:
		return Bits{}
	case 1:
		return last
	}

	words := make([]uint64, wordsFor(total))
	pos := 0
	for _, s := range seqs {
		if s.n == 0 {
			continue
		}
		if pos%wordBits == 0 {
			// Word aligned: copy whole words, then clear the tail past s.n.
			copy(words[pos/wordBits:], s.words[:wordsFor(s.n)])
			if rem := (pos + s.n) % wordBits; rem != 0 {
				words[(pos+s.n)/wordBits] &= uint64(1)<<rem - 1
			}
			pos += s.n
			continue
		}
		for i := 0; i < s.n; i++ {
			if s.words[i/wordBits]&(1<<(i%wordBits)) != 0 {
				words[pos/wordBits] |= 1 << (pos % wordBits)
			}
			pos++
		}
	}
	return Bits{words: words, n: total}
}

// Repeat returns b concatenated with itself count times.
func (b Bits) Repeat(count int) Bits {
	if count <= 0 || b.n == 0 {
		return Bits{}
	}
	seqs := make([]Bits, count)
	for i := range seqs {
		seqs[i] = b
	}
	return Concat(seqs...)
}

// String renders the sequence as '0'/'1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		if b.At(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
