package runtime

import (
	"unicode/utf8"

	"github.com/kolkov/blex/internal/regex"
)

// ByteSet provides O(1) byte membership using a 32-byte bitmap.
//
// Memory layout:
//   - [4]uint64 = 32 bytes (fits in half a cache line)
//   - Each bit represents one byte value (0-255)
//   - Check: (bitmap[c/64] >> (c%64)) & 1
type ByteSet [4]uint64

// Contains checks if byte c is in the set.
func (b *ByteSet) Contains(c byte) bool {
	return (b[c>>6] & (1 << (c & 63))) != 0
}

// Set adds byte c to the set.
func (b *ByteSet) Set(c byte) {
	b[c>>6] |= 1 << (c & 63)
}

// SetRune adds every byte of the UTF-8 encoding of r.
func (b *ByteSet) SetRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for _, c := range buf[:n] {
		b.Set(c)
	}
}

// Len returns the number of bytes in the set.
func (b *ByteSet) Len() int {
	n := 0
	for c := 0; c < 256; c++ {
		if b.Contains(byte(c)) {
			n++
		}
	}
	return n
}

// alphabetOf returns the bytes that can occur in any string matched by r:
// every byte of every character literal in the tree.
func alphabetOf(r regex.Regex) *ByteSet {
	var set ByteSet
	regex.Walk(r, func(n regex.Regex) bool {
		if c, ok := n.(regex.Char); ok {
			set.SetRune(c.C)
		}
		return true
	})
	return &set
}

// CanReject reports whether s contains a byte outside the set.
// Processes 8 bytes per iteration for the common case.
func (b *ByteSet) CanReject(s string) bool {
	i := 0
	for ; i+8 <= len(s); i += 8 {
		if !b.Contains(s[i]) || !b.Contains(s[i+1]) ||
			!b.Contains(s[i+2]) || !b.Contains(s[i+3]) ||
			!b.Contains(s[i+4]) || !b.Contains(s[i+5]) ||
			!b.Contains(s[i+6]) || !b.Contains(s[i+7]) {
			return true
		}
	}
	for ; i < len(s); i++ {
		if !b.Contains(s[i]) {
			return true
		}
	}
	return false
}
