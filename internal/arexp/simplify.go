package arexp

import "github.com/kolkov/blex/internal/bitcode"

// Simplify rewrites r bottom-up into a smaller annotated regex accepting the
// same language, moving bits so that Mkeps and the decoders still see the same
// path choices:
//
//	SEQ(ZERO, r) and SEQ(r, ZERO)  ->  ZERO
//	SEQ{bs}(ONE{b1}, r)             ->  r with bs·b1 prepended
//	SEQ{bs}(ALTS{b1}[r1..rn], r)    ->  ALTS{bs·b1}[SEQ(r1, r) .. SEQ(rn, r)]
//	ALTS{bs}[...]                   ->  flattened, ZERO-free, duplicate-free;
//	                                    collapsed when 0 or 1 alternatives remain
//
// Star and NTimes nodes are returned unchanged.
func Simplify(r ARexp) ARexp {
	switch n := r.(type) {
	case *Seq:
		first := Simplify(n.First)
		second := Simplify(n.Second)
		if IsZero(first) {
			return first
		}
		if IsZero(second) {
			return second
		}
		switch f := first.(type) {
		case *One:
			return Fuse(bitcode.Concat(n.bits, f.bits), second)
		case *Alts:
			rs := make([]ARexp, len(f.Rs))
			for i, alt := range f.Rs {
				rs[i] = NewSeq(bitcode.Bits{}, alt, second)
			}
			return NewAlts(bitcode.Concat(n.bits, f.bits), rs...)
		}
		return NewSeq(n.bits, first, second)

	case *Alts:
		rs := make([]ARexp, len(n.Rs))
		for i, alt := range n.Rs {
			rs[i] = Simplify(alt)
		}
		rs = distinct(flatten(rs))
		switch len(rs) {
		case 0:
			return NewZero()
		case 1:
			return Fuse(n.bits, rs[0])
		}
		return NewAlts(n.bits, rs...)
	}
	return r
}

// flatten inlines nested alternations, pushing their bits onto each inlined
// alternative, and drops ZERO alternatives. Order is preserved.
func flatten(rs []ARexp) []ARexp {
	out := make([]ARexp, 0, len(rs))
	for _, r := range rs {
		switch n := r.(type) {
		case *Zero:
		case *Alts:
			for _, alt := range n.Rs {
				if !IsZero(alt) {
					out = append(out, Fuse(n.bits, alt))
				}
			}
		default:
			out = append(out, r)
		}
	}
	return out
}

// distinct removes alternatives structurally equal to an earlier one.
// The first occurrence wins; this is what gives POSIX priority among
// identical alternatives.
func distinct(rs []ARexp) []ARexp {
	if len(rs) < 2 {
		return rs
	}
	out := make([]ARexp, 0, len(rs))
	seen := make(map[uint64][]ARexp, len(rs))
outer:
	for _, r := range rs {
		h := Hash(r)
		for _, prev := range seen[h] {
			if Equal(prev, r) {
				continue outer
			}
		}
		seen[h] = append(seen[h], r)
		out = append(out, r)
	}
	return out
}

// Hash returns a structural hash of r that ignores annotations.
// Equal nodes always hash equally.
func Hash(r ARexp) uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	mix := func(h, v uint64) uint64 {
		return (h ^ v) * prime
	}

	var hash func(ARexp) uint64
	hash = func(r ARexp) uint64 {
		switch n := r.(type) {
		case *Zero:
			return mix(offset, 1)
		case *One:
			return mix(offset, 2)
		case *Char:
			return mix(mix(offset, 3), uint64(n.C))
		case *Alts:
			h := mix(offset, 4)
			for _, alt := range n.Rs {
				h = mix(h, hash(alt))
			}
			return mix(h, uint64(len(n.Rs)))
		case *Seq:
			return mix(mix(mix(offset, 5), hash(n.First)), hash(n.Second))
		case *Star:
			return mix(mix(offset, 6), hash(n.Body))
		case *NTimes:
			return mix(mix(mix(offset, 7), hash(n.Body)), uint64(n.N))
		}
		return offset
	}
	return hash(r)
}
