package arexp

import "github.com/kolkov/blex/internal/bitcode"

// Nullable reports whether r matches the empty string.
// Alternatives are tested in list order, the same order Mkeps uses.
func Nullable(r ARexp) bool {
	switch n := r.(type) {
	case *One, *Star:
		return true
	case *Alts:
		for _, c := range n.Rs {
			if Nullable(c) {
				return true
			}
		}
		return false
	case *Seq:
		return Nullable(n.First) && Nullable(n.Second)
	case *NTimes:
		return n.N == 0 || Nullable(n.Body)
	default: // *Zero, *Char
		return false
	}
}

// Derive returns the derivative of r with respect to c: an annotated regex
// matching every s such that c·s is matched by r, with the bits recording how
// c was consumed.
func Derive(c rune, r ARexp) ARexp {
	switch n := r.(type) {
	case *Zero:
		return n

	case *One:
		return NewZero()

	case *Char:
		if n.C == c {
			return NewOne(n.bits)
		}
		return NewZero()

	case *Alts:
		rs := make([]ARexp, len(n.Rs))
		for i, alt := range n.Rs {
			rs[i] = Derive(c, alt)
		}
		return NewAlts(n.bits, rs...)

	case *Seq:
		if Nullable(n.First) {
			return NewAlts(n.bits,
				NewSeq(bitcode.Bits{}, Derive(c, n.First), n.Second),
				Fuse(Mkeps(n.First), Derive(c, n.Second)),
			)
		}
		return NewSeq(n.bits, Derive(c, n.First), n.Second)

	case *Star:
		// Z marks that one more iteration was entered.
		return NewSeq(n.bits,
			FuseBit(bitcode.Z, Derive(c, n.Body)),
			NewStar(bitcode.Bits{}, n.Body),
		)

	case *NTimes:
		if n.N == 0 {
			return NewZero()
		}
		return NewSeq(n.bits,
			Derive(c, n.Body),
			NewNTimes(bitcode.Bits{}, n.Body, n.N-1),
		)
	}
	return NewZero()
}

// Mkeps returns the bits witnessing how r matches the empty string, following
// the POSIX preference: the first nullable alternative, and zero further
// iterations of a star. r must be nullable.
func Mkeps(r ARexp) bitcode.Bits {
	switch n := r.(type) {
	case *One:
		return n.bits

	case *Alts:
		for _, c := range n.Rs {
			if Nullable(c) {
				return bitcode.Concat(n.bits, Mkeps(c))
			}
		}
		return n.bits

	case *Seq:
		return bitcode.Concat(n.bits, Mkeps(n.First), Mkeps(n.Second))

	case *Star:
		// S marks that iteration stopped.
		return n.bits.Append(bitcode.S)

	case *NTimes:
		if n.N == 0 {
			return n.bits
		}
		return bitcode.Concat(n.bits, Mkeps(n.Body).Repeat(n.N))
	}
	return bitcode.Bits{}
}
