package arexp

import (
	"github.com/kolkov/blex/internal/bitcode"
	"github.com/kolkov/blex/internal/regex"
)

// Internalize converts a plain regex into an annotated one with empty
// annotations, except that the two branches of every alternation are seeded
// with Z (left) and S (right). Named groups are dropped.
func Internalize(r regex.Regex) ARexp {
	switch n := r.(type) {
	case regex.Zero:
		return NewZero()
	case regex.One:
		return NewOne(bitcode.Bits{})
	case regex.Char:
		return NewChar(bitcode.Bits{}, n.C)
	case regex.Alt:
		return NewAlts(bitcode.Bits{},
			FuseBit(bitcode.Z, Internalize(n.Left)),
			FuseBit(bitcode.S, Internalize(n.Right)),
		)
	case regex.Seq:
		return NewSeq(bitcode.Bits{}, Internalize(n.First), Internalize(n.Second))
	case regex.Star:
		return NewStar(bitcode.Bits{}, Internalize(n.Body))
	case regex.NTimes:
		return NewNTimes(bitcode.Bits{}, Internalize(n.Body), n.N)
	case regex.Rec:
		return Internalize(n.Body)
	}
	return NewZero()
}

// Erase strips annotations, converting r back into a plain regex.
// N-ary alternations are re-nested to the right in list order.
func Erase(r ARexp) regex.Regex {
	switch n := r.(type) {
	case *One:
		return regex.One{}
	case *Char:
		return regex.Char{C: n.C}
	case *Alts:
		rs := make([]regex.Regex, len(n.Rs))
		for i, c := range n.Rs {
			rs[i] = Erase(c)
		}
		return regex.Alts(rs...)
	case *Seq:
		return regex.Seq{First: Erase(n.First), Second: Erase(n.Second)}
	case *Star:
		return regex.Star{Body: Erase(n.Body)}
	case *NTimes:
		return regex.NTimes{Body: Erase(n.Body), N: n.N}
	}
	return regex.Zero{}
}
