// Package arexp implements bitcoded regular expressions: regex trees whose
// nodes carry the bit sequence of path choices taken so far, together with
// the Brzozowski derivative, simplification and empty-match witness
// operations over them.
//
// Node hierarchy:
//
//	ARexp (interface)
//	├── *Zero    - the empty language (never annotated)
//	├── *One     - the empty string
//	├── *Char    - a single character
//	├── *Alts    - n-ary alternation, priority in list order
//	├── *Seq     - sequencing
//	├── *Star    - unbounded repetition
//	└── *NTimes  - repetition exactly N times
//
// Named groups are not represented: they are recovered by the decoders from
// the original regex.
//
// Nodes are never mutated after construction. Every operation builds fresh
// nodes and freely shares unchanged subtrees (Star and NTimes derivatives
// reference the same body from the old and the new tree).
package arexp

import (
	"strconv"
	"strings"

	"github.com/kolkov/blex/internal/bitcode"
)

// ARexp is the interface implemented by all annotated nodes.
type ARexp interface {
	// Bits returns the annotation attached to this node.
	Bits() bitcode.Bits

	String() string

	arexpNode() // marker method to prevent external implementations
}

// annotation provides the bit sequence embedded in every annotated node.
type annotation struct {
	bits bitcode.Bits
}

func (a annotation) Bits() bitcode.Bits { return a.bits }
func (annotation) arexpNode()           {}

// Zero matches nothing. It carries no annotation.
type Zero struct {
	annotation
}

// One matches the empty string.
type One struct {
	annotation
}

// Char matches the character C.
type Char struct {
	annotation
	C rune
}

// Alts matches any of Rs; earlier alternatives have priority.
type Alts struct {
	annotation
	Rs []ARexp
}

// Seq matches First followed by Second.
type Seq struct {
	annotation
	First  ARexp
	Second ARexp
}

// Star matches zero or more repetitions of Body.
type Star struct {
	annotation
	Body ARexp
}

// NTimes matches exactly N repetitions of Body.
type NTimes struct {
	annotation
	Body ARexp
	N    int
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// NewZero returns the empty-language node.
func NewZero() *Zero { return &Zero{} }

// NewOne returns an empty-string node annotated with bs.
func NewOne(bs bitcode.Bits) *One { return &One{annotation{bs}} }

// NewChar returns a character node annotated with bs.
func NewChar(bs bitcode.Bits, c rune) *Char { return &Char{annotation{bs}, c} }

// NewAlts returns an alternation node annotated with bs.
// The slice is owned by the node from then on and must not be modified.
func NewAlts(bs bitcode.Bits, rs ...ARexp) *Alts { return &Alts{annotation{bs}, rs} }

// NewSeq returns a sequence node annotated with bs.
func NewSeq(bs bitcode.Bits, first, second ARexp) *Seq {
	return &Seq{annotation{bs}, first, second}
}

// NewStar returns a repetition node annotated with bs.
func NewStar(bs bitcode.Bits, body ARexp) *Star { return &Star{annotation{bs}, body} }

// NewNTimes returns a bounded repetition node annotated with bs.
func NewNTimes(bs bitcode.Bits, body ARexp, n int) *NTimes {
	return &NTimes{annotation{bs}, body, n}
}

// IsZero reports whether r is the empty-language node.
func IsZero(r ARexp) bool {
	_, ok := r.(*Zero)
	return ok
}

// -----------------------------------------------------------------------------
// Fuse
// -----------------------------------------------------------------------------

// Fuse returns a copy of r whose annotation is bs followed by r's own bits.
// Zero is returned unchanged.
func Fuse(bs bitcode.Bits, r ARexp) ARexp {
	if bs.Empty() {
		return r
	}
	switch n := r.(type) {
	case *Zero:
		return n
	case *One:
		return NewOne(bitcode.Concat(bs, n.bits))
	case *Char:
		return NewChar(bitcode.Concat(bs, n.bits), n.C)
	case *Alts:
		return NewAlts(bitcode.Concat(bs, n.bits), n.Rs...)
	case *Seq:
		return NewSeq(bitcode.Concat(bs, n.bits), n.First, n.Second)
	case *Star:
		return NewStar(bitcode.Concat(bs, n.bits), n.Body)
	case *NTimes:
		return NewNTimes(bitcode.Concat(bs, n.bits), n.Body, n.N)
	}
	return r
}

// FuseBit is Fuse with a single bit.
func FuseBit(bit bool, r ARexp) ARexp {
	if IsZero(r) {
		return r
	}
	return Fuse(bitcode.Of(bit), r)
}

// -----------------------------------------------------------------------------
// Structural queries
// -----------------------------------------------------------------------------

// Equal reports whether a and b have the same shape and content,
// ignoring annotations.
func Equal(a, b ARexp) bool {
	switch x := a.(type) {
	case *Zero:
		_, ok := b.(*Zero)
		return ok
	case *One:
		_, ok := b.(*One)
		return ok
	case *Char:
		y, ok := b.(*Char)
		return ok && x.C == y.C
	case *Alts:
		y, ok := b.(*Alts)
		if !ok || len(x.Rs) != len(y.Rs) {
			return false
		}
		for i := range x.Rs {
			if !Equal(x.Rs[i], y.Rs[i]) {
				return false
			}
		}
		return true
	case *Seq:
		y, ok := b.(*Seq)
		return ok && Equal(x.First, y.First) && Equal(x.Second, y.Second)
	case *Star:
		y, ok := b.(*Star)
		return ok && Equal(x.Body, y.Body)
	case *NTimes:
		y, ok := b.(*NTimes)
		return ok && x.N == y.N && Equal(x.Body, y.Body)
	}
	return false
}

// Size returns the number of nodes in r.
func Size(r ARexp) int {
	switch n := r.(type) {
	case *Alts:
		size := 1
		for _, c := range n.Rs {
			size += Size(c)
		}
		return size
	case *Seq:
		return 1 + Size(n.First) + Size(n.Second)
	case *Star:
		return 1 + Size(n.Body)
	case *NTimes:
		return 1 + Size(n.Body)
	default:
		return 1
	}
}

// -----------------------------------------------------------------------------
// Rendering
// -----------------------------------------------------------------------------

func (*Zero) String() string  { return "ZERO" }
func (n *One) String() string { return "ONE{" + n.bits.String() + "}" }
func (n *Char) String() string {
	return "CHAR{" + n.bits.String() + "}(" + strconv.QuoteRune(n.C) + ")"
}

func (n *Alts) String() string {
	parts := make([]string, len(n.Rs))
	for i, r := range n.Rs {
		parts[i] = r.String()
	}
	return "ALTS{" + n.bits.String() + "}[" + strings.Join(parts, ", ") + "]"
}

func (n *Seq) String() string {
	return "SEQ{" + n.bits.String() + "}(" + n.First.String() + ", " + n.Second.String() + ")"
}

func (n *Star) String() string {
	return "STAR{" + n.bits.String() + "}(" + n.Body.String() + ")"
}

func (n *NTimes) String() string {
	return "NTIMES{" + n.bits.String() + "}(" + n.Body.String() + ", " + strconv.Itoa(n.N) + ")"
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ ARexp = (*Zero)(nil)
	_ ARexp = (*One)(nil)
	_ ARexp = (*Char)(nil)
	_ ARexp = (*Alts)(nil)
	_ ARexp = (*Seq)(nil)
	_ ARexp = (*Star)(nil)
	_ ARexp = (*NTimes)(nil)
)
