// Package regex defines the plain (unannotated) regular expression tree.
//
// Regular expressions are built programmatically from combinators; there is
// no pattern-string parser. Every node is an immutable value type, so trees
// can be shared between lexers and goroutines without copying, and two trees
// are structurally equal exactly when they compare equal with ==.
//
// Node hierarchy:
//
//	Regex (interface)
//	├── Zero         - the empty language
//	├── One          - the empty string
//	├── Char         - a single character
//	├── Alt          - alternation of two expressions
//	├── Seq          - sequencing of two expressions
//	├── Star         - unbounded repetition
//	├── NTimes       - repetition exactly N times
//	└── Rec          - named group (token marker)
package regex

import (
	"fmt"
	"strconv"
)

// Regex is the interface implemented by all regular expression nodes.
type Regex interface {
	fmt.Stringer
	regexNode() // marker method to prevent external implementations
}

// Zero matches nothing.
type Zero struct{}

// One matches only the empty string.
type One struct{}

// Char matches exactly the character C.
type Char struct {
	C rune
}

// Alt matches whatever Left or Right matches. Left has priority.
type Alt struct {
	Left  Regex
	Right Regex
}

// Seq matches First followed by Second.
type Seq struct {
	First  Regex
	Second Regex
}

// Star matches zero or more repetitions of Body.
type Star struct {
	Body Regex
}

// NTimes matches exactly N repetitions of Body.
type NTimes struct {
	Body Regex
	N    int
}

// Rec marks the text matched by Body as a token called Name.
type Rec struct {
	Name string
	Body Regex
}

func (Zero) regexNode()   {}
func (One) regexNode()    {}
func (Char) regexNode()   {}
func (Alt) regexNode()    {}
func (Seq) regexNode()    {}
func (Star) regexNode()   {}
func (NTimes) regexNode() {}
func (Rec) regexNode()    {}

func (Zero) String() string   { return "ZERO" }
func (One) String() string    { return "ONE" }
func (c Char) String() string { return "CHAR(" + strconv.QuoteRune(c.C) + ")" }
func (a Alt) String() string  { return "ALT(" + str(a.Left) + ", " + str(a.Right) + ")" }
func (s Seq) String() string  { return "SEQ(" + str(s.First) + ", " + str(s.Second) + ")" }
func (s Star) String() string { return "STAR(" + str(s.Body) + ")" }
func (n NTimes) String() string {
	return "NTIMES(" + str(n.Body) + ", " + strconv.Itoa(n.N) + ")"
}
func (r Rec) String() string { return "RECD(" + strconv.Quote(r.Name) + ", " + str(r.Body) + ")" }

func str(r Regex) string {
	if r == nil {
		return "<nil>"
	}
	return r.String()
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b Regex) bool {
	return a == b
}

// Size returns the number of nodes in r.
func Size(r Regex) int {
	n := 0
	Walk(r, func(Regex) bool {
		n++
		return true
	})
	return n
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Regex = Zero{}
	_ Regex = One{}
	_ Regex = Char{}
	_ Regex = Alt{}
	_ Regex = Seq{}
	_ Regex = Star{}
	_ Regex = NTimes{}
	_ Regex = Rec{}
)
