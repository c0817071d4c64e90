// Package value defines parse values: the witnesses describing how a string
// was matched by a regular expression.
//
// Value hierarchy:
//
//	Value (interface)
//	├── Empty   - matched ONE
//	├── Chr     - matched a character
//	├── Left    - first alternative of ALT
//	├── Right   - second alternative of ALT
//	├── Sequ    - both parts of SEQ
//	├── Stars   - iterations of STAR
//	├── Ntimes  - iterations of NTIMES
//	└── Rec     - named group
package value

import (
	"strconv"
	"strings"
)

// Value is the interface implemented by all parse values.
type Value interface {
	String() string
	valueNode() // marker method to prevent external implementations
}

// Empty is the value of ONE.
type Empty struct{}

// Chr is the value of a matched character.
type Chr struct {
	C rune
}

// Left wraps the value of the first alternative.
type Left struct {
	V Value
}

// Right wraps the value of the second alternative.
type Right struct {
	V Value
}

// Sequ pairs the values of both parts of a sequence.
type Sequ struct {
	First  Value
	Second Value
}

// Stars holds the values of each iteration of a star, in order.
type Stars struct {
	Vs []Value
}

// Ntimes holds the values of each iteration of a bounded repetition, in order.
type Ntimes struct {
	Vs []Value
}

// Rec tags the value of a named group with its name.
type Rec struct {
	Name string
	V    Value
}

func (Empty) valueNode()  {}
func (Chr) valueNode()    {}
func (Left) valueNode()   {}
func (Right) valueNode()  {}
func (Sequ) valueNode()   {}
func (Stars) valueNode()  {}
func (Ntimes) valueNode() {}
func (Rec) valueNode()    {}

func (Empty) String() string   { return "Empty" }
func (c Chr) String() string   { return "Chr(" + strconv.QuoteRune(c.C) + ")" }
func (l Left) String() string  { return "Left(" + l.V.String() + ")" }
func (r Right) String() string { return "Right(" + r.V.String() + ")" }
func (s Sequ) String() string  { return "Sequ(" + s.First.String() + ", " + s.Second.String() + ")" }
func (s Stars) String() string { return "Stars(" + join(s.Vs) + ")" }
func (n Ntimes) String() string {
	return "Ntimes(" + join(n.Vs) + ")"
}
func (r Rec) String() string { return "Rec(" + strconv.Quote(r.Name) + ", " + r.V.String() + ")" }

func join(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Value = Empty{}
	_ Value = Chr{}
	_ Value = Left{}
	_ Value = Right{}
	_ Value = Sequ{}
	_ Value = Stars{}
	_ Value = Ntimes{}
	_ Value = Rec{}
)
