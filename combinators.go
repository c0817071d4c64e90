package blex

import (
	"github.com/kolkov/blex/internal/decode"
	"github.com/kolkov/blex/internal/regex"
	"github.com/kolkov/blex/internal/value"
)

// Regex is a regular expression tree. Build one with the constructors below
// or load a grammar with package grammar.
type Regex = regex.Regex

// Value describes how a string was matched by a Regex.
type Value = value.Value

// Token is the text matched by one named group.
type Token = decode.Token

// Value node types, for inspecting the result of Lex with a type switch.
type (
	Empty  = value.Empty
	Chr    = value.Chr
	Left   = value.Left
	Right  = value.Right
	Sequ   = value.Sequ
	Stars  = value.Stars
	Ntimes = value.Ntimes
	Named  = value.Rec
)

// Zero matches nothing.
func Zero() Regex { return regex.Zero{} }

// One matches the empty string.
func One() Regex { return regex.One{} }

// Char matches the single character c.
func Char(c rune) Regex { return regex.Char{C: c} }

// Seq matches r1 followed by r2.
func Seq(r1, r2 Regex) Regex { return regex.Seq{First: r1, Second: r2} }

// Alt matches r1 or r2. Where both match, r1 is preferred.
func Alt(r1, r2 Regex) Regex { return regex.Alt{Left: r1, Right: r2} }

// Star matches zero or more repetitions of r.
func Star(r Regex) Regex { return regex.Star{Body: r} }

// NTimes matches exactly n repetitions of r.
func NTimes(r Regex, n int) Regex { return regex.NTimes{Body: r, N: n} }

// Rec names the text matched by r.
func Rec(name string, r Regex) Regex { return regex.Rec{Name: name, Body: r} }

// Plus matches one or more repetitions of r.
func Plus(r Regex) Regex { return regex.Plus(r) }

// Opt matches r or the empty string.
func Opt(r Regex) Regex { return regex.Opt(r) }

// Range matches any one character of chars.
func Range(chars string) Regex { return regex.Range(chars) }

// Literal matches s exactly.
func Literal(s string) Regex { return regex.Literal(s) }

// Alts chains alternatives right-nested, preferring earlier ones.
func Alts(rs ...Regex) Regex { return regex.Alts(rs...) }

// Seqs chains a sequence right-nested.
func Seqs(rs ...Regex) Regex { return regex.Seqs(rs...) }

// Flatten returns the text matched by v.
func Flatten(v Value) string { return value.Flatten(v) }
