// Package token defines lexical tokens of the regex pattern syntax.
package token

import "fmt"

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF

	// Operators and delimiters
	operatorStart
	PIPE     // |
	STAR     // *
	PLUS     // +
	QUESTION // ?
	REPEAT   // {n}, {n,} or {n,m}
	LPAREN   // (
	GROUP    // (?: or (?P<name>
	RPAREN   // )
	operatorEnd

	// Unsupported anchors and wildcards
	unsupportedStart
	DOT    // .
	CARET  // ^
	DOLLAR // $
	unsupportedEnd

	// Literals
	CHAR  // character
	CLASS // character class
)

var names = [...]string{
	ILLEGAL:  "illegal",
	EOF:      "end of pattern",
	PIPE:     "|",
	STAR:     "*",
	PLUS:     "+",
	QUESTION: "?",
	REPEAT:   "repetition",
	LPAREN:   "(",
	GROUP:    "group",
	RPAREN:   ")",
	DOT:      ".",
	CARET:    "^",
	DOLLAR:   "$",
	CHAR:     "character",
	CLASS:    "character class",
}

// String returns a human-readable name for the token type.
func (t Token) String() string {
	if int(t) < len(names) && names[t] != "" {
		return names[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsOperator returns true if the token is an operator.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsPostfix returns true if the token is a repetition operator.
func (t Token) IsPostfix() bool {
	return t == STAR || t == PLUS || t == QUESTION || t == REPEAT
}

// IsUnsupported returns true for RE2 syntax that has no whole-input meaning.
func (t Token) IsUnsupported() bool {
	return t > unsupportedStart && t < unsupportedEnd
}

// IsLiteral returns true if the token matches characters.
func (t Token) IsLiteral() bool {
	return t == CHAR || t == CLASS
}
