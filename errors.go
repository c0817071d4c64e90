package blex

import (
	"errors"
	"fmt"

	"github.com/kolkov/blex/internal/engine"
)

// ErrNoMatch is returned, wrapped in a *LexError, when the whole input is
// not in the language of the regex.
var ErrNoMatch = engine.ErrNoMatch

// LexError reports that the input did not match.
type LexError struct {
	// Offset is the rune index of the first character that could not be
	// consumed, the input length if the input ended too early, or -1 if the
	// input was rejected by the prefilter.
	Offset int
	Input  string
}

func (e *LexError) Error() string {
	if e.Offset < 0 {
		return "lex error: input rejected by prefilter"
	}
	return fmt.Sprintf("lex error: no match at offset %d", e.Offset)
}

// Unwrap returns ErrNoMatch.
func (e *LexError) Unwrap() error { return ErrNoMatch }

// ParseError represents a syntax error in a pattern.
type ParseError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// CompileError represents an invalid regex passed to Compile.
type CompileError struct {
	Message string // Error description
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error: %s", e.Message)
}

// InternalError reports that the match witness and the regex disagreed
// while decoding. It always indicates a bug in this package.
type InternalError struct {
	Message string // Error description
	Err     error  // Underlying decoder error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s", e.Message)
}

func (e *InternalError) Unwrap() error { return e.Err }

// IsNoMatch reports whether err is a LexError and returns the offset.
// Returns (offset, true) if err is a LexError, or (0, false) otherwise.
func IsNoMatch(err error) (int, bool) {
	var le *LexError
	if errors.As(err, &le) {
		return le.Offset, true
	}
	return 0, false
}
