// Package parser provides a recursive descent parser for the regex pattern
// syntax, producing regex trees.
package parser

import (
	"fmt"

	"github.com/kolkov/blex/internal/token"
)

// Error is the syntax error that stopped parsing. The parser does not
// recover, so a pattern yields at most one.
type Error struct {
	Pos     token.Position // where the offending token starts
	Message string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}
