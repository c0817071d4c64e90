package blex

import "io"

// Config holds configuration options for a Lexer.
type Config struct {
	// Simplify runs simplification after every derivative step (default: true).
	// Disabling it never changes which inputs are accepted, but the residual
	// expression grows with the input and the chosen match may differ where
	// alternatives overlap.
	Simplify *bool

	// Prefilter enables a fast-reject pass before derivative matching.
	// Inputs are checked against literal constraints, the regex alphabet
	// and an anchored coregex program. Rejected inputs report a LexError
	// with Offset -1.
	Prefilter bool

	// CacheSize is the number of Lex and Tokenize results kept in an LRU
	// cache, keyed by input. Zero disables caching.
	CacheSize int

	// Normalize converts input to Unicode NFC before matching, so that
	// precomposed and decomposed spellings of a character lex the same.
	Normalize bool

	// Trace receives a step-by-step log of every derivative run.
	// If nil, tracing is disabled.
	Trace io.Writer
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Simplify == nil {
		simplify := true
		c.Simplify = &simplify
	}
	if c.CacheSize < 0 {
		c.CacheSize = 0
	}
}
