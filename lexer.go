package blex

import (
	"errors"

	"golang.org/x/text/unicode/norm"

	"github.com/kolkov/blex/internal/engine"
	"github.com/kolkov/blex/internal/regex"
	"github.com/kolkov/blex/internal/runtime"
	"github.com/kolkov/blex/internal/value"
)

// Lexer is a compiled regex ready for matching.
// It is safe for concurrent use; each call folds its own residual
// expression. Only the optional result cache is shared.
type Lexer struct {
	prog      *engine.Program
	config    Config
	engine    engine.Config
	prefilter *runtime.Prefilter // nil unless Config.Prefilter
	results   *resultCache       // nil unless Config.CacheSize > 0
}

// Lex matches the whole of input and returns the POSIX value tree.
// If input does not match, the error is a *LexError.
// With a result cache, every call returns its own copy of the tree.
func (l *Lexer) Lex(input string) (Value, error) {
	input = l.prepare(input)
	if res, ok := l.results.lookup(resultLex, input); ok {
		return res.value, res.err
	}

	var v Value
	err := l.reject(input)
	if err == nil {
		v, err = l.prog.Lex(input, l.engine)
		err = l.wrap(input, err)
	}

	l.results.store(resultLex, input, result{value: v, err: err})
	return v, err
}

// Tokenize matches the whole of input and returns the text of every named
// group, in input order. Text matched outside any group is reported as an
// unnamed token only when it precedes the first group; otherwise it is
// attached to the group opened most recently.
// If input does not match, the error is a *LexError.
// The returned slice belongs to the caller, cached or not.
func (l *Lexer) Tokenize(input string) ([]Token, error) {
	input = l.prepare(input)
	if res, ok := l.results.lookup(resultTokenize, input); ok {
		return res.tokens, res.err
	}

	var toks []Token
	err := l.reject(input)
	if err == nil {
		toks, err = l.prog.Tokenize(input, l.engine)
		err = l.wrap(input, err)
	}

	l.results.store(resultTokenize, input, result{tokens: toks, err: err})
	return toks, err
}

// Env matches the whole of input and returns every named group of the value
// tree in pre-order with the text it matched. Unlike Tokenize, nested groups
// are reported in addition to their enclosing group.
func (l *Lexer) Env(input string) ([]Token, error) {
	v, err := l.Lex(input)
	if err != nil {
		return nil, err
	}
	bindings := value.Env(v)
	toks := make([]Token, len(bindings))
	for i, b := range bindings {
		toks[i] = Token{Name: b.Name, Named: true, Text: b.Text}
	}
	return toks, nil
}

// Match reports whether the whole of input is in the language.
func (l *Lexer) Match(input string) bool {
	input = l.prepare(input)
	if l.prefilter != nil && l.prefilter.Reject(input) {
		return false
	}
	return l.prog.Match(input, l.engine)
}

// Bits returns the bit sequence recording how input was matched, as a
// string of '0' and '1'.
func (l *Lexer) Bits(input string) (string, error) {
	input = l.prepare(input)
	if err := l.reject(input); err != nil {
		return "", err
	}
	bits, err := l.prog.Bits(input, l.engine)
	if err != nil {
		return "", l.wrap(input, err)
	}
	return bits.String(), nil
}

// Regex returns the regex the lexer was compiled from.
func (l *Lexer) Regex() Regex {
	return l.prog.Regex
}

// Names returns the distinct group names in order of first appearance.
func (l *Lexer) Names() []string {
	return regex.Names(l.prog.Regex)
}

// Size returns the node count of the regex.
func (l *Lexer) Size() int {
	return regex.Size(l.prog.Regex)
}

// String returns the regex in RE2 syntax.
func (l *Lexer) String() string {
	return regex.Pattern(l.prog.Regex)
}

// Config returns the effective configuration.
func (l *Lexer) Config() Config {
	return l.config
}

func (l *Lexer) prepare(input string) string {
	if l.config.Normalize {
		return norm.NFC.String(input)
	}
	return input
}

func (l *Lexer) reject(input string) error {
	if l.prefilter != nil && l.prefilter.Reject(input) {
		return &LexError{Offset: -1, Input: input}
	}
	return nil
}

// wrap converts engine errors to the public error types.
func (l *Lexer) wrap(input string, err error) error {
	if err == nil {
		return nil
	}
	var me *engine.MatchError
	if errors.As(err, &me) {
		return &LexError{Offset: me.Offset, Input: input}
	}
	return &InternalError{Message: err.Error(), Err: err}
}
