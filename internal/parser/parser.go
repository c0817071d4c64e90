package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kolkov/blex/internal/lexer"
	"github.com/kolkov/blex/internal/regex"
	"github.com/kolkov/blex/internal/token"
)

// MaxRepeat bounds the counts of {n}, {n,} and {n,m}, as in RE2.
const MaxRepeat = 1000

// maxDepth bounds group nesting.
const maxDepth = 1000

// Parser is a recursive descent parser for patterns.
//
// Grammar, lowest precedence first:
//
//	alt     = concat { "|" concat }
//	concat  = { repeat }
//	repeat  = primary { "*" | "+" | "?" | "{n}" | "{n,}" | "{n,m}" }
//	primary = CHAR | CLASS | "(" alt ")" | "(?:" alt ")" | "(?P<name>" alt ")"
type Parser struct {
	lexer  *lexer.Lexer // Lexer instance
	tok    lexer.Token  // Current token
	err    *Error       // First error; parsing stops there
	depth  int          // Group nesting depth
}

// Parse parses a pattern into a regex.
//
// Alternation keeps the written order, so earlier alternatives are
// preferred. Named groups become Rec nodes; plain and non-capturing groups
// only group. "?" and the optional part of {n,m} prefer the empty match,
// like the Opt combinator. The empty pattern matches the empty string.
func Parse(src string) (regex.Regex, error) {
	p := &Parser{
		lexer: lexer.New(src),
	}
	p.next() // Initialize first token

	r := p.parseAlt()
	if !p.failed() && p.tok.Type != token.EOF {
		p.errorf("unexpected %s", p.tokenDesc())
	}

	if p.err != nil {
		return nil, p.err
	}
	return r, nil
}

// MustParse is like Parse but panics if the pattern is invalid.
func MustParse(src string) regex.Regex {
	r, err := Parse(src)
	if err != nil {
		panic("parser: Parse(" + strconv.Quote(src) + "): " + err.Error())
	}
	return r
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token.
func (p *Parser) next() {
	p.tok = p.lexer.Scan()
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.CHAR:
		return strconv.Quote(p.tok.Value)
	case token.ILLEGAL:
		// ILLEGAL token's Value contains the actual error message
		return p.tok.Value
	}
	return p.tok.Type.String()
}

// errorAt records a parse error at pos unless one is already recorded.
func (p *Parser) errorAt(pos token.Position, format string, args ...any) {
	if p.err == nil {
		p.err = &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
	}
}

// errorf records a parse error at the current token.
func (p *Parser) errorf(format string, args ...any) {
	p.errorAt(p.tok.Pos, format, args...)
}

// failed reports whether an error has been recorded. Parsing stops at the
// first error.
func (p *Parser) failed() bool {
	return p.err != nil
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// parseAlt parses alternatives separated by |.
func (p *Parser) parseAlt() regex.Regex {
	branches := []regex.Regex{p.parseConcat()}
	for !p.failed() && p.tok.Type == token.PIPE {
		p.next()
		branches = append(branches, p.parseConcat())
	}
	if p.failed() {
		return nil
	}
	return regex.Alts(branches...)
}

// parseConcat parses a possibly empty sequence.
func (p *Parser) parseConcat() regex.Regex {
	var items []regex.Regex
	for !p.failed() {
		switch p.tok.Type {
		case token.PIPE, token.RPAREN, token.EOF:
			return regex.Seqs(items...)
		}
		items = append(items, p.parseRepeat())
	}
	return nil
}

// parseRepeat parses a primary followed by repetition operators.
func (p *Parser) parseRepeat() regex.Regex {
	r := p.parsePrimary()
	for !p.failed() && p.tok.Type.IsPostfix() {
		switch p.tok.Type {
		case token.STAR:
			r = regex.Star{Body: r}
		case token.PLUS:
			r = regex.Plus(r)
		case token.QUESTION:
			r = regex.Opt(r)
		case token.REPEAT:
			r = p.repeat(r, p.tok.Value)
		}
		p.next()
	}
	return r
}

// repeat expands a counted repetition of r. count is the text between the
// braces, already checked by the lexer to be "n", "n," or "n,m".
func (p *Parser) repeat(r regex.Regex, count string) regex.Regex {
	minStr, maxStr, hasComma := strings.Cut(count, ",")
	lo, err := strconv.Atoi(minStr)
	if err != nil || lo > MaxRepeat {
		p.errorf("invalid repetition count {%s}", count)
		return nil
	}
	exact := regex.NTimes{Body: r, N: lo}
	if !hasComma {
		return exact
	}
	if maxStr == "" {
		return regex.Seq{First: exact, Second: regex.Star{Body: r}}
	}
	hi, err := strconv.Atoi(maxStr)
	if err != nil || hi > MaxRepeat {
		p.errorf("invalid repetition count {%s}", count)
		return nil
	}
	if hi < lo {
		p.errorf("invalid repetition range {%s}", count)
		return nil
	}
	return regex.Seq{First: exact, Second: regex.NTimes{Body: regex.Opt(r), N: hi - lo}}
}

// parsePrimary parses a character, a class or a group.
func (p *Parser) parsePrimary() regex.Regex {
	tok := p.tok
	switch tok.Type {
	case token.CHAR:
		p.next()
		c, _ := utf8.DecodeRuneInString(tok.Value)
		return regex.Char{C: c}

	case token.CLASS:
		p.next()
		return regex.Range(tok.Value)

	case token.LPAREN, token.GROUP:
		if p.depth >= maxDepth {
			p.errorf("groups nested too deeply")
			return nil
		}
		p.depth++
		p.next()
		body := p.parseAlt()
		p.depth--
		if p.failed() {
			return nil
		}
		if p.tok.Type != token.RPAREN {
			p.errorAt(tok.Pos, "missing closing ) for group opened here")
			return nil
		}
		p.next()
		if tok.Type == token.GROUP && tok.Value != "" {
			return regex.Rec{Name: tok.Value, Body: body}
		}
		return body

	case token.ILLEGAL:
		p.errorf("%s", tok.Value)
		return nil

	case token.DOT:
		p.errorf("wildcard . is not supported")
		return nil

	case token.CARET, token.DOLLAR:
		p.errorf("anchor %s is not supported; patterns always match the whole input", tok.Type)
		return nil
	}

	if tok.Type.IsPostfix() {
		p.errorf("missing argument to repetition operator %s", p.tokenDesc())
		return nil
	}
	p.errorAt(tok.Pos, "expected expression, got %s", p.tokenDesc())
	return nil
}
