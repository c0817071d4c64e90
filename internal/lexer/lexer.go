// Package lexer provides tokenization of the regex pattern syntax.
//
// The syntax is the RE2 subset that has a meaning for whole-input matching:
// literals, escapes, character classes, grouping, alternation and the
// repetition operators. Anchors, the wildcard and negated classes are
// reported as errors by the parser.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/kolkov/blex/internal/token"
)

// MaxClassSize bounds the number of members of one character class.
// Each member becomes one alternative of the regex.
const MaxClassSize = 4096

// Perl-style classes, ASCII only as in RE2.
const (
	digitClass = "0123456789"
	spaceClass = "\t\n\f\r "
	wordClass  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"
)

// Lexer tokenizes a pattern.
type Lexer struct {
	src     string         // Pattern source
	ch      rune           // Current character (-1 at EOF)
	offset  int            // Byte offset of the next character
	pos     token.Position // Position of the current character
	nextPos token.Position // Position of the next character
}

// New creates a new Lexer for the given pattern.
func New(src string) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Line:   1,
			Column: 1,
		},
	}
	l.next() // Initialize first character
	return l
}

// Token represents a scanned token with its position and value.
//
// Value holds the character for CHAR, the members in order of first
// appearance for CLASS, the group name for GROUP ("" when non-capturing),
// the text between the braces for REPEAT, and the message for ILLEGAL.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	pos := l.pos

	switch l.ch {
	case -1:
		return Token{Type: token.EOF, Pos: pos}
	case '|':
		l.next()
		return Token{Type: token.PIPE, Pos: pos, Value: "|"}
	case '*':
		l.next()
		return Token{Type: token.STAR, Pos: pos, Value: "*"}
	case '+':
		l.next()
		return Token{Type: token.PLUS, Pos: pos, Value: "+"}
	case '?':
		l.next()
		return Token{Type: token.QUESTION, Pos: pos, Value: "?"}
	case ')':
		l.next()
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}
	case '.':
		l.next()
		return Token{Type: token.DOT, Pos: pos, Value: "."}
	case '^':
		l.next()
		return Token{Type: token.CARET, Pos: pos, Value: "^"}
	case '$':
		l.next()
		return Token{Type: token.DOLLAR, Pos: pos, Value: "$"}

	case '(':
		l.next()
		if l.ch == '?' {
			return l.scanGroup(pos)
		}
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}

	case '{':
		if n, ok := repeatLen(l.src[l.offset:]); ok {
			value := l.src[l.offset : l.offset+n]
			for i := 0; i < n+2; i++ { // braces included
				l.next()
			}
			return Token{Type: token.REPEAT, Pos: pos, Value: value}
		}
		// A brace that does not start a repetition is a literal, as in RE2.
		l.next()
		return Token{Type: token.CHAR, Pos: pos, Value: "{"}

	case '[':
		return l.scanClass(pos)

	case '\\':
		l.next()
		members, class, msg := l.scanEscape()
		switch {
		case msg != "":
			return Token{Type: token.ILLEGAL, Pos: pos, Value: msg}
		case class:
			return Token{Type: token.CLASS, Pos: pos, Value: members}
		}
		return Token{Type: token.CHAR, Pos: pos, Value: members}

	default:
		ch := l.ch
		l.next()
		return Token{Type: token.CHAR, Pos: pos, Value: string(ch)}
	}
}

// scanGroup scans the group prefix after "(?".
func (l *Lexer) scanGroup(pos token.Position) Token {
	l.next() // consume ?
	switch l.ch {
	case ':':
		l.next()
		return Token{Type: token.GROUP, Pos: pos}
	case 'P':
		l.next()
		if l.ch != '<' {
			return Token{Type: token.ILLEGAL, Pos: pos, Value: "invalid named group"}
		}
		fallthrough
	case '<':
		l.next()
		start := l.pos.Offset
		for l.ch != '>' {
			if l.ch == -1 || l.ch == ')' || l.ch == '(' {
				return Token{Type: token.ILLEGAL, Pos: pos, Value: "invalid named group"}
			}
			l.next()
		}
		name := l.src[start:l.pos.Offset]
		l.next() // consume >
		if name == "" {
			return Token{Type: token.ILLEGAL, Pos: pos, Value: "empty group name"}
		}
		return Token{Type: token.GROUP, Pos: pos, Value: name}
	}
	return Token{Type: token.ILLEGAL, Pos: pos, Value: "unsupported group flags"}
}

// scanClass scans a bracket expression. Members keep the order in which
// they are written; duplicates are dropped.
func (l *Lexer) scanClass(pos token.Position) Token {
	l.next() // consume [
	if l.ch == '^' {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "negated character classes are not supported"}
	}

	var cs classSet
	first := true
	for {
		if l.ch == -1 {
			return Token{Type: token.ILLEGAL, Pos: pos, Value: "missing closing ]"}
		}
		if l.ch == ']' && !first {
			l.next()
			break
		}
		first = false

		lo, class, msg := l.classItem()
		if msg != "" {
			return Token{Type: token.ILLEGAL, Pos: pos, Value: msg}
		}
		if class != "" {
			cs.addString(class)
		} else if l.ch == '-' && l.peek() != ']' && l.peek() != -1 {
			l.next() // consume -
			hi, class, msg := l.classItem()
			if msg != "" {
				return Token{Type: token.ILLEGAL, Pos: pos, Value: msg}
			}
			if class != "" || hi < lo {
				return Token{Type: token.ILLEGAL, Pos: pos, Value: "invalid character class range"}
			}
			if int(hi-lo) >= MaxClassSize {
				return Token{Type: token.ILLEGAL, Pos: pos, Value: "character class too large"}
			}
			for c := lo; c <= hi; c++ {
				cs.add(c)
			}
		} else {
			cs.add(lo)
		}
		if cs.len() > MaxClassSize {
			return Token{Type: token.ILLEGAL, Pos: pos, Value: "character class too large"}
		}
	}
	return Token{Type: token.CLASS, Pos: pos, Value: cs.String()}
}

// classItem scans one class member: a character, or a Perl class
// returned in class.
func (l *Lexer) classItem() (ch rune, class string, msg string) {
	if l.ch != '\\' {
		ch = l.ch
		l.next()
		return ch, "", ""
	}
	l.next()
	members, isClass, msg := l.scanEscape()
	if msg != "" {
		return 0, "", msg
	}
	if isClass {
		return 0, members, ""
	}
	r, _ := utf8.DecodeRuneInString(members)
	return r, "", ""
}

// scanEscape scans the escape after a backslash. It returns the escaped
// character, or the members of a Perl class with class set, or an error
// message.
func (l *Lexer) scanEscape() (members string, class bool, msg string) {
	ch := l.ch
	if ch == -1 {
		return "", false, "trailing backslash"
	}
	l.next()

	switch ch {
	case 'n':
		return "\n", false, ""
	case 't':
		return "\t", false, ""
	case 'r':
		return "\r", false, ""
	case 'f':
		return "\f", false, ""
	case 'v':
		return "\v", false, ""
	case 'a':
		return "\a", false, ""
	case 'd':
		return digitClass, true, ""
	case 's':
		return spaceClass, true, ""
	case 'w':
		return wordClass, true, ""
	case 'D', 'S', 'W':
		return "", false, "negated character classes are not supported"
	case 'x':
		r, ok := l.scanHex()
		if !ok {
			return "", false, "invalid hex escape"
		}
		return string(r), false, ""
	}
	if ch < utf8.RuneSelf && !isAlnum(byte(ch)) {
		return string(ch), false, ""
	}
	return "", false, "invalid escape \\" + string(ch)
}

// scanHex scans \xHH or \x{H...}.
func (l *Lexer) scanHex() (rune, bool) {
	if l.ch == '{' {
		l.next()
		var r rune
		n := 0
		for l.ch != '}' {
			d, ok := hexValue(l.ch)
			if !ok || n == 6 {
				return 0, false
			}
			r = r*16 + d
			n++
			l.next()
		}
		l.next() // consume }
		if n == 0 || r > utf8.MaxRune {
			return 0, false
		}
		return r, true
	}
	hi, ok := hexValue(l.ch)
	if !ok {
		return 0, false
	}
	l.next()
	lo, ok := hexValue(l.ch)
	if !ok {
		return 0, false
	}
	l.next()
	return hi*16 + lo, true
}

func (l *Lexer) next() {
	if l.offset >= len(l.src) {
		l.ch = -1
		l.pos = l.nextPos
		return
	}

	l.pos = l.nextPos
	r, size := utf8.DecodeRuneInString(l.src[l.offset:])
	l.ch = r
	l.offset += size
	l.nextPos.Column++
	l.nextPos.Offset = l.offset

	if r == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 1
	}
}

// peek returns the character after the current one, or -1 at EOF.
func (l *Lexer) peek() rune {
	if l.offset >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.offset:])
	return r
}

// repeatLen reports whether s, the text after an opening brace, starts
// with "n}", "n,}" or "n,m}", and returns the length before the brace.
func repeatLen(s string) (int, bool) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == 0 {
		return 0, false
	}
	if i < len(s) && s[i] == ',' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && s[i] == '}' {
		return i, true
	}
	return 0, false
}

// classSet collects class members in insertion order.
type classSet struct {
	sb   strings.Builder
	seen map[rune]bool
}

func (c *classSet) add(r rune) {
	if c.seen == nil {
		c.seen = make(map[rune]bool)
	}
	if c.seen[r] {
		return
	}
	c.seen[r] = true
	c.sb.WriteRune(r)
}

func (c *classSet) addString(s string) {
	for _, r := range s {
		c.add(r)
	}
}

func (c *classSet) len() int { return len(c.seen) }

func (c *classSet) String() string { return c.sb.String() }

// Helper functions

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlnum(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func hexValue(ch rune) (rune, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}
