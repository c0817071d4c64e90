package blex

import (
	"errors"

	"github.com/kolkov/blex/internal/engine"
	"github.com/kolkov/blex/internal/parser"
	"github.com/kolkov/blex/internal/regex"
	"github.com/kolkov/blex/internal/runtime"
)

// Version is the blex version string.
const Version = "0.1.0"

// prefilters is shared by every Lexer so that recompiling the same regex
// does not rebuild its prefilter.
var prefilters = runtime.NewCache(64, runtime.DefaultConfig())

// Lex matches input against r and returns the POSIX value tree.
// This is a convenience function for one-off matching.
// For repeated matching with the same regex, use Compile followed by Lexer.Lex.
//
// Example:
//
//	v, err := blex.Lex(blex.Seq(blex.Char('a'), blex.Char('b')), "ab")
//	// v: Sequ(Chr('a'), Chr('b'))
func Lex(r Regex, input string) (Value, error) {
	lx, err := Compile(r, nil)
	if err != nil {
		return nil, err
	}
	return lx.Lex(input)
}

// Tokenize matches input against r and returns the text of each named group
// in input order.
//
// Example:
//
//	toks, err := blex.Tokenize(blex.Seq(blex.Rec("x", blex.Char('a')), blex.Rec("y", blex.Char('b'))), "ab")
//	// toks: [{x a} {y b}]
func Tokenize(r Regex, input string) ([]Token, error) {
	lx, err := Compile(r, nil)
	if err != nil {
		return nil, err
	}
	return lx.Tokenize(input)
}

// Match reports whether the whole of input is in the language of r.
// An invalid regex matches nothing.
func Match(r Regex, input string) bool {
	lx, err := Compile(r, nil)
	if err != nil {
		return false
	}
	return lx.Match(input)
}

// Compile validates r and prepares it for matching.
// The returned Lexer can be used many times, from multiple goroutines.
// If config is nil, default configuration is used.
//
// Example:
//
//	lx, err := blex.Compile(grammar, &blex.Config{CacheSize: 128})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	toks1, _ := lx.Tokenize(src1)
//	toks2, _ := lx.Tokenize(src2)
func Compile(r Regex, config *Config) (*Lexer, error) {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()

	prog, err := engine.NewProgram(r)
	if err != nil {
		return nil, &CompileError{Message: err.Error()}
	}

	lx := &Lexer{
		prog:   prog,
		config: cfg,
		engine: engine.Config{
			Simplify: *cfg.Simplify,
			Logger:   engine.NewLogger(cfg.Trace),
		},
	}
	if cfg.Prefilter {
		lx.prefilter = prefilters.Get(r)
	}
	if cfg.CacheSize > 0 {
		lx.results = newResultCache(cfg.CacheSize)
	}
	return lx, nil
}

// MustCompile is like Compile but panics if the regex is invalid.
// It simplifies initialization of global lexer variables.
//
// Example:
//
//	var whileLexer = blex.MustCompile(whileGrammar, nil)
func MustCompile(r Regex, config *Config) *Lexer {
	lx, err := Compile(r, config)
	if err != nil {
		panic(err)
	}
	return lx
}

// Parse parses a pattern written in the RE2 subset that has a meaning for
// whole-input matching: literals, escapes, classes such as [a-z] and \d,
// groups, alternation and the repetition operators * + ? {n} {n,} {n,m}.
// Named groups (?P<name>...) become Rec nodes.
//
// Example:
//
//	r, err := blex.Parse(`((?P<k>if|then)|(?P<i>[a-z]+)|(?P<w> +))*`)
func Parse(pattern string) (Regex, error) {
	r, err := parser.Parse(pattern)
	if err != nil {
		var pe *parser.Error
		if errors.As(err, &pe) {
			return nil, &ParseError{
				Line:    pe.Pos.Line,
				Column:  pe.Pos.Column,
				Message: pe.Message,
			}
		}
		return nil, &ParseError{Message: err.Error()}
	}
	return r, nil
}

// MustParse is like Parse but panics if the pattern is invalid.
func MustParse(pattern string) Regex {
	r, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern renders r in RE2 syntax. Named groups become non-capturing groups.
func Pattern(r Regex) string {
	return regex.Pattern(r)
}
