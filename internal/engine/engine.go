// Package engine drives bitcoded derivative matching: it folds an input
// string through Derive and Simplify one character at a time, then turns the
// empty-match witness of the final residual into a value tree or a token list.
//
// The loop is iterative, so input length does not grow the call stack.
// Programs are immutable and may be shared between goroutines; each run
// threads its own residual.
package engine

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/kolkov/blex/internal/arexp"
	"github.com/kolkov/blex/internal/bitcode"
	"github.com/kolkov/blex/internal/decode"
	"github.com/kolkov/blex/internal/regex"
	"github.com/kolkov/blex/internal/value"
)

// Config controls a single run.
type Config struct {
	// Simplify runs Simplify after every derivative step.
	// Disabling it never changes acceptance, only residual size and speed.
	Simplify bool

	// Logger receives per-step trace lines. Nil disables tracing.
	Logger *Logger
}

// DefaultConfig returns the configuration used by the package-level helpers.
func DefaultConfig() Config {
	return Config{Simplify: true}
}

// ErrNoMatch is wrapped by every *MatchError.
var ErrNoMatch = errors.New("no match")

// MatchError reports that the whole input is not in the language.
type MatchError struct {
	// Offset is the rune index of the character that left nothing to match,
	// or the input length when the input ran out first.
	Offset int
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("no match at offset %d", e.Offset)
}

func (e *MatchError) Unwrap() error { return ErrNoMatch }

// Program is a regex prepared for matching.
type Program struct {
	Regex regex.Regex
	Start arexp.ARexp
}

// NewProgram validates r and internalizes it.
func NewProgram(r regex.Regex) (*Program, error) {
	if err := regex.Validate(r); err != nil {
		return nil, err
	}
	return &Program{Regex: r, Start: arexp.Internalize(r)}, nil
}

// Result is the outcome of folding an input through a program.
type Result struct {
	Residual arexp.ARexp
	Steps    int // derivative steps taken
	Length   int // input length in runes
	Dead     int // rune index where the residual became ZERO, or -1
}

// Nullable reports whether the input was accepted.
func (r Result) Nullable() bool {
	return arexp.Nullable(r.Residual)
}

// Offset returns the position to report when the input was rejected.
func (r Result) Offset() int {
	if r.Dead >= 0 {
		return r.Dead
	}
	return r.Length
}

// Fold derives the start expression by every character of input in order.
// It stops early once the residual is ZERO, since nothing can follow.
func (p *Program) Fold(input string, cfg Config) Result {
	log := cfg.Logger
	log.Section("fold")
	log.Log("start size=%d", arexp.Size(p.Start))

	res := Result{
		Residual: p.Start,
		Length:   utf8.RuneCountInString(input),
		Dead:     -1,
	}
	r := p.Start
	i := 0
	for _, c := range input {
		r = arexp.Derive(c, r)
		if cfg.Simplify {
			r = arexp.Simplify(r)
		}
		res.Steps++
		if log.Enabled() {
			log.Log("%4d %q size=%d", i, c, arexp.Size(r))
		}
		if arexp.IsZero(r) {
			res.Dead = i
			break
		}
		i++
	}
	res.Residual = r
	if log.Enabled() {
		log.Log("residual %s", regex.Pattern(arexp.Erase(r)))
	}

	metricSteps.Add(float64(res.Steps))
	metricResidualSize.Observe(float64(arexp.Size(r)))
	return res
}

// Bits folds input and returns the empty-match witness of the residual:
// the complete bit sequence describing how the regex matched input.
func (p *Program) Bits(input string, cfg Config) (bitcode.Bits, error) {
	res := p.Fold(input, cfg)
	if !res.Nullable() {
		cfg.Logger.Log("rejected at offset %d", res.Offset())
		return bitcode.Bits{}, &MatchError{Offset: res.Offset()}
	}
	bits := arexp.Mkeps(res.Residual)
	cfg.Logger.Log("accepted bits=%s", bits)
	return bits, nil
}

// Match reports whether input is in the language of the program.
func (p *Program) Match(input string, cfg Config) bool {
	ok := p.Fold(input, cfg).Nullable()
	if ok {
		metricRuns.WithLabelValues(opMatch, resultOK).Inc()
	} else {
		metricRuns.WithLabelValues(opMatch, resultNoMatch).Inc()
	}
	return ok
}

// Lex matches input and decodes the full value tree.
func (p *Program) Lex(input string, cfg Config) (value.Value, error) {
	bits, err := p.Bits(input, cfg)
	if err != nil {
		metricRuns.WithLabelValues(opLex, resultNoMatch).Inc()
		return nil, err
	}
	v, err := decode.Decode(p.Regex, bits)
	if err != nil {
		metricRuns.WithLabelValues(opLex, resultError).Inc()
		return nil, fmt.Errorf("engine: %w", err)
	}
	metricRuns.WithLabelValues(opLex, resultOK).Inc()
	return v, nil
}

// Tokenize matches input and decodes it straight into named tokens.
func (p *Program) Tokenize(input string, cfg Config) ([]decode.Token, error) {
	bits, err := p.Bits(input, cfg)
	if err != nil {
		metricRuns.WithLabelValues(opTokenize, resultNoMatch).Inc()
		return nil, err
	}
	toks, err := decode.Stream(p.Regex, bits)
	if err != nil {
		metricRuns.WithLabelValues(opTokenize, resultError).Inc()
		return nil, fmt.Errorf("engine: %w", err)
	}
	metricRuns.WithLabelValues(opTokenize, resultOK).Inc()
	return toks, nil
}

// Fold internalizes r and derives it by every character of s, simplifying
// after each step.
func Fold(r regex.Regex, s string) arexp.ARexp {
	p := &Program{Regex: r, Start: arexp.Internalize(r)}
	return p.Fold(s, DefaultConfig()).Residual
}

// Lex matches s against r and returns the POSIX value.
func Lex(r regex.Regex, s string) (value.Value, error) {
	p, err := NewProgram(r)
	if err != nil {
		return nil, err
	}
	return p.Lex(s, DefaultConfig())
}

// Tokenize matches s against r and returns the named tokens.
func Tokenize(r regex.Regex, s string) ([]decode.Token, error) {
	p, err := NewProgram(r)
	if err != nil {
		return nil, err
	}
	return p.Tokenize(s, DefaultConfig())
}
