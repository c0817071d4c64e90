// Package runtime provides the fast-reject pass that runs before derivative
// matching: literal and alphabet checks derived from the regex tree, and an
// anchored coregex program compiled from the rendered pattern.
package runtime

import (
	"unicode/utf8"

	"github.com/coregx/coregex"

	"github.com/kolkov/blex/internal/regex"
)

// Config controls prefilter construction.
type Config struct {
	// Regexp enables the compiled coregex leg. Literal and alphabet checks
	// always run.
	Regexp bool
}

// DefaultConfig returns the default configuration with every check enabled.
// The zero Config runs only the literal and alphabet checks.
func DefaultConfig() Config {
	return Config{Regexp: true}
}

// Prefilter rejects inputs that cannot be in a regex's language without
// running the derivative loop. It never rejects a string the regex matches.
// Safe for concurrent use.
type Prefilter struct {
	pattern  string
	re       *coregex.Regexp // nil when the pattern could not be compiled
	literals *LiteralInfo    // nil when no literals were found
	alphabet *ByteSet
}

// New builds the prefilter for r.
//
// The coregex leg is skipped when the tree contains ZERO, which renders as an
// empty character class, or when the rendered pattern does not compile
// (bounded repetitions above the engine's repeat limit). The other checks
// still apply.
func New(r regex.Regex, config Config) *Prefilter {
	p := &Prefilter{
		pattern:  "^(?:" + regex.Pattern(r) + ")$",
		literals: extractLiterals(r),
		alphabet: alphabetOf(r),
	}
	if config.Regexp && !hasZero(r) {
		if re, err := coregex.Compile(p.pattern); err == nil {
			re.Longest() // POSIX leftmost-longest
			p.re = re
		}
	}
	return p
}

func hasZero(r regex.Regex) bool {
	found := false
	regex.Walk(r, func(n regex.Regex) bool {
		if _, ok := n.(regex.Zero); ok {
			found = true
		}
		return !found
	})
	return found
}

// Pattern returns the anchored pattern the coregex leg was built from.
func (p *Prefilter) Pattern() string {
	return p.pattern
}

// HasRegexp reports whether the coregex leg is active.
func (p *Prefilter) HasRegexp() bool {
	return p.re != nil
}

// Literals returns the literal constraints, or nil.
func (p *Prefilter) Literals() *LiteralInfo {
	return p.literals
}

// Reject reports whether s definitely cannot match.
// Input that is not valid UTF-8 is never rejected: the matcher reads each
// invalid byte as U+FFFD, which none of the byte-level checks model.
func (p *Prefilter) Reject(s string) bool {
	reject := p.reject(s)
	if reject {
		metricRejects.Inc()
	} else {
		metricPasses.Inc()
	}
	return reject
}

func (p *Prefilter) reject(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}

	// Fast path 1: alphabet scan
	if p.alphabet.CanReject(s) {
		return true
	}

	// Fast path 2: literal prefix, suffix and required substrings
	if p.literals != nil && p.literals.CanReject(s) {
		return true
	}

	// Full anchored match
	if p.re != nil {
		return !p.re.MatchString(s)
	}
	return false
}
