package grammar

import (
	"strings"

	"github.com/kolkov/blex/internal/regex"
)

// Pattern is a parameterized benchmark case: a regex and a matching (or
// deliberately failing) input, both sized by n.
type Pattern struct {
	Name  string
	Regex func(n int) regex.Regex
	Input func(n int) string
}

var (
	charA = regex.Char{C: 'a'}
	charB = regex.Char{C: 'b'}
)

func repeatA(n int) string { return strings.Repeat("a", n) }

// Patterns lists the timing cases: inputs that are known to make
// backtracking matchers blow up, plus the WHILE programs repeated n times.
var Patterns = []Pattern{
	{
		// Never matches: the input lacks the final b.
		Name: "(a*)*b",
		Regex: func(int) regex.Regex {
			return regex.Rec{Name: "(a*)*b", Body: regex.Seq{First: regex.Star{Body: regex.Star{Body: charA}}, Second: charB}}
		},
		Input: repeatA,
	},
	{
		Name: "(1+a){n}(a){n}",
		Regex: func(n int) regex.Regex {
			return regex.Rec{Name: "(1+a){n}(a){n}", Body: regex.Seq{
				First:  regex.NTimes{Body: regex.Opt(charA), N: n},
				Second: regex.NTimes{Body: charA, N: n},
			}}
		},
		Input: repeatA,
	},
	{
		Name: "(a+aa)*",
		Regex: func(int) regex.Regex {
			return regex.Rec{Name: "(a+aa)*", Body: regex.Star{Body: regex.Alt{Left: charA, Right: regex.Seq{First: charA, Second: charA}}}}
		},
		Input: repeatA,
	},
	{
		// Never matches: the input lacks the final b.
		Name: "(((a+)(a+))+)b",
		Regex: func(int) regex.Regex {
			return regex.Rec{Name: "triplePlus", Body: regex.Seq{
				First:  regex.Plus(regex.Seq{First: regex.Plus(charA), Second: regex.Plus(charA)}),
				Second: charB,
			}}
		},
		Input: repeatA,
	},
	{
		Name:  "while-fib",
		Regex: func(int) regex.Regex { return While() },
		Input: func(n int) string { return repeatProgram(FibProgram, n) },
	},
	{
		Name:  "while-factorial",
		Regex: func(int) regex.Regex { return While() },
		Input: func(n int) string { return repeatProgram(FactorialProgram, n) },
	},
}

// repeatProgram joins max(n, 1) copies of prog with newlines.
func repeatProgram(prog string, n int) string {
	if n < 1 {
		n = 1
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = prog
	}
	return strings.Join(parts, "\n")
}

// LookupPattern returns the benchmark pattern with the given name.
func LookupPattern(name string) (Pattern, bool) {
	for _, p := range Patterns {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}
