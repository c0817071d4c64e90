package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/d4l3k/messagediff"

	"github.com/kolkov/blex/internal/decode"
	"github.com/kolkov/blex/internal/engine"
	"github.com/kolkov/blex/internal/regex"
	"github.com/kolkov/blex/internal/value"
)

func TestWhileNames(t *testing.T) {
	want := []string{"k", "i", "o", "n", "s", "str", "p", "w"}
	if diff, equal := messagediff.PrettyDiff(want, regex.Names(While())); !equal {
		t.Errorf("Names differ. Diff:\n%s", diff)
	}
	if err := regex.Validate(While()); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestWhileYAMLMatchesBuiltin(t *testing.T) {
	r, doc, err := Load("testdata/while.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "while" {
		t.Errorf("Name = %q", doc.Name)
	}
	if !regex.Equal(r, While()) {
		t.Errorf("loaded grammar differs from While():\n%v\n%v", r, While())
	}
}

func TestWhileTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []decode.Token
	}{
		{"while", []decode.Token{{Name: "k", Named: true, Text: "while"}}},
		{"123", []decode.Token{{Name: "n", Named: true, Text: "123"}}},
		{"abc", []decode.Token{{Name: "i", Named: true, Text: "abc"}}},
		{" \n\t", []decode.Token{{Name: "w", Named: true, Text: " \n\t"}}},
		{"(", []decode.Token{{Name: "p", Named: true, Text: "("}}},
		{`"abc"`, []decode.Token{{Name: "str", Named: true, Text: `"abc"`}}},
		{"read n", []decode.Token{
			{Name: "k", Named: true, Text: "read"},
			{Name: "w", Named: true, Text: " "},
			{Name: "i", Named: true, Text: "n"},
		}},
		{"", nil},
	}

	p, err := engine.NewProgram(While())
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := p.Tokenize(tt.input, engine.DefaultConfig())
			if err != nil {
				t.Fatalf("Tokenize(%q): %v", tt.input, err)
			}
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if diff, equal := messagediff.PrettyDiff(tt.want, got); !equal {
				t.Errorf("Tokenize(%q) differs. Diff:\n%s", tt.input, diff)
			}
		})
	}

	if _, err := p.Tokenize("x ? y", engine.DefaultConfig()); !errors.Is(err, engine.ErrNoMatch) {
		t.Errorf("Tokenize with '?' error = %v, want ErrNoMatch", err)
	}
}

func TestWhilePrograms(t *testing.T) {
	names := map[string]bool{}
	for _, n := range regex.Names(While()) {
		names[n] = true
	}
	p, err := engine.NewProgram(While())
	if err != nil {
		t.Fatal(err)
	}

	for name, prog := range map[string]string{"fib": FibProgram, "factorial": FactorialProgram} {
		t.Run(name, func(t *testing.T) {
			toks, err := p.Tokenize(prog, engine.DefaultConfig())
			if err != nil {
				t.Fatalf("Tokenize: %v", err)
			}
			var sb strings.Builder
			for _, tok := range toks {
				if !names[tok.Name] {
					t.Errorf("unexpected token name %q", tok.Name)
				}
				sb.WriteString(tok.Text)
			}
			if sb.String() != prog {
				t.Errorf("tokens do not cover the program:\n%s", sb.String())
			}

			v, err := p.Lex(prog, engine.DefaultConfig())
			if err != nil {
				t.Fatalf("Lex: %v", err)
			}
			if value.Flatten(v) != prog {
				t.Error("Flatten(Lex) differs from the program")
			}

			// No text falls outside a group, so both decoders agree.
			env := value.Env(v)
			if len(env) != len(toks) {
				t.Fatalf("Env has %d bindings, Tokenize has %d tokens", len(env), len(toks))
			}
			for i := range env {
				if env[i].Name != toks[i].Name || env[i].Text != toks[i].Text {
					t.Errorf("token %d: Env %v, Tokenize %v", i, env[i], toks[i])
				}
			}
		})
	}
}

func TestLoadOnce(t *testing.T) {
	r, doc, err := Load("testdata/keywords.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !doc.Once {
		t.Error("Once = false")
	}
	if _, ok := r.(regex.Alt); !ok {
		t.Fatalf("once grammar is %T, want a bare alternation", r)
	}

	tests := []struct {
		input string
		name  string
	}{
		{"then", "kw"},
		{"thence", "id"},
		{"x", "id"},
	}
	for _, tt := range tests {
		toks, err := engine.Tokenize(r, tt.input)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", tt.input, err)
		}
		if len(toks) != 1 || toks[0].Name != tt.name || toks[0].Text != tt.input {
			t.Errorf("Tokenize(%q) = %v, want one %s token", tt.input, toks, tt.name)
		}
	}
	if _, err := engine.Tokenize(r, "if then"); !errors.Is(err, engine.ErrNoMatch) {
		t.Errorf("two tokens under once: error = %v, want ErrNoMatch", err)
	}
}

func TestParse(t *testing.T) {
	r, _, err := Parse([]byte(`
tokens:
  - name: x
    ntimes: {n: 2, of: {char: "a"}}
  - name: y
    seq: [{one: true}, {opt: {named: {name: inner, of: {lit: "bc"}}}}]
`))
	if err != nil {
		t.Fatal(err)
	}
	want := regex.Star{Body: regex.Alt{
		Left: regex.Rec{Name: "x", Body: regex.NTimes{Body: regex.Char{C: 'a'}, N: 2}},
		Right: regex.Rec{Name: "y", Body: regex.Seq{
			First:  regex.One{},
			Second: regex.Opt(regex.Rec{Name: "inner", Body: regex.Literal("bc")}),
		}},
	}}
	if !regex.Equal(r, want) {
		t.Errorf("Parse =\n%v\nwant\n%v", r, want)
	}
}

func TestParsePatternNodes(t *testing.T) {
	r, _, err := Parse([]byte(`
once: true
defs:
  letter: {re: "[a-c]"}
tokens:
  - name: kw
    re: "if|then"
  - name: id
    seq: [{ref: letter}, {re: "[a-c0-9]*"}]
`))
	if err != nil {
		t.Fatal(err)
	}
	want := regex.Alt{
		Left: regex.Rec{Name: "kw", Body: regex.Alt{Left: regex.Literal("if"), Right: regex.Literal("then")}},
		Right: regex.Rec{Name: "id", Body: regex.Seq{
			First:  regex.Range("abc"),
			Second: regex.Star{Body: regex.Range("abc0123456789")},
		}},
	}
	if !regex.Equal(r, want) {
		t.Errorf("Parse =\n%v\nwant\n%v", r, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{"no tokens", "name: empty\n", "tokens"},
		{"unnamed token", "tokens:\n  - lit: a\n", "tokens[0]"},
		{"empty node", "tokens:\n  - name: a\n", "tokens[0]"},
		{"two fields", "tokens:\n  - name: a\n    lit: a\n    char: b\n", "tokens[0]"},
		{"long char", "tokens:\n  - name: a\n    char: ab\n", "tokens[0].char"},
		{"empty range", "tokens:\n  - name: a\n    range: \"\"\n", "tokens[0].range"},
		{"empty seq", "tokens:\n  - name: a\n    seq: []\n", "tokens[0].seq"},
		{"negative count", "tokens:\n  - name: a\n    ntimes: {n: -1, of: {char: a}}\n", "tokens[0].ntimes.n"},
		{"nested error", "tokens:\n  - name: a\n    alt: [{lit: x}, {star: {}}]\n", "tokens[0].alt[1].star"},
		{"undefined ref", "tokens:\n  - name: a\n    ref: NOPE\n", "tokens[0].ref"},
		{"recursive ref", "defs:\n  A: {star: {ref: A}}\ntokens:\n  - name: a\n    ref: A\n", "defs.A.star.ref"},
		{"bad pattern", "tokens:\n  - name: a\n    re: \"(a\"\n", "tokens[0].re"},
		{"unknown field", "tokens:\n  - name: a\n    litt: x\n", ""},
		{"not yaml", "tokens: [", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse([]byte(tt.doc))
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("Parse error = %v, want *LoadError", err)
			}
			if le.Path != tt.path {
				t.Errorf("Path = %q, want %q (%v)", le.Path, tt.path, err)
			}
		})
	}
}

func TestPatterns(t *testing.T) {
	wantMatch := map[string]bool{
		"(a*)*b":          false,
		"(1+a){n}(a){n}":  true,
		"(a+aa)*":         true,
		"(((a+)(a+))+)b":  false,
		"while-fib":       true,
		"while-factorial": true,
	}
	for _, pat := range Patterns {
		t.Run(pat.Name, func(t *testing.T) {
			want, ok := wantMatch[pat.Name]
			if !ok {
				t.Fatalf("no expectation for %q", pat.Name)
			}
			p, err := engine.NewProgram(pat.Regex(6))
			if err != nil {
				t.Fatal(err)
			}
			if got := p.Match(pat.Input(6), engine.DefaultConfig()); got != want {
				t.Errorf("Match = %v, want %v", got, want)
			}
			if _, ok := LookupPattern(pat.Name); !ok {
				t.Error("LookupPattern failed")
			}
		})
	}
	if _, ok := LookupPattern("nope"); ok {
		t.Error("LookupPattern(nope) succeeded")
	}
}
