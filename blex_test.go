package blex_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/d4l3k/messagediff"

	"github.com/kolkov/blex"
	"github.com/kolkov/blex/internal/grammar"
)

var (
	a = blex.Char('a')
	b = blex.Char('b')
)

func TestLex(t *testing.T) {
	tests := []struct {
		name    string
		r       blex.Regex
		input   string
		config  *blex.Config
		want    string
		wantErr bool
	}{
		{
			name:  "sequence",
			r:     blex.Seq(a, b),
			input: "ab",
			want:  "Sequ(Chr('a'), Chr('b'))",
		},
		{
			name:  "star",
			r:     blex.Seq(a, blex.Star(b)),
			input: "abb",
			want:  "Sequ(Chr('a'), Stars(Chr('b'), Chr('b')))",
		},
		{
			name:  "empty star",
			r:     blex.Star(a),
			input: "",
			want:  "Stars()",
		},
		{
			name:  "right alternative",
			r:     blex.Alt(a, b),
			input: "b",
			want:  "Right(Chr('b'))",
		},
		{
			name:  "bounded",
			r:     blex.NTimes(blex.Alt(a, b), 3),
			input: "aba",
			want:  "Ntimes(Left(Chr('a')), Right(Chr('b')), Left(Chr('a')))",
		},
		{
			name:  "named",
			r:     blex.Rec("x", blex.Plus(a)),
			input: "aa",
			want:  `Rec("x", Sequ(Chr('a'), Stars(Chr('a'))))`,
		},
		{
			name:  "overlapping alternatives simplified",
			r:     blex.Star(blex.Alt(a, blex.Seq(a, a))),
			input: "aa",
			want:  "Stars(Left(Chr('a')), Left(Chr('a')))",
		},
		{
			name:   "overlapping alternatives unsimplified",
			r:      blex.Star(blex.Alt(a, blex.Seq(a, a))),
			input:  "aa",
			config: &blex.Config{Simplify: boolPtr(false)},
			want:   "Stars(Right(Sequ(Chr('a'), Chr('a'))))",
		},
		{
			name:    "no match",
			r:       blex.Seq(a, b),
			input:   "ax",
			wantErr: true,
		},
		{
			name:    "zero",
			r:       blex.Zero(),
			input:   "",
			wantErr: true,
		},
		{
			name:   "prefilter passes",
			r:      blex.Seq(a, blex.Star(b)),
			input:  "ab",
			config: &blex.Config{Prefilter: true},
			want:   "Sequ(Chr('a'), Stars(Chr('b')))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, err := blex.Compile(tt.r, tt.config)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			got, err := lx.Lex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lex() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.String() != tt.want {
				t.Errorf("Lex() = %s, want %s", got, tt.want)
			}
			if flat := blex.Flatten(got); flat != tt.input {
				t.Errorf("Flatten() = %q, want %q", flat, tt.input)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	r := blex.Star(blex.Alts(
		blex.Rec("n", blex.Plus(blex.Range("0123456789"))),
		blex.Rec("o", blex.Range("+-")),
		blex.Rec("w", blex.Plus(blex.Char(' '))),
	))
	got, err := blex.Tokenize(r, "12 + 3")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []blex.Token{
		{Name: "n", Named: true, Text: "12"},
		{Name: "w", Named: true, Text: " "},
		{Name: "o", Named: true, Text: "+"},
		{Name: "w", Named: true, Text: " "},
		{Name: "n", Named: true, Text: "3"},
	}
	if diff, equal := messagediff.PrettyDiff(want, got); !equal {
		t.Errorf("Tokenize() differs. Diff:\n%s", diff)
	}
}

func TestEnv(t *testing.T) {
	lx := blex.MustCompile(blex.Rec("outer", blex.Seq(blex.Rec("inner", a), b)), nil)
	got, err := lx.Env("ab")
	if err != nil {
		t.Fatalf("Env() error = %v", err)
	}
	want := []blex.Token{
		{Name: "outer", Named: true, Text: "ab"},
		{Name: "inner", Named: true, Text: "a"},
	}
	if diff, equal := messagediff.PrettyDiff(want, got); !equal {
		t.Errorf("Env() differs. Diff:\n%s", diff)
	}

	// Tokenize attributes trailing text to the most recent group.
	toks, err := lx.Tokenize("ab")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(toks) != 2 || toks[1].Name != "inner" || toks[1].Text != "ab" {
		t.Errorf("Tokenize() = %v", toks)
	}
}

func TestBits(t *testing.T) {
	tests := []struct {
		r     blex.Regex
		input string
		want  string
	}{
		{blex.Seq(a, b), "ab", ""},
		{blex.Alt(a, b), "b", "1"},
		{blex.Star(a), "aa", "001"},
		{blex.Star(a), "", "1"},
	}
	for _, tt := range tests {
		got, err := blex.MustCompile(tt.r, nil).Bits(tt.input)
		if err != nil {
			t.Errorf("Bits(%v, %q) error = %v", tt.r, tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Bits(%v, %q) = %q, want %q", tt.r, tt.input, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	r := blex.Seq(blex.Star(a), b)
	for _, cfg := range []*blex.Config{nil, {Prefilter: true}, {Simplify: boolPtr(false)}} {
		lx := blex.MustCompile(r, cfg)
		for _, s := range []string{"b", "ab", "aaab"} {
			if !lx.Match(s) {
				t.Errorf("Match(%q) = false with %+v", s, cfg)
			}
		}
		for _, s := range []string{"", "a", "ba", "abx"} {
			if lx.Match(s) {
				t.Errorf("Match(%q) = true with %+v", s, cfg)
			}
		}
	}
	if blex.Match(blex.NTimes(a, -1), "") {
		t.Error("invalid regex should match nothing")
	}
}

func TestLexError(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		config *blex.Config
		offset int
	}{
		{"bad character", "abx", nil, 2},
		{"too short", "ab", nil, 2},
		{"first character", "xabc", nil, 0},
		{"prefilter alphabet", "xabc", &blex.Config{Prefilter: true}, -1},
		{"prefilter literal", "abab", &blex.Config{Prefilter: true}, -1},
	}
	r := blex.Literal("abc")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := blex.MustCompile(r, tt.config).Lex(tt.input)
			if !errors.Is(err, blex.ErrNoMatch) {
				t.Fatalf("error = %v, want ErrNoMatch", err)
			}
			off, ok := blex.IsNoMatch(err)
			if !ok {
				t.Fatalf("expected *LexError, got %T", err)
			}
			if off != tt.offset {
				t.Errorf("offset = %d, want %d", off, tt.offset)
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	_, err := blex.Compile(blex.NTimes(a, -2), nil)
	if err == nil {
		t.Fatal("expected error for negative bound")
	}
	if _, ok := err.(*blex.CompileError); !ok {
		t.Errorf("expected *CompileError, got %T", err)
	}
}

func TestMustCompile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCompile() should panic on invalid regex")
		}
	}()

	_ = blex.MustCompile(blex.Rec("x", nil), nil)
}

func TestParse(t *testing.T) {
	r, err := blex.Parse(`((?P<n>[0-9]+)|(?P<o>[+-])|(?P<w> +))*`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	toks, err := blex.Tokenize(r, "12 + 3")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	var names []string
	for _, tok := range toks {
		names = append(names, tok.Name)
	}
	if got := strings.Join(names, " "); got != "n w o w n" {
		t.Errorf("token names = %q, want %q", got, "n w o w n")
	}

	_, err = blex.Parse("ab(c")
	pe, ok := err.(*blex.ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Line != 1 || pe.Column != 3 {
		t.Errorf("position = %d:%d, want 1:3", pe.Line, pe.Column)
	}
}

func TestMustParse(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParse() should panic on invalid pattern")
		}
	}()
	_ = blex.MustParse("a{2,1}")
}

func TestNormalize(t *testing.T) {
	r := blex.Literal("caf\u00e9")
	decomposed := "cafe\u0301"

	if blex.Match(r, decomposed) {
		t.Error("decomposed input should not match without normalization")
	}
	lx := blex.MustCompile(r, &blex.Config{Normalize: true})
	v, err := lx.Lex(decomposed)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	if got := blex.Flatten(v); got != "caf\u00e9" {
		t.Errorf("Flatten() = %q, want NFC form", got)
	}
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	lx := blex.MustCompile(blex.Seq(a, b), &blex.Config{Trace: &buf})
	if _, err := lx.Lex("ab"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"=== fold ===", "accepted bits="} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestLexerAccessors(t *testing.T) {
	r := blex.Seq(blex.Rec("x", a), blex.Rec("y", blex.Star(b)))
	lx := blex.MustCompile(r, nil)
	if diff, equal := messagediff.PrettyDiff([]string{"x", "y"}, lx.Names()); !equal {
		t.Errorf("Names() differs. Diff:\n%s", diff)
	}
	if lx.Size() != 6 {
		t.Errorf("Size() = %d, want 6", lx.Size())
	}
	if lx.Regex() != r {
		t.Error("Regex() does not return the compiled regex")
	}
	if lx.String() != blex.Pattern(r) {
		t.Errorf("String() = %q, Pattern() = %q", lx.String(), blex.Pattern(r))
	}
	if cfg := lx.Config(); cfg.Simplify == nil || !*cfg.Simplify {
		t.Error("Config() should default Simplify to true")
	}
}

func TestCachedResults(t *testing.T) {
	lx := blex.MustCompile(blex.Star(blex.Rec("a", a)), &blex.Config{CacheSize: 2})
	for i := 0; i < 3; i++ {
		toks, err := lx.Tokenize("aa")
		if err != nil {
			t.Fatal(err)
		}
		if len(toks) != 2 {
			t.Errorf("run %d: got %d tokens, want 2", i, len(toks))
		}
		if _, err := lx.Lex("ab"); !errors.Is(err, blex.ErrNoMatch) {
			t.Errorf("run %d: cached failure lost: %v", i, err)
		}
	}
}

func TestCachedResultsAreCopies(t *testing.T) {
	lx := blex.MustCompile(blex.Seq(blex.Rec("x", a), blex.Star(blex.Rec("y", b))), &blex.Config{CacheSize: 8})

	for i := 0; i < 2; i++ {
		toks, err := lx.Tokenize("ab")
		if err != nil {
			t.Fatal(err)
		}
		toks[0].Text = "changed"

		v, err := lx.Lex("ab")
		if err != nil {
			t.Fatal(err)
		}
		v.(blex.Sequ).Second.(blex.Stars).Vs[0] = blex.Chr{C: 'z'}
	}

	toks, err := lx.Tokenize("ab")
	if err != nil {
		t.Fatal(err)
	}
	want := []blex.Token{{Name: "x", Named: true, Text: "a"}, {Name: "y", Named: true, Text: "b"}}
	if diff, equal := messagediff.PrettyDiff(want, toks); !equal {
		t.Errorf("cached Tokenize result was modified. Diff:\n%s", diff)
	}
	v, err := lx.Lex("ab")
	if err != nil {
		t.Fatal(err)
	}
	if got := blex.Flatten(v); got != "ab" {
		t.Errorf("cached Lex result was modified: Flatten = %q", got)
	}
}

func TestPrefilterKeepsInvalidUTF8(t *testing.T) {
	r := blex.Seq(blex.Rec("x", a), blex.Star(blex.Char('\uFFFD')))
	plain := blex.MustCompile(r, nil)
	filtered := blex.MustCompile(r, &blex.Config{Prefilter: true})

	for _, s := range []string{"a\xff", "a\xff\xfe", "b\xff", "a"} {
		if got, want := filtered.Match(s), plain.Match(s); got != want {
			t.Errorf("Match(%q) with prefilter = %v, without = %v", s, got, want)
		}
	}
	if _, err := filtered.Tokenize("a\xff"); err != nil {
		t.Errorf("Tokenize with prefilter: %v", err)
	}
}

func TestWhileLexer(t *testing.T) {
	lx := blex.MustCompile(grammar.While(), &blex.Config{Prefilter: true, CacheSize: 16})
	toks, err := lx.Tokenize(grammar.FibProgram)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(tok.Text)
	}
	if sb.String() != grammar.FibProgram {
		t.Error("tokens do not join back to the program")
	}
}

func TestConcurrentUse(t *testing.T) {
	lx := blex.MustCompile(grammar.While(), &blex.Config{CacheSize: 8})
	inputs := []string{"if x then y := 1 else skip", "while n > 0 do n := n - 1", "write \"done\""}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				s := inputs[(g+i)%len(inputs)]
				v, err := lx.Lex(s)
				if err != nil {
					t.Errorf("Lex(%q) error = %v", s, err)
					return
				}
				if blex.Flatten(v) != s {
					t.Errorf("Flatten(Lex(%q)) = %q", s, blex.Flatten(v))
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

func boolPtr(b bool) *bool { return &b }

// Benchmark tests
func BenchmarkTokenize(b *testing.B) {
	src := grammar.FibProgram
	for i := 0; i < b.N; i++ {
		_, _ = blex.Tokenize(grammar.While(), src)
	}
}

func BenchmarkCompiledTokenize(b *testing.B) {
	lx := blex.MustCompile(grammar.While(), nil)
	src := grammar.FibProgram
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = lx.Tokenize(src)
	}
}

// Example functions for documentation
func ExampleLex() {
	v, _ := blex.Lex(blex.Seq(blex.Char('a'), blex.Star(blex.Char('b'))), "abb")
	fmt.Println(v)
	// Output: Sequ(Chr('a'), Stars(Chr('b'), Chr('b')))
}

func ExampleTokenize() {
	digits := blex.Rec("n", blex.Plus(blex.Range("0123456789")))
	space := blex.Rec("w", blex.Char(' '))
	toks, _ := blex.Tokenize(blex.Star(blex.Alt(digits, space)), "12 3")
	for _, tok := range toks {
		fmt.Printf("%s %q\n", tok.Name, tok.Text)
	}
	// Output:
	// n "12"
	// w " "
	// n "3"
}

func ExampleParse() {
	r := blex.MustParse(`((?P<k>if|then)|(?P<i>[a-z]+)|(?P<w> ))*`)
	toks, _ := blex.Tokenize(r, "if x")
	for _, tok := range toks {
		fmt.Printf("%s %q\n", tok.Name, tok.Text)
	}
	// Output:
	// k "if"
	// w " "
	// i "x"
}

func ExampleIsNoMatch() {
	_, err := blex.Lex(blex.Literal("abc"), "abx")
	if off, ok := blex.IsNoMatch(err); ok {
		fmt.Println("no match at", off)
	}
	// Output: no match at 2
}
