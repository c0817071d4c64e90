package runtime

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kolkov/blex/internal/regex"
)

func TestNew(t *testing.T) {
	p := New(regex.Literal("hello"), DefaultConfig())
	if p.Pattern() != "^(?:hello)$" {
		t.Errorf("Pattern() = %q", p.Pattern())
	}
	if !p.HasRegexp() {
		t.Error("HasRegexp() = false, want true")
	}
	if p.Literals() == nil || p.Literals().Prefix != "hello" {
		t.Errorf("Literals() = %+v", p.Literals())
	}

	if New(regex.Literal("hello"), Config{}).HasRegexp() {
		t.Error("zero Config compiled a regexp")
	}
	if New(regex.Alt{Left: regex.Char{C: 'a'}, Right: regex.Zero{}}, DefaultConfig()).HasRegexp() {
		t.Error("regexp compiled for a tree containing ZERO")
	}
}

func TestReject(t *testing.T) {
	word := regex.Plus(regex.Range("abcdefghijklmnopqrstuvwxyz"))
	tests := []struct {
		name   string
		r      regex.Regex
		config Config
		input  string
		want   bool
	}{
		{"exact match", regex.Literal("hello"), DefaultConfig(), "hello", false},
		{"too short", regex.Literal("hello"), DefaultConfig(), "hell", true},
		{"foreign byte", regex.Literal("hello"), DefaultConfig(), "hello!", true},
		{"unanchored match is not enough", word, DefaultConfig(), "abc def", true},
		{"word", word, DefaultConfig(), "abcdef", false},
		{"empty against plus", word, DefaultConfig(), "", true},
		{"literals only still checks alphabet", regex.Seqs(regex.Char{C: 'a'}, regex.Star{Body: regex.Char{C: 'b'}}, regex.Char{C: 'a'}), Config{}, "abab a", true},
		{"literals only passes", regex.Seqs(regex.Char{C: 'a'}, regex.Star{Body: regex.Char{C: 'b'}}, regex.Char{C: 'a'}), Config{}, "abbba", false},
		{"zero tree with known letter", regex.Alt{Left: regex.Char{C: 'a'}, Right: regex.Zero{}}, DefaultConfig(), "a", false},
		{"zero tree with unknown letter", regex.Alt{Left: regex.Char{C: 'a'}, Right: regex.Zero{}}, DefaultConfig(), "b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.r, tt.config)
			if got := p.Reject(tt.input); got != tt.want {
				t.Errorf("Reject(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRejectLargeBound(t *testing.T) {
	p := New(regex.NTimes{Body: regex.Char{C: 'a'}, N: 2000}, DefaultConfig())
	if p.Reject(strings.Repeat("a", 2000)) {
		t.Error("rejected a matching input")
	}
	if !p.Reject(strings.Repeat("a", 1999)) {
		t.Error("accepted a short input")
	}
}

func randomRegex(rng *rand.Rand, depth int) regex.Regex {
	if depth == 0 {
		switch rng.Intn(5) {
		case 0:
			return regex.One{}
		case 1:
			return regex.Char{C: 'b'}
		case 2:
			return regex.Char{C: 'c'}
		default:
			return regex.Char{C: 'a'}
		}
	}
	switch rng.Intn(7) {
	case 0:
		return regex.Alt{Left: randomRegex(rng, depth-1), Right: randomRegex(rng, depth-1)}
	case 1, 2:
		return regex.Seq{First: randomRegex(rng, depth-1), Second: randomRegex(rng, depth-1)}
	case 3:
		return regex.Star{Body: randomRegex(rng, depth-1)}
	case 4:
		return regex.NTimes{Body: randomRegex(rng, depth-1), N: rng.Intn(3)}
	case 5:
		return regex.Rec{Name: "t", Body: randomRegex(rng, depth-1)}
	default:
		return randomRegex(rng, 0)
	}
}

// A prefilter must never reject a string the regex matches.
func TestRejectIsSound(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 300; i++ {
		r := randomRegex(rng, 4)
		re := regexp.MustCompile(`^(?:` + regex.Pattern(r) + `)$`)
		p := New(r, DefaultConfig())
		lp := New(r, Config{})
		for j := 0; j < 30; j++ {
			n := rng.Intn(8)
			var sb strings.Builder
			for k := 0; k < n; k++ {
				sb.WriteByte("abcd"[rng.Intn(4)])
			}
			s := sb.String()
			if !re.MatchString(s) {
				continue
			}
			if p.Reject(s) {
				t.Fatalf("prefilter for %v rejected matching %q", r, s)
			}
			if lp.Reject(s) {
				t.Fatalf("literal prefilter for %v rejected matching %q (%+v)", r, s, lp.Literals())
			}
		}
	}
}

func TestRejectInvalidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		r     regex.Regex
		input string
	}{
		{"replacement char", regex.Char{C: utf8.RuneError}, "\xff"},
		{"one per byte", regex.NTimes{Body: regex.Char{C: utf8.RuneError}, N: 2}, "\xff\xfe"},
		{"after literal", regex.Seq{First: regex.Literal("ab"), Second: regex.Star{Body: regex.Char{C: utf8.RuneError}}}, "ab\xc3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, config := range []Config{DefaultConfig(), {}} {
				if New(tt.r, config).Reject(tt.input) {
					t.Errorf("Reject(%q) = true for %v (config %+v)", tt.input, tt.r, config)
				}
			}
		})
	}
}

func TestRejectMetrics(t *testing.T) {
	p := New(regex.Literal("hello"), DefaultConfig())
	rejects := testutil.ToFloat64(metricRejects)
	passes := testutil.ToFloat64(metricPasses)

	p.Reject("hello")
	p.Reject("nope")
	p.Reject("hellohello")

	if got := testutil.ToFloat64(metricRejects) - rejects; got != 2 {
		t.Errorf("rejects delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metricPasses) - passes; got != 1 {
		t.Errorf("passes delta = %v, want 1", got)
	}
}

func BenchmarkReject(b *testing.B) {
	r := regex.Seqs(regex.Literal("ERROR "), regex.Star{Body: regex.Range("abcdefghijklmnopqrstuvwxyz ")}, regex.Literal(" failed"))
	inputs := []struct {
		name  string
		input string
	}{
		{"prefix miss", "INFO all good here failed"},
		{"alphabet miss", "ERROR disk 3 failed"},
		{"full match", "ERROR connection to upstream failed"},
	}
	p := New(r, DefaultConfig())
	for _, in := range inputs {
		b.Run(in.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				p.reject(in.input)
			}
		})
	}
}
