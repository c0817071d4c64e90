package runtime

import (
	"strings"

	"github.com/kolkov/blex/internal/regex"
)

// minRequired is the shortest inner literal worth a strings.Contains call.
const minRequired = 3

// LiteralInfo holds literal substrings every string in a regex's language
// must carry. Matching is anchored at both ends, so a prefix and a suffix are
// checked with HasPrefix and HasSuffix.
type LiteralInfo struct {
	Prefix   string   // Every match starts with Prefix
	Suffix   string   // Every match ends with Suffix
	Required []string // Every match contains each of these
}

// extractLiterals walks r and collects its literal constraints. Returns nil if
// no useful literals are found.
//
// The extractor is conservative: it may miss literals but must never produce
// a constraint that some string of the language violates.
func extractLiterals(r regex.Regex) *LiteralInfo {
	info := &LiteralInfo{
		Prefix: prefixOf(r),
		Suffix: suffixOf(r),
	}
	for _, run := range requiredRuns(r) {
		if len(run) < minRequired || run == info.Prefix || run == info.Suffix {
			continue
		}
		if strings.Contains(info.Prefix, run) || strings.Contains(info.Suffix, run) {
			continue
		}
		info.Required = append(info.Required, run)
	}
	if info.Prefix == "" && info.Suffix == "" && len(info.Required) == 0 {
		return nil
	}
	return info
}

// exact returns the only string r matches, if there is exactly one.
func exact(r regex.Regex) (string, bool) {
	switch n := r.(type) {
	case regex.One:
		return "", true
	case regex.Char:
		return string(n.C), true
	case regex.Seq:
		a, ok := exact(n.First)
		if !ok {
			return "", false
		}
		b, ok := exact(n.Second)
		if !ok {
			return "", false
		}
		return a + b, true
	case regex.NTimes:
		if n.N == 0 {
			return "", true
		}
		s, ok := exact(n.Body)
		if !ok {
			return "", false
		}
		return strings.Repeat(s, n.N), true
	case regex.Rec:
		return exact(n.Body)
	}
	return "", false
}

func prefixOf(r regex.Regex) string {
	if s, ok := exact(r); ok {
		return s
	}
	switch n := r.(type) {
	case regex.Seq:
		if s, ok := exact(n.First); ok {
			return s + prefixOf(n.Second)
		}
		return prefixOf(n.First)
	case regex.Alt:
		return commonPrefix(prefixOf(n.Left), prefixOf(n.Right))
	case regex.NTimes:
		if n.N > 0 {
			return prefixOf(n.Body)
		}
	case regex.Rec:
		return prefixOf(n.Body)
	}
	return ""
}

func suffixOf(r regex.Regex) string {
	if s, ok := exact(r); ok {
		return s
	}
	switch n := r.(type) {
	case regex.Seq:
		if s, ok := exact(n.Second); ok {
			return suffixOf(n.First) + s
		}
		return suffixOf(n.Second)
	case regex.Alt:
		return commonSuffix(suffixOf(n.Left), suffixOf(n.Right))
	case regex.NTimes:
		if n.N > 0 {
			return suffixOf(n.Body)
		}
	case regex.Rec:
		return suffixOf(n.Body)
	}
	return ""
}

// requiredRuns flattens the sequence spine of r and joins adjacent exact
// factors into runs. Factors under alternation or star are optional and
// contribute nothing.
func requiredRuns(r regex.Regex) []string {
	var runs []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			runs = append(runs, cur.String())
			cur.Reset()
		}
	}
	var walk func(regex.Regex)
	walk = func(r regex.Regex) {
		if s, ok := exact(r); ok {
			cur.WriteString(s)
			return
		}
		switch n := r.(type) {
		case regex.Seq:
			walk(n.First)
			walk(n.Second)
		case regex.Rec:
			walk(n.Body)
		case regex.NTimes:
			if n.N > 0 {
				flush()
				walk(n.Body)
			}
			flush()
		default:
			flush()
		}
	}
	walk(r)
	flush()
	return runs
}

func commonPrefix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return trimPartialRune(a[:i])
}

func commonSuffix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	s := a[len(a)-i:]
	for len(s) > 0 && s[0]&0xC0 == 0x80 {
		s = s[1:]
	}
	return s
}

// trimPartialRune drops a trailing incomplete UTF-8 sequence.
func trimPartialRune(s string) string {
	for i := len(s) - 1; i >= 0 && i >= len(s)-4; i-- {
		c := s[i]
		if c < 0x80 {
			return s
		}
		if c >= 0xC0 {
			need := 2
			switch {
			case c >= 0xF0:
				need = 4
			case c >= 0xE0:
				need = 3
			}
			if len(s)-i < need {
				return s[:i]
			}
			return s
		}
	}
	return s
}

// CanReject reports whether s definitely cannot match. It never allocates.
func (li *LiteralInfo) CanReject(s string) bool {
	if li.Prefix != "" && !strings.HasPrefix(s, li.Prefix) {
		return true
	}
	if li.Suffix != "" && !strings.HasSuffix(s, li.Suffix) {
		return true
	}
	for _, req := range li.Required {
		if !strings.Contains(s, req) {
			return true
		}
	}
	return false
}
