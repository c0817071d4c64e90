package regex

// -----------------------------------------------------------------------------
// Derived combinators
// -----------------------------------------------------------------------------

// Plus matches one or more repetitions of r: SEQ(r, STAR(r)).
func Plus(r Regex) Regex {
	return Seq{First: r, Second: Star{Body: r}}
}

// Opt matches r or the empty string: ALT(ONE, r).
// The empty alternative comes first, as in the lexicons this is used for.
func Opt(r Regex) Regex {
	return Alt{Left: One{}, Right: r}
}

// Range matches any single character of chars, as a right-nested
// alternation in the order given. An empty set matches nothing.
func Range(chars string) Regex {
	rs := make([]Regex, 0, len(chars))
	for _, c := range chars {
		rs = append(rs, Char{C: c})
	}
	return Alts(rs...)
}

// Literal matches exactly s, as a right-nested sequence of characters.
// The empty literal matches the empty string.
func Literal(s string) Regex {
	rs := make([]Regex, 0, len(s))
	for _, c := range s {
		rs = append(rs, Char{C: c})
	}
	return Seqs(rs...)
}

// Alts folds rs into a right-nested alternation, preserving priority order.
// No operands yields ZERO.
func Alts(rs ...Regex) Regex {
	switch len(rs) {
	case 0:
		return Zero{}
	case 1:
		return rs[0]
	}
	out := rs[len(rs)-1]
	for i := len(rs) - 2; i >= 0; i-- {
		out = Alt{Left: rs[i], Right: out}
	}
	return out
}

// Seqs folds rs into a right-nested sequence. No operands yields ONE.
func Seqs(rs ...Regex) Regex {
	switch len(rs) {
	case 0:
		return One{}
	case 1:
		return rs[0]
	}
	out := rs[len(rs)-1]
	for i := len(rs) - 2; i >= 0; i-- {
		out = Seq{First: rs[i], Second: out}
	}
	return out
}
