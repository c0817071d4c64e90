// Package grammar provides ready-made lexicons and a loader for lexicons
// described as structured YAML documents.
package grammar

import "github.com/kolkov/blex/internal/regex"

// Character classes of the WHILE language.
const (
	symChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_._><;=,:\\"
	digitChars = "0123456789"
)

// WHILE token names.
const (
	TokKeyword    = "k"
	TokIdentifier = "i"
	TokOperator   = "o"
	TokNumber     = "n"
	TokSemicolon  = "s"
	TokString     = "str"
	TokParen      = "p"
	TokWhitespace = "w"
)

func literals(words ...string) regex.Regex {
	rs := make([]regex.Regex, len(words))
	for i, w := range words {
		rs[i] = regex.Literal(w)
	}
	return regex.Alts(rs...)
}

// While returns the lexicon of the WHILE language: any sequence of
// keywords, identifiers, operators, numbers, semicolons, strings,
// parentheses and whitespace, each wrapped in its named group.
//
// Alternatives are tried in that order, so a keyword is preferred over an
// identifier of the same length.
func While() regex.Regex {
	sym := regex.Range(symChars)
	digit := regex.Range(digitChars)
	id := regex.Seq{First: sym, Second: regex.Star{Body: regex.Alt{Left: sym, Right: digit}}}
	num := regex.Alt{
		Left:  regex.Char{C: '0'},
		Right: regex.Seq{First: regex.Range("123456789"), Second: regex.Star{Body: digit}},
	}
	keyword := literals("skip", "while", "do", "if", "then", "else", "read", "write")
	semi := regex.Char{C: ';'}
	op := literals("+", "-", "*", "/", "%", ":=", "!=", "=", "<", ">")
	whitespace := regex.Plus(regex.Range(" \n\t"))
	parens := regex.Range("({)}")
	str := regex.Seq{
		First: regex.Char{C: '"'},
		Second: regex.Seq{
			First:  regex.Alt{Left: regex.Star{Body: sym}, Right: regex.Alt{Left: whitespace, Right: digit}},
			Second: regex.Char{C: '"'},
		},
	}

	return regex.Star{Body: regex.Alts(
		regex.Rec{Name: TokKeyword, Body: keyword},
		regex.Rec{Name: TokIdentifier, Body: id},
		regex.Rec{Name: TokOperator, Body: op},
		regex.Rec{Name: TokNumber, Body: num},
		regex.Rec{Name: TokSemicolon, Body: semi},
		regex.Rec{Name: TokString, Body: str},
		regex.Rec{Name: TokParen, Body: parens},
		regex.Rec{Name: TokWhitespace, Body: whitespace},
	)}
}

// Sample WHILE programs.
const (
	FibProgram = `write "Fib";
read n;
minus1 := 0;
minus2 := 1;
while n > 0 do {
  temp := minus2;
  minus2 := minus1 + minus2;
  minus1 := temp;
  n := n - 1
};
write "Result";
write minus2`

	FactorialProgram = `read (n);
factorial := 1;
i := 1;
while i <= n do {
 factorial := factorial * i;
 i := i + 1
};
result := factorial;
write (result)`
)
