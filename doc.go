// Package blex provides a POSIX lexer built on bitcoded Brzozowski
// derivatives.
//
// A regex is folded over the input one character at a time. Every
// derivative step records the choices it makes as bits on the annotated
// expression, so once the whole input has been consumed the accepted bit
// sequence can be decoded into a value tree describing exactly how the
// input was matched, or straight into a list of named tokens.
//
// # Quick Start
//
// For simple one-off matching:
//
//	v, err := blex.Lex(blex.Seq(blex.Char('a'), blex.Star(blex.Char('b'))), "abb")
//	// v: Sequ(Chr('a'), Stars(Chr('b'), Chr('b')))
//
// Naming parts of a regex with [Rec] turns it into a tokenizer:
//
//	digits := blex.Rec("n", blex.Plus(blex.Range("0123456789")))
//	space := blex.Rec("w", blex.Char(' '))
//	toks, err := blex.Tokenize(blex.Star(blex.Alt(digits, space)), "12 3")
//	// toks: [{n 12} {w " "} {n 3}]
//
// # Compiled Lexers
//
// For repeated matching with the same regex:
//
//	lx, err := blex.Compile(lexicon, &blex.Config{CacheSize: 256})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, src := range programs {
//	    toks, err := lx.Tokenize(src)
//	    // ...
//	}
//
// # Configuration
//
// The [Config] type allows customization of matching:
//   - Simplification of the residual expression after every step
//   - A fast-reject prefilter (literals, alphabet and coregex)
//   - An LRU cache of results keyed by input
//   - Unicode NFC normalization of input
//   - A step-by-step trace of every run
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [LexError]: the input is not in the language; wraps [ErrNoMatch]
//   - [CompileError]: the regex is invalid
//   - [InternalError]: the match witness and the regex disagreed
//
// Use [IsNoMatch] to check for a failed match and get the offset:
//
//	if off, ok := blex.IsNoMatch(err); ok {
//	    fmt.Printf("no match at %d\n", off)
//	}
//
// # Thread Safety
//
// A compiled [Lexer] is safe for concurrent use by multiple goroutines.
// Each call folds its own residual expression.
package blex
