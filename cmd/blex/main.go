// blex - POSIX lexer on bitcoded derivatives
//
// Tokenizes or matches input against a builtin or YAML-described grammar,
// and times the derivative engine on known pathological patterns.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/willabides/kongplete"

	"github.com/kolkov/blex"
	"github.com/kolkov/blex/internal/grammar"
	"github.com/kolkov/blex/internal/regex"
	"github.com/kolkov/blex/internal/runtime"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var errNoMatch = errors.New("no match")

// CLI holds the global flags and the subcommands. Commands receive it in Run
// to build the grammar and lexer configuration.
type CLI struct {
	Grammar    string `short:"g" default:"while" placeholder:"NAME|PATH" env:"BLEX_GRAMMAR" help:"Builtin grammar (while) or path to a YAML grammar"`
	Regex      string `short:"r" placeholder:"PATTERN" help:"Use PATTERN instead of a grammar"`
	Trace      bool   `help:"Print a step-by-step trace of every derivative run to stderr"`
	Prefilter  bool   `help:"Reject input with a fast prefilter before derivative matching"`
	NoSimplify bool   `name:"no-simplify" help:"Do not simplify the residual expression after each step"`
	Normalize  bool   `help:"Normalize input to Unicode NFC before matching"`
	CacheSize  int    `name:"cache-size" default:"0" help:"Number of results kept in the LRU cache"`
	Metrics    bool   `help:"Print blex metrics to stderr on exit"`

	Tokenize           tokenizeCommand              `cmd:"" help:"Print the named tokens of each input"`
	Lex                lexCommand                   `cmd:"" help:"Print the value tree of each input"`
	Env                envCommand                   `cmd:"" help:"Print every named group of each input, nested groups included"`
	Match              matchCommand                 `cmd:"" help:"Report whether each input is in the language"`
	Bits               bitsCommand                  `cmd:"" help:"Print the match bit sequence of each input"`
	Show               showCommand                  `cmd:"" help:"Print the grammar"`
	Bench              benchCommand                 `cmd:"" help:"Time the engine on pathological patterns"`
	Version            versionCommand               `cmd:"" help:"Show blex version"`
	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
}

// Inputs selects what to match: literal text given with -e, else files,
// else stdin.
type Inputs struct {
	Text  []string `short:"e" sep:"none" placeholder:"TEXT" help:"Match TEXT instead of reading files (repeatable)"`
	Files []string `arg:"" optional:"" type:"path" help:"Input files; - is stdin"`
}

func (in Inputs) each(fn func(name, src string) error) error {
	if len(in.Text) > 0 {
		for i, s := range in.Text {
			if err := fn(fmt.Sprintf("-e[%d]", i), s); err != nil {
				return err
			}
		}
		return nil
	}
	files := in.Files
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, f := range files {
		src, err := readInput(f)
		if err != nil {
			return err
		}
		if err := fn(f, src); err != nil {
			return err
		}
	}
	return nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot read input file: %w", err)
	}
	return string(data), nil
}

func (c *CLI) config() *blex.Config {
	simplify := !c.NoSimplify
	cfg := &blex.Config{
		Simplify:  &simplify,
		Prefilter: c.Prefilter,
		CacheSize: c.CacheSize,
		Normalize: c.Normalize,
	}
	if c.Trace {
		cfg.Trace = os.Stderr
	}
	return cfg
}

// loadGrammar resolves the --regex and --grammar flags.
func (c *CLI) loadGrammar() (blex.Regex, error) {
	if c.Regex != "" {
		return blex.Parse(c.Regex)
	}
	switch c.Grammar {
	case "while":
		return grammar.While(), nil
	}
	r, _, err := grammar.Load(c.Grammar)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (c *CLI) lexer() (*blex.Lexer, error) {
	r, err := c.loadGrammar()
	if err != nil {
		return nil, err
	}
	return blex.Compile(r, c.config())
}

type tokenizeCommand struct {
	Inputs
}

func (t *tokenizeCommand) Run(cli *CLI, out *bufio.Writer) error {
	lx, err := cli.lexer()
	if err != nil {
		return err
	}
	return t.each(func(name, src string) error {
		toks, err := lx.Tokenize(src)
		if err != nil {
			return inputError(name, err)
		}
		for _, tok := range toks {
			printToken(out, tok)
		}
		return nil
	})
}

type lexCommand struct {
	Inputs
}

func (l *lexCommand) Run(cli *CLI, out *bufio.Writer) error {
	lx, err := cli.lexer()
	if err != nil {
		return err
	}
	return l.each(func(name, src string) error {
		v, err := lx.Lex(src)
		if err != nil {
			return inputError(name, err)
		}
		fmt.Fprintln(out, v)
		return nil
	})
}

type envCommand struct {
	Inputs
}

func (e *envCommand) Run(cli *CLI, out *bufio.Writer) error {
	lx, err := cli.lexer()
	if err != nil {
		return err
	}
	return e.each(func(name, src string) error {
		toks, err := lx.Env(src)
		if err != nil {
			return inputError(name, err)
		}
		for _, tok := range toks {
			printToken(out, tok)
		}
		return nil
	})
}

type matchCommand struct {
	Inputs
	Quiet bool `short:"q" help:"Print nothing; only set the exit status"`
}

func (m *matchCommand) Run(cli *CLI, out *bufio.Writer) error {
	lx, err := cli.lexer()
	if err != nil {
		return err
	}
	failed := false
	err = m.each(func(name, src string) error {
		ok := lx.Match(src)
		if !ok {
			failed = true
		}
		if !m.Quiet {
			fmt.Fprintf(out, "%s\t%t\n", name, ok)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if failed {
		return errNoMatch
	}
	return nil
}

type bitsCommand struct {
	Inputs
}

func (b *bitsCommand) Run(cli *CLI, out *bufio.Writer) error {
	lx, err := cli.lexer()
	if err != nil {
		return err
	}
	return b.each(func(name, src string) error {
		bits, err := lx.Bits(src)
		if err != nil {
			return inputError(name, err)
		}
		fmt.Fprintln(out, bits)
		return nil
	})
}

type showCommand struct {
	Tree bool `short:"t" help:"Print the expression tree instead of the RE2 pattern"`
}

func (s *showCommand) Run(cli *CLI, out *bufio.Writer) error {
	r, err := cli.loadGrammar()
	if err != nil {
		return err
	}
	if s.Tree {
		return regex.NewPrinter(out).Print(r)
	}
	fmt.Fprintf(out, "names: %s\n", strings.Join(regex.Names(r), " "))
	fmt.Fprintf(out, "size:  %d\n", regex.Size(r))
	fmt.Fprintln(out, blex.Pattern(r))
	if cli.Prefilter {
		printPrefilter(out, runtime.New(r, runtime.DefaultConfig()))
	}
	return nil
}

func printPrefilter(out io.Writer, p *runtime.Prefilter) {
	leg := "off"
	if p.HasRegexp() {
		leg = "on"
	}
	fmt.Fprintf(out, "prefilter: %s\n", p.Pattern())
	fmt.Fprintf(out, "  regexp:   %s\n", leg)
	if lit := p.Literals(); lit != nil {
		fmt.Fprintf(out, "  prefix:   %q\n", lit.Prefix)
		fmt.Fprintf(out, "  suffix:   %q\n", lit.Suffix)
		fmt.Fprintf(out, "  required: %q\n", lit.Required)
	}
}

type versionCommand struct{}

func (versionCommand) Run(out *bufio.Writer) error {
	fmt.Fprintf(out, "blex %s (lib %s, commit %s, built %s)\n", version, blex.Version, commit, date)
	return nil
}

func printToken(w io.Writer, tok blex.Token) {
	name := tok.Name
	if !tok.Named {
		name = "-"
	}
	fmt.Fprintf(w, "%s\t%q\n", name, tok.Text)
}

func inputError(name string, err error) error {
	if off, ok := blex.IsNoMatch(err); ok {
		if off < 0 {
			return fmt.Errorf("%s: rejected by prefilter", name)
		}
		return fmt.Errorf("%s: no match at offset %d", name, off)
	}
	return fmt.Errorf("%s: %w", name, err)
}

// printMetrics writes every blex metric family in the Prometheus text format.
func printMetrics(w io.Writer) error {
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), "blex_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("blex"),
		kong.Description("POSIX lexer on bitcoded Brzozowski derivatives."),
		kong.UsageOnError(),
	)
	kongplete.Complete(parser)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	stdout := bufio.NewWriter(os.Stdout)
	err = ctx.Run(&cli, stdout)
	stdout.Flush()

	if cli.Metrics {
		if merr := printMetrics(os.Stderr); merr != nil {
			fmt.Fprintf(os.Stderr, "blex: metrics: %v\n", merr)
		}
	}
	if errors.Is(err, errNoMatch) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "blex: %v\n", err)
		os.Exit(1)
	}
}
