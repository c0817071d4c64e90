package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gobwas/glob"

	"github.com/kolkov/blex"
	"github.com/kolkov/blex/internal/grammar"
)

type benchCommand struct {
	Filter     string `short:"f" default:"*" help:"Glob selecting patterns by name"`
	From       int    `default:"0" help:"First size"`
	To         int    `default:"150" help:"Last size"`
	Step       int    `default:"10" help:"Size increment"`
	Iterations int    `short:"n" default:"5" help:"Runs per size; the average is reported"`
	Op         string `default:"tokenize" enum:"tokenize,lex" help:"Operation to time (${enum})"`
	List       bool   `short:"l" help:"List pattern names and exit"`
}

func (b *benchCommand) Run(cli *CLI, out *bufio.Writer) error {
	if b.List {
		for _, p := range grammar.Patterns {
			fmt.Fprintln(out, p.Name)
		}
		return nil
	}
	if b.Step <= 0 || b.Iterations <= 0 {
		return fmt.Errorf("step and iterations must be positive")
	}
	g, err := glob.Compile(b.Filter)
	if err != nil {
		return fmt.Errorf("filter: %w", err)
	}

	cfg := cli.config()
	// Results would be served from the cache after the first run.
	cfg.CacheSize = 0

	matched := 0
	for _, p := range grammar.Patterns {
		if !g.Match(p.Name) {
			continue
		}
		matched++
		fmt.Fprintf(out, "# %s\n", p.Name)
		for n := b.From; n <= b.To; n += b.Step {
			avg, err := b.time(p, n, cfg)
			if err != nil {
				return fmt.Errorf("%s n=%d: %w", p.Name, n, err)
			}
			fmt.Fprintf(out, "%d %.6f\n", n, avg.Seconds())
			out.Flush()
		}
	}
	if matched == 0 {
		return fmt.Errorf("no pattern matches %q", b.Filter)
	}
	return nil
}

// time compiles the pattern of size n and returns the mean duration of one
// run of the selected operation over its input. No-match results are
// expected for some patterns.
func (b *benchCommand) time(p grammar.Pattern, n int, cfg *blex.Config) (time.Duration, error) {
	lx, err := blex.Compile(p.Regex(n), cfg)
	if err != nil {
		return 0, err
	}
	input := p.Input(n)
	run := func() error {
		_, err := lx.Tokenize(input)
		return err
	}
	if b.Op == "lex" {
		run = func() error {
			_, err := lx.Lex(input)
			return err
		}
	}

	start := time.Now()
	for i := 0; i < b.Iterations; i++ {
		if err := run(); err != nil {
			if _, ok := blex.IsNoMatch(err); !ok {
				return 0, err
			}
		}
	}
	return time.Since(start) / time.Duration(b.Iterations), nil
}
