package grammar

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"sigs.k8s.io/yaml"

	"github.com/kolkov/blex/internal/parser"
	"github.com/kolkov/blex/internal/regex"
)

// Node is one regex in a grammar document. Exactly one field must be set.
//
//	lit: "while"              literal string
//	char: "a"                 single character
//	range: "abc"              any one of the characters
//	re: "[a-z]+"              pattern syntax, see package parser
//	seq: [...]                sequence, in order
//	alt: [...]                alternation, earlier entries preferred
//	star: {...}               zero or more
//	plus: {...}               one or more
//	opt: {...}                empty or the node
//	ntimes: {n: 3, of: {...}} exactly n times
//	named: {name: x, of: {...}}
//	ref: NAME                 a definition from defs
//	one: true                 the empty string
//	zero: true                nothing
type Node struct {
	Lit    *string `json:"lit,omitempty"`
	Char   *string `json:"char,omitempty"`
	Range  *string `json:"range,omitempty"`
	Re     *string `json:"re,omitempty"`
	Seq    []Node  `json:"seq,omitempty"`
	Alt    []Node  `json:"alt,omitempty"`
	Star   *Node   `json:"star,omitempty"`
	Plus   *Node   `json:"plus,omitempty"`
	Opt    *Node   `json:"opt,omitempty"`
	NTimes *Repeat `json:"ntimes,omitempty"`
	Named  *Named  `json:"named,omitempty"`
	Ref    *string `json:"ref,omitempty"`
	One    bool    `json:"one,omitempty"`
	Zero   bool    `json:"zero,omitempty"`
}

// Repeat is the operand of an ntimes node.
type Repeat struct {
	N  int  `json:"n"`
	Of Node `json:"of"`
}

// Named is the operand of a named node.
type Named struct {
	Name string `json:"name"`
	Of   Node   `json:"of"`
}

// TokenDef is one entry of a grammar's token list: a named group.
type TokenDef struct {
	Name string `json:"name"`
	Node
}

// Document is a lexicon in structured form. Tokens become named groups
// tried in list order; unless Once is set the lexer accepts any sequence
// of them.
type Document struct {
	Name   string          `json:"name"`
	Defs   map[string]Node `json:"defs,omitempty"`
	Tokens []TokenDef      `json:"tokens"`
	Once   bool            `json:"once,omitempty"`
}

// LoadError reports a malformed grammar document.
type LoadError struct {
	Path    string // dotted location of the offending node
	Message string
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return "grammar: " + e.Message
	}
	return fmt.Sprintf("grammar: %s: %s", e.Path, e.Message)
}

// Parse decodes a YAML grammar document and builds its regex.
// Unknown fields are rejected.
func Parse(data []byte) (regex.Regex, *Document, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, nil, &LoadError{Message: err.Error()}
	}
	r, err := doc.Build()
	if err != nil {
		return nil, nil, err
	}
	return r, &doc, nil
}

// Load reads and parses the grammar document at path.
func Load(path string) (regex.Regex, *Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("grammar: %w", err)
	}
	return Parse(data)
}

// Build converts the document into a regex.
func (d *Document) Build() (regex.Regex, error) {
	if len(d.Tokens) == 0 {
		return nil, &LoadError{Path: "tokens", Message: "no tokens defined"}
	}
	b := &builder{defs: d.Defs, done: make(map[string]regex.Regex), active: make(map[string]bool)}
	toks := make([]regex.Regex, len(d.Tokens))
	for i, t := range d.Tokens {
		path := fmt.Sprintf("tokens[%d]", i)
		if t.Name == "" {
			return nil, &LoadError{Path: path, Message: "token without a name"}
		}
		body, err := b.build(path, t.Node)
		if err != nil {
			return nil, err
		}
		toks[i] = regex.Rec{Name: t.Name, Body: body}
	}
	r := regex.Alts(toks...)
	if d.Once {
		return r, nil
	}
	return regex.Star{Body: r}, nil
}

type builder struct {
	defs   map[string]Node
	done   map[string]regex.Regex
	active map[string]bool // refs being expanded, for cycle detection
}

func (b *builder) build(path string, n Node) (regex.Regex, error) {
	if set := n.fieldsSet(); len(set) != 1 {
		if len(set) == 0 {
			return nil, &LoadError{Path: path, Message: "empty node"}
		}
		return nil, &LoadError{Path: path, Message: "node sets more than one of " + strings.Join(set, ", ")}
	}

	switch {
	case n.Lit != nil:
		return regex.Literal(*n.Lit), nil

	case n.Char != nil:
		if utf8.RuneCountInString(*n.Char) != 1 {
			return nil, &LoadError{Path: path + ".char", Message: fmt.Sprintf("%q is not a single character", *n.Char)}
		}
		c, _ := utf8.DecodeRuneInString(*n.Char)
		return regex.Char{C: c}, nil

	case n.Range != nil:
		if *n.Range == "" {
			return nil, &LoadError{Path: path + ".range", Message: "empty range"}
		}
		return regex.Range(*n.Range), nil

	case n.Re != nil:
		r, err := parser.Parse(*n.Re)
		if err != nil {
			return nil, &LoadError{Path: path + ".re", Message: err.Error()}
		}
		return r, nil

	case n.Seq != nil:
		rs, err := b.list(path+".seq", n.Seq)
		if err != nil {
			return nil, err
		}
		return regex.Seqs(rs...), nil

	case n.Alt != nil:
		rs, err := b.list(path+".alt", n.Alt)
		if err != nil {
			return nil, err
		}
		return regex.Alts(rs...), nil

	case n.Star != nil:
		r, err := b.build(path+".star", *n.Star)
		if err != nil {
			return nil, err
		}
		return regex.Star{Body: r}, nil

	case n.Plus != nil:
		r, err := b.build(path+".plus", *n.Plus)
		if err != nil {
			return nil, err
		}
		return regex.Plus(r), nil

	case n.Opt != nil:
		r, err := b.build(path+".opt", *n.Opt)
		if err != nil {
			return nil, err
		}
		return regex.Opt(r), nil

	case n.NTimes != nil:
		if n.NTimes.N < 0 {
			return nil, &LoadError{Path: path + ".ntimes.n", Message: fmt.Sprintf("negative count %d", n.NTimes.N)}
		}
		r, err := b.build(path+".ntimes.of", n.NTimes.Of)
		if err != nil {
			return nil, err
		}
		return regex.NTimes{Body: r, N: n.NTimes.N}, nil

	case n.Named != nil:
		if n.Named.Name == "" {
			return nil, &LoadError{Path: path + ".named", Message: "group without a name"}
		}
		r, err := b.build(path+".named.of", n.Named.Of)
		if err != nil {
			return nil, err
		}
		return regex.Rec{Name: n.Named.Name, Body: r}, nil

	case n.Ref != nil:
		return b.ref(path, *n.Ref)

	case n.One:
		return regex.One{}, nil
	}
	return regex.Zero{}, nil
}

func (b *builder) list(path string, ns []Node) ([]regex.Regex, error) {
	if len(ns) == 0 {
		return nil, &LoadError{Path: path, Message: "empty list"}
	}
	rs := make([]regex.Regex, len(ns))
	for i, n := range ns {
		r, err := b.build(fmt.Sprintf("%s[%d]", path, i), n)
		if err != nil {
			return nil, err
		}
		rs[i] = r
	}
	return rs, nil
}

func (b *builder) ref(path, name string) (regex.Regex, error) {
	if r, ok := b.done[name]; ok {
		return r, nil
	}
	def, ok := b.defs[name]
	if !ok {
		return nil, &LoadError{Path: path + ".ref", Message: fmt.Sprintf("undefined %q", name)}
	}
	if b.active[name] {
		return nil, &LoadError{Path: path + ".ref", Message: fmt.Sprintf("recursive definition of %q", name)}
	}
	b.active[name] = true
	r, err := b.build("defs."+name, def)
	delete(b.active, name)
	if err != nil {
		return nil, err
	}
	b.done[name] = r
	return r, nil
}

func (n *Node) fieldsSet() []string {
	var set []string
	add := func(ok bool, name string) {
		if ok {
			set = append(set, name)
		}
	}
	add(n.Lit != nil, "lit")
	add(n.Char != nil, "char")
	add(n.Range != nil, "range")
	add(n.Re != nil, "re")
	add(n.Seq != nil, "seq")
	add(n.Alt != nil, "alt")
	add(n.Star != nil, "star")
	add(n.Plus != nil, "plus")
	add(n.Opt != nil, "opt")
	add(n.NTimes != nil, "ntimes")
	add(n.Named != nil, "named")
	add(n.Ref != nil, "ref")
	add(n.One, "one")
	add(n.Zero, "zero")
	return set
}
