package regex

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Pattern renders r in RE2 syntax, as accepted by regexp and coregex.
// Named groups become non-capturing groups; ZERO becomes an empty class.
// The result is unanchored.
func Pattern(r Regex) string {
	var sb strings.Builder
	writePattern(&sb, r)
	return sb.String()
}

func writePattern(sb *strings.Builder, r Regex) {
	switch n := r.(type) {
	case Zero:
		sb.WriteString(`[^\x00-\x{10FFFF}]`)
	case One:
		sb.WriteString(`(?:)`)
	case Char:
		sb.WriteString(regexp.QuoteMeta(string(n.C)))
	case Alt:
		sb.WriteString("(?:")
		writePattern(sb, n.Left)
		sb.WriteByte('|')
		writePattern(sb, n.Right)
		sb.WriteByte(')')
	case Seq:
		writePattern(sb, n.First)
		writePattern(sb, n.Second)
	case Star:
		sb.WriteString("(?:")
		writePattern(sb, n.Body)
		sb.WriteString(")*")
	case NTimes:
		sb.WriteString("(?:")
		writePattern(sb, n.Body)
		sb.WriteString("){")
		sb.WriteString(strconv.Itoa(n.N))
		sb.WriteByte('}')
	case Rec:
		sb.WriteString("(?:")
		writePattern(sb, n.Body)
		sb.WriteByte(')')
	}
}

// Printer provides pretty-printing for regex trees.
// It outputs one node per line, indented by depth, for debugging.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes a pretty-printed representation of r to the writer.
func (p *Printer) Print(r Regex) error {
	p.printNode(r)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	for i := 0; i < p.indent; i++ {
		_, p.err = io.WriteString(p.w, "  ")
	}
}

func (p *Printer) printNode(r Regex) {
	p.writeIndent()
	switch n := r.(type) {
	case nil:
		p.printf("<nil>\n")
	case Zero, One, Char:
		p.printf("%s\n", n)
	case Alt:
		p.printf("ALT\n")
		p.children(n.Left, n.Right)
	case Seq:
		p.printf("SEQ\n")
		p.children(n.First, n.Second)
	case Star:
		p.printf("STAR\n")
		p.children(n.Body)
	case NTimes:
		p.printf("NTIMES %d\n", n.N)
		p.children(n.Body)
	case Rec:
		p.printf("RECD %q\n", n.Name)
		p.children(n.Body)
	default:
		p.printf("<%T>\n", r)
	}
}

func (p *Printer) children(rs ...Regex) {
	p.indent++
	for _, r := range rs {
		p.printNode(r)
	}
	p.indent--
}
