package decode

import (
	"fmt"
	"strings"

	"github.com/kolkov/blex/internal/bitcode"
	"github.com/kolkov/blex/internal/regex"
)

// Token is a slice of the input attributed to a named group.
// Named is false only for text matched before the first named group.
type Token struct {
	Name  string
	Named bool
	Text  string
}

// slot accumulates the text of one token.
type slot struct {
	name  string
	named bool
	text  strings.Builder
}

// Stream decodes bits against r straight into tokens, without building a
// value tree. It keeps an explicit work stack instead of recursing.
//
// Every character is appended to the most recently opened slot: entering a
// named group opens a new slot, and text following the group (but outside any
// later group) keeps accumulating into it. The initial unnamed slot is only
// reported when it received text.
func Stream(r regex.Regex, bits bitcode.Bits) ([]Token, error) {
	rd := bitcode.NewReader(bits)
	work := []regex.Regex{r}
	slots := []*slot{{}}

	for len(work) > 0 {
		top := work[len(work)-1]
		work = work[:len(work)-1]

		switch n := top.(type) {
		case regex.One:

		case regex.Char:
			slots[len(slots)-1].text.WriteRune(n.C)

		case regex.Alt:
			bit, ok := rd.Next()
			if !ok {
				return nil, &Error{Pos: rd.Pos(), Node: n, Reason: "bits exhausted at alternation"}
			}
			if bit == bitcode.Z {
				work = append(work, n.Left)
			} else {
				work = append(work, n.Right)
			}

		case regex.Seq:
			work = append(work, n.Second, n.First)

		case regex.Star:
			bit, ok := rd.Next()
			if ok && bit == bitcode.Z {
				work = append(work, n, n.Body)
			}

		case regex.NTimes:
			if n.N > 0 {
				work = append(work, regex.NTimes{Body: n.Body, N: n.N - 1}, n.Body)
			}

		case regex.Rec:
			work = append(work, n.Body)
			slots = append(slots, &slot{name: n.Name, named: true})

		case regex.Zero:
			return nil, &Error{Pos: rd.Pos(), Node: n, Reason: "empty language has no value"}

		default:
			return nil, &Error{Pos: rd.Pos(), Node: top, Reason: fmt.Sprintf("unknown node %T", top)}
		}
	}

	if !rd.Done() {
		return nil, &Error{Pos: rd.Pos(), Node: r, Reason: fmt.Sprintf("%d trailing bits", rd.Remaining())}
	}

	tokens := make([]Token, 0, len(slots))
	for i, s := range slots {
		if i == 0 && s.text.Len() == 0 {
			continue
		}
		tokens = append(tokens, Token{Name: s.name, Named: s.named, Text: s.text.String()})
	}
	return tokens, nil
}
