package regex

import "fmt"

// Walk traverses a regex in depth-first pre-order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: count all characters
//
//	count := 0
//	regex.Walk(r, func(n regex.Regex) bool {
//	    if _, ok := n.(regex.Char); ok {
//	        count++
//	    }
//	    return true // continue traversal
//	})
func Walk(r Regex, fn func(Regex) bool) {
	if r == nil || !fn(r) {
		return
	}

	switch n := r.(type) {
	case Zero, One, Char:
		// no children

	case Alt:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case Seq:
		Walk(n.First, fn)
		Walk(n.Second, fn)

	case Star:
		Walk(n.Body, fn)

	case NTimes:
		Walk(n.Body, fn)

	case Rec:
		Walk(n.Body, fn)
	}
}

// Names returns the distinct token names used by Rec nodes in r,
// in order of first appearance.
func Names(r Regex) []string {
	var names []string
	seen := make(map[string]bool)
	Walk(r, func(n Regex) bool {
		if rec, ok := n.(Rec); ok && !seen[rec.Name] {
			seen[rec.Name] = true
			names = append(names, rec.Name)
		}
		return true
	})
	return names
}

// Validate checks that r is well formed: no nil subtrees and no negative
// repetition counts.
func Validate(r Regex) error {
	if r == nil {
		return fmt.Errorf("nil regex")
	}
	var err error
	Walk(r, func(n Regex) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case Alt:
			if n.Left == nil || n.Right == nil {
				err = fmt.Errorf("alternation with nil operand")
			}
		case Seq:
			if n.First == nil || n.Second == nil {
				err = fmt.Errorf("sequence with nil operand")
			}
		case Star:
			if n.Body == nil {
				err = fmt.Errorf("repetition with nil body")
			}
		case NTimes:
			if n.Body == nil {
				err = fmt.Errorf("bounded repetition with nil body")
			} else if n.N < 0 {
				err = fmt.Errorf("bounded repetition with negative count %d", n.N)
			}
		case Rec:
			if n.Body == nil {
				err = fmt.Errorf("named group %q with nil body", n.Name)
			}
		}
		return err == nil
	})
	return err
}
