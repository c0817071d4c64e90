package value

import "strings"

// Flatten returns the text matched by v.
func Flatten(v Value) string {
	var sb strings.Builder
	flatten(&sb, v)
	return sb.String()
}

func flatten(sb *strings.Builder, v Value) {
	switch n := v.(type) {
	case Chr:
		sb.WriteRune(n.C)
	case Left:
		flatten(sb, n.V)
	case Right:
		flatten(sb, n.V)
	case Sequ:
		flatten(sb, n.First)
		flatten(sb, n.Second)
	case Stars:
		for _, it := range n.Vs {
			flatten(sb, it)
		}
	case Ntimes:
		for _, it := range n.Vs {
			flatten(sb, it)
		}
	case Rec:
		flatten(sb, n.V)
	}
}

// Binding is the text matched by one named group.
type Binding struct {
	Name string
	Text string
}

// Env returns the named groups of v in pre-order, each with the text it
// matched. Nested groups follow their enclosing group.
func Env(v Value) []Binding {
	var out []Binding
	env(&out, v)
	return out
}

func env(out *[]Binding, v Value) {
	switch n := v.(type) {
	case Left:
		env(out, n.V)
	case Right:
		env(out, n.V)
	case Sequ:
		env(out, n.First)
		env(out, n.Second)
	case Stars:
		for _, it := range n.Vs {
			env(out, it)
		}
	case Ntimes:
		for _, it := range n.Vs {
			env(out, it)
		}
	case Rec:
		*out = append(*out, Binding{Name: n.Name, Text: Flatten(n.V)})
		env(out, n.V)
	}
}

// Clone returns a deep copy of v. Only the iteration slices of Stars and
// Ntimes are shared between copies of a Value, so only they are copied.
func Clone(v Value) Value {
	switch n := v.(type) {
	case Left:
		return Left{V: Clone(n.V)}
	case Right:
		return Right{V: Clone(n.V)}
	case Sequ:
		return Sequ{First: Clone(n.First), Second: Clone(n.Second)}
	case Stars:
		return Stars{Vs: cloneAll(n.Vs)}
	case Ntimes:
		return Ntimes{Vs: cloneAll(n.Vs)}
	case Rec:
		return Rec{Name: n.Name, V: Clone(n.V)}
	}
	return v
}

func cloneAll(vs []Value) []Value {
	if vs == nil {
		return nil
	}
	out := make([]Value, len(vs))
	for i, it := range vs {
		out[i] = Clone(it)
	}
	return out
}
