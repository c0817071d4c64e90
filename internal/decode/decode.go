// Package decode reconstructs match results from the bit sequence produced by
// bitcoded derivative matching, walking the original (unannotated) regex in
// lock-step with the bits.
//
// Bit conventions, shared with package arexp:
//
//	ALT   : 0 = left alternative, 1 = right alternative
//	STAR  : 0 = one more iteration follows, 1 = stop
//	NTIMES: no bits of its own; exactly N iterations follow
package decode

import (
	"fmt"

	"github.com/kolkov/blex/internal/bitcode"
	"github.com/kolkov/blex/internal/regex"
	"github.com/kolkov/blex/internal/value"
)

// Error reports that a bit sequence does not fit the regex it is decoded
// against. It always indicates a defect upstream of the decoder.
type Error struct {
	Pos    int         // index of the offending bit
	Node   regex.Regex // node being decoded when the mismatch was found
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode: %s at bit %d (node %v)", e.Reason, e.Pos, e.Node)
}

// Decode reconstructs the value of r described by bits.
// Every bit must be consumed.
func Decode(r regex.Regex, bits bitcode.Bits) (value.Value, error) {
	rd := bitcode.NewReader(bits)
	v, err := decode(r, rd)
	if err != nil {
		return nil, err
	}
	if !rd.Done() {
		return nil, &Error{Pos: rd.Pos(), Node: r, Reason: fmt.Sprintf("%d trailing bits", rd.Remaining())}
	}
	return v, nil
}

// DecodePrefix decodes one value of r from the front of bits and returns it
// together with the bits left over.
func DecodePrefix(r regex.Regex, bits bitcode.Bits) (value.Value, bitcode.Bits, error) {
	rd := bitcode.NewReader(bits)
	v, err := decode(r, rd)
	if err != nil {
		return nil, bitcode.Bits{}, err
	}
	return v, rd.Rest(), nil
}

func decode(r regex.Regex, rd *bitcode.Reader) (value.Value, error) {
	switch n := r.(type) {
	case regex.One:
		return value.Empty{}, nil

	case regex.Char:
		return value.Chr{C: n.C}, nil

	case regex.Alt:
		bit, ok := rd.Next()
		if !ok {
			return nil, &Error{Pos: rd.Pos(), Node: n, Reason: "bits exhausted at alternation"}
		}
		if bit == bitcode.Z {
			v, err := decode(n.Left, rd)
			if err != nil {
				return nil, err
			}
			return value.Left{V: v}, nil
		}
		v, err := decode(n.Right, rd)
		if err != nil {
			return nil, err
		}
		return value.Right{V: v}, nil

	case regex.Seq:
		v1, err := decode(n.First, rd)
		if err != nil {
			return nil, err
		}
		v2, err := decode(n.Second, rd)
		if err != nil {
			return nil, err
		}
		return value.Sequ{First: v1, Second: v2}, nil

	case regex.Star:
		var vs []value.Value
		for {
			bit, ok := rd.Next()
			if !ok || bit == bitcode.S {
				break
			}
			v, err := decode(n.Body, rd)
			if err != nil {
				return nil, err
			}
			vs = append(vs, v)
		}
		return value.Stars{Vs: vs}, nil

	case regex.NTimes:
		vs := make([]value.Value, 0, n.N)
		for i := 0; i < n.N; i++ {
			v, err := decode(n.Body, rd)
			if err != nil {
				return nil, err
			}
			vs = append(vs, v)
		}
		return value.Ntimes{Vs: vs}, nil

	case regex.Rec:
		v, err := decode(n.Body, rd)
		if err != nil {
			return nil, err
		}
		return value.Rec{Name: n.Name, V: v}, nil

	case regex.Zero:
		return nil, &Error{Pos: rd.Pos(), Node: n, Reason: "empty language has no value"}
	}
	return nil, &Error{Pos: rd.Pos(), Node: r, Reason: fmt.Sprintf("unknown node %T", r)}
}
