// Package termcodec encodes terms in the protobuf wire format.
//
// Each term is a message with exactly one field set:
//
//	message Term {
//	  oneof node {
//	    Empty  universe = 1;
//	    sint64 var      = 2;
//	    Pair   app      = 3; // fun, arg
//	    Pair   lam      = 4; // type, body
//	    Pair   pi       = 5; // type, body
//	    Single fix      = 6; // body
//	  }
//	}
//	message Pair   { Term first = 1; Term second = 2; }
//	message Single { Term body = 1; }
package termcodec

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/funvibe/sol/internal/config"
	"github.com/funvibe/sol/internal/term"
)

const (
	fieldUniverse protowire.Number = 1
	fieldVar      protowire.Number = 2
	fieldApp      protowire.Number = 3
	fieldLam      protowire.Number = 4
	fieldPi       protowire.Number = 5
	fieldFix      protowire.Number = 6

	fieldFirst  protowire.Number = 1
	fieldSecond protowire.Number = 2
)

// ErrMalformed is wrapped by every decoding error.
var ErrMalformed = errors.New("malformed term encoding")

// Encode returns the wire form of t.
func Encode(t term.Term) []byte {
	return appendTerm(nil, t)
}

func appendTerm(b []byte, t term.Term) []byte {
	switch t := t.(type) {
	case *term.Universe:
		b = protowire.AppendTag(b, fieldUniverse, protowire.BytesType)
		return protowire.AppendBytes(b, nil)
	case *term.Var:
		b = protowire.AppendTag(b, fieldVar, protowire.VarintType)
		return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(t.Index)))
	case *term.App:
		return appendPair(b, fieldApp, t.Fun, t.Arg)
	case *term.Lam:
		return appendPair(b, fieldLam, t.Type, t.Body)
	case *term.Pi:
		return appendPair(b, fieldPi, t.Type, t.Body)
	case *term.Fix:
		b = protowire.AppendTag(b, fieldFix, protowire.BytesType)
		return protowire.AppendBytes(b, appendField(nil, fieldFirst, t.Body))
	default:
		panic(fmt.Sprintf("termcodec: unknown term %T", t))
	}
}

func appendPair(b []byte, num protowire.Number, first, second term.Term) []byte {
	inner := appendField(nil, fieldFirst, first)
	inner = appendField(inner, fieldSecond, second)
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func appendField(b []byte, num protowire.Number, t term.Term) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, appendTerm(nil, t))
}

// Decode parses the wire form produced by Encode.
func Decode(b []byte) (term.Term, error) {
	d := &decoder{}
	return d.term(b)
}

type decoder struct {
	depth int
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

func (d *decoder) term(b []byte) (term.Term, error) {
	d.depth++
	defer func() { d.depth-- }()
	if d.depth > config.MaxNestingDepth {
		return nil, malformed("nesting exceeds %d levels", config.MaxNestingDepth)
	}

	if len(b) == 0 {
		return nil, malformed("empty term")
	}
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return nil, malformed("tag: %v", protowire.ParseError(n))
	}
	b = b[n:]

	var t term.Term
	if num == fieldVar {
		if typ != protowire.VarintType {
			return nil, malformed("field %d has wire type %d", num, typ)
		}
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, malformed("var: %v", protowire.ParseError(n))
		}
		t = term.NewVar(int(protowire.DecodeZigZag(v)))
		b = b[n:]
	} else {
		if typ != protowire.BytesType {
			return nil, malformed("field %d has wire type %d", num, typ)
		}
		payload, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, malformed("field %d: %v", num, protowire.ParseError(n))
		}
		b = b[n:]

		var err error
		t, err = d.node(num, payload)
		if err != nil {
			return nil, err
		}
	}

	if len(b) > 0 {
		return nil, malformed("%d trailing bytes after field %d", len(b), num)
	}
	return t, nil
}

func (d *decoder) node(num protowire.Number, payload []byte) (term.Term, error) {
	switch num {
	case fieldUniverse:
		if len(payload) > 0 {
			return nil, malformed("universe carries %d bytes", len(payload))
		}
		return term.NewUniverse(), nil
	case fieldApp:
		return d.spine(payload)
	case fieldLam:
		typ, body, err := d.pair(payload)
		if err != nil {
			return nil, err
		}
		return term.NewLam(typ, body), nil
	case fieldPi:
		typ, body, err := d.pair(payload)
		if err != nil {
			return nil, err
		}
		return term.NewPi(typ, body), nil
	case fieldFix:
		fields, err := d.fields(payload, 1)
		if err != nil {
			return nil, err
		}
		return term.NewFix(fields[0]), nil
	default:
		return nil, malformed("unknown field %d", num)
	}
}

func (d *decoder) pair(payload []byte) (term.Term, term.Term, error) {
	fields, err := d.fields(payload, 2)
	if err != nil {
		return nil, nil, err
	}
	return fields[0], fields[1], nil
}

// spine decodes an application and every application nested in its
// function position without recursing, so a long flat application does
// not count toward the nesting limit.
func (d *decoder) spine(payload []byte) (term.Term, error) {
	var args []term.Term
	for {
		raw, err := rawFields(payload, 2)
		if err != nil {
			return nil, err
		}
		arg, err := d.term(raw[1])
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if inner, ok := appPayload(raw[0]); ok {
			payload = inner
			continue
		}
		head, err := d.term(raw[0])
		if err != nil {
			return nil, err
		}
		t := head
		for i := len(args) - 1; i >= 0; i-- {
			t = term.NewApp(t, args[i])
		}
		return t, nil
	}
}

// appPayload returns the payload of b when b is a well-formed term holding
// an application.
func appPayload(b []byte) ([]byte, bool) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 || num != fieldApp || typ != protowire.BytesType {
		return nil, false
	}
	payload, m := protowire.ConsumeBytes(b[n:])
	if m < 0 || n+m != len(b) {
		return nil, false
	}
	return payload, true
}

// rawFields splits a message whose fields 1..count each hold one encoded
// term.
func rawFields(b []byte, count int) ([][]byte, error) {
	out := make([][]byte, count)
	seen := make([]bool, count)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed("tag: %v", protowire.ParseError(n))
		}
		b = b[n:]
		if num < 1 || int(num) > count {
			return nil, malformed("unexpected field %d", num)
		}
		if typ != protowire.BytesType {
			return nil, malformed("field %d has wire type %d", num, typ)
		}
		payload, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, malformed("field %d: %v", num, protowire.ParseError(n))
		}
		b = b[n:]
		if seen[num-1] {
			return nil, malformed("field %d repeated", num)
		}
		seen[num-1] = true
		out[num-1] = payload
	}
	for i, ok := range seen {
		if !ok {
			return nil, malformed("field %d missing", i+1)
		}
	}
	return out, nil
}

// fields decodes a message whose fields 1..count each hold one term.
func (d *decoder) fields(b []byte, count int) ([]term.Term, error) {
	raw, err := rawFields(b, count)
	if err != nil {
		return nil, err
	}
	out := make([]term.Term, count)
	for i, payload := range raw {
		t, err := d.term(payload)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
