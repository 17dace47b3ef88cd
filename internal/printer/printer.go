package printer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/funvibe/sol/internal/scope"
	"github.com/funvibe/sol/internal/term"
)

// CombinatorLookup may name a closed binder. When it returns true the name
// is printed instead of the binder's structure.
type CombinatorLookup func(t term.Term) (string, bool)

// Printer renders terms as source text.
type Printer struct {
	// Lookup is consulted for every closed binder. Nil declines always.
	Lookup CombinatorLookup

	// FreeNames, when set, names free variable -k as FreeNames[k-1]. Binder
	// names then skip these names. Without it free variables print as fk.
	FreeNames []string

	// Reserved are names binders must not take, typically every name Lookup
	// can return.
	Reserved []string
}

// Render prints t, letting lookup substitute names for closed binders.
func Render(t term.Term, lookup CombinatorLookup) string {
	p := &Printer{Lookup: lookup}
	return p.Print(t)
}

// Show prints t with no substitutions.
func Show(t term.Term) string {
	return Render(t, nil)
}

// ShowWithFree prints t naming free variables after deps, as returned by
// the reader.
func ShowWithFree(t term.Term, deps []string) string {
	p := &Printer{FreeNames: deps}
	return p.Print(t)
}

// Print writes Show(t) and a newline to w.
func Print(w io.Writer, t term.Term) error {
	_, err := fmt.Fprintln(w, Show(t))
	return err
}

// Print analyzes and renders t.
func (p *Printer) Print(t term.Term) string {
	return p.PrintAnnotated(t, scope.Analyze(t))
}

// PrintAnnotated renders t using annotations computed earlier by
// scope.Analyze for the same term.
func (p *Printer) PrintAnnotated(t term.Term, annotations term.Annotations) string {
	r := &renderer{
		annotations: annotations,
		lookup:      p.Lookup,
		free:        p.FreeNames,
		names:       newNameTable(p.FreeNames, p.Reserved),
	}
	r.render(t)
	return r.buf.String()
}

type renderer struct {
	buf         strings.Builder
	annotations term.Annotations
	lookup      CombinatorLookup
	free        []string
	names       *nameTable
	stack       []string // display names of enclosing binders, innermost last
}

func (r *renderer) write(s string) {
	r.buf.WriteString(s)
}

func (r *renderer) render(t term.Term) {
	if r.lookup != nil && r.annotations.Closed(t) {
		if name, ok := r.lookup(t); ok && !r.captured(name) {
			r.write(name)
			return
		}
	}

	switch t := t.(type) {
	case *term.Universe:
		r.write("*")

	case *term.Var:
		r.write(r.varName(t.Index))

	case *term.App:
		head, args := term.Spine(t)
		r.write("(")
		r.render(head)
		for _, arg := range args {
			r.write(" ")
			r.render(arg)
		}
		r.write(")")

	case *term.Lam:
		r.renderBinder(t, ":", t.Type, t.Body)

	case *term.Pi:
		r.renderBinder(t, ".", t.Type, t.Body)

	case *term.Fix:
		name := r.binderName(t)
		r.write(name)
		r.write("@")
		r.push(name)
		r.render(t.Body)
		r.pop()

	default:
		panic(fmt.Sprintf("printer: unknown term %T", t))
	}
}

// ( name<sep>TYPE BODY )
func (r *renderer) renderBinder(b term.Binder, sep string, typ, body term.Term) {
	name := r.binderName(b)
	r.write("(")
	r.write(name)
	r.write(sep)
	r.render(typ)
	r.write(" ")
	r.push(name)
	r.render(body)
	r.pop()
	r.write(")")
}

func (r *renderer) binderName(b term.Binder) string {
	return r.names.name(r.annotations[b].NameID)
}

func (r *renderer) varName(index int) string {
	if index < 0 {
		k := -index
		if k <= len(r.free) {
			return r.free[k-1]
		}
		return "f" + strconv.Itoa(k)
	}
	if index < len(r.stack) {
		return r.stack[len(r.stack)-index-1]
	}
	return "v" + strconv.Itoa(index)
}

// captured reports whether name would read back as something else here: an
// enclosing binder or a free variable.
func (r *renderer) captured(name string) bool {
	for _, bound := range r.stack {
		if bound == name {
			return true
		}
	}
	for _, free := range r.free {
		if free == name {
			return true
		}
	}
	return false
}

func (r *renderer) push(name string) {
	r.stack = append(r.stack, name)
}

func (r *renderer) pop() {
	r.stack = r.stack[:len(r.stack)-1]
}
