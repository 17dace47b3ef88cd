// Package scope assigns display names to binders before printing.
//
// Every subterm is summarized by a descriptor: the references that escape
// it, grouped by how many binders above the subterm they point (relative
// depth), each with the set of display ids already taken by binders the
// reference crosses on its way out. A binder picks the smallest id its own
// references do not cross, so two binders visible at the same point never
// print with the same name and ids are reused as soon as possible.
package scope

import (
	"fmt"

	"github.com/funvibe/sol/internal/term"
)

type entry struct {
	depth int
	used  idSet
}

// descriptor is ordered by depth. Free variables have negative depths and
// never reach zero.
type descriptor []entry

// Analyze annotates every binder in t. The term is not modified.
func Analyze(t term.Term) term.Annotations {
	a := &analyzer{annotations: make(term.Annotations)}
	a.scope(t)
	return a.annotations
}

type analyzer struct {
	annotations term.Annotations
}

func (a *analyzer) scope(t term.Term) descriptor {
	switch t := t.(type) {
	case *term.Universe:
		return nil
	case *term.Var:
		return descriptor{{depth: t.Index}}
	case *term.App:
		head, args := term.Spine(t)
		d := a.scope(head)
		for _, arg := range args {
			d = merge(d, a.scope(arg))
		}
		return d
	case *term.Lam:
		id, escaping := bind(a.scope(t.Body))
		result := merge(a.scope(t.Type), escaping)
		a.annotations[t] = term.Annotation{NameID: id, Closed: len(result) == 0}
		return result
	case *term.Pi:
		id, escaping := bind(a.scope(t.Body))
		result := merge(a.scope(t.Type), escaping)
		a.annotations[t] = term.Annotation{NameID: id, Closed: len(result) == 0}
		return result
	case *term.Fix:
		id, escaping := bind(a.scope(t.Body))
		a.annotations[t] = term.Annotation{NameID: id, Closed: len(escaping) == 0}
		return escaping
	default:
		panic(fmt.Sprintf("scope: unknown term %T", t))
	}
}

// merge joins two descriptors, uniting the used sets of entries at the same
// depth.
func merge(a, b descriptor) descriptor {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(descriptor, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case i == len(a):
			out = append(out, b[j])
			j++
		case j == len(b):
			out = append(out, a[i])
			i++
		case a[i].depth < b[j].depth:
			out = append(out, a[i])
			i++
		case b[j].depth < a[i].depth:
			out = append(out, b[j])
			j++
		default:
			out = append(out, entry{depth: a[i].depth, used: a[i].used.union(b[j].used)})
			i++
			j++
		}
	}
	return out
}

// bind chooses the display id for a binder whose body has descriptor d and
// returns what escapes past the binder.
func bind(d descriptor) (int, descriptor) {
	bound := -1
	for i, e := range d {
		if e.depth == 0 {
			bound = i
			break
		}
		if e.depth > 0 {
			break
		}
	}

	var id int
	if bound >= 0 {
		id = d[bound].used.minAbsent()
	} else {
		// Unreferenced: any id works, since every reference that crosses
		// this binder records it below. Take one distinct from the binders
		// those references already cross.
		var all idSet
		for _, e := range d {
			all = all.union(e.used)
		}
		id = all.minAbsent()
	}

	out := make(descriptor, 0, len(d))
	for i, e := range d {
		if i == bound {
			continue
		}
		out = append(out, entry{depth: e.depth - 1, used: e.used.with(id)})
	}
	return id, out
}
