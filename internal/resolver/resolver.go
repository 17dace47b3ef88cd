package resolver

import (
	"fmt"

	"github.com/funvibe/sol/internal/syntax"
	"github.com/funvibe/sol/internal/term"
)

// aliasFrame is one let-binding. Frames form a chain from innermost to
// outermost; a let only extends the chain for its own body.
type aliasFrame struct {
	name      string
	value     syntax.Node
	parent    *aliasFrame
	expanding bool
}

func (f *aliasFrame) lookup(name string) *aliasFrame {
	for frame := f; frame != nil; frame = frame.parent {
		if frame.name == name && !frame.expanding {
			return frame
		}
	}
	return nil
}

// Resolver turns a surface tree into a de Bruijn term. A Resolver holds the
// binder stack, alias chain and free-variable registry of a single read and
// must not be reused.
type Resolver struct {
	binders []string // innermost last
	aliases *aliasFrame
	free    map[string]int
	deps    []string
}

func New() *Resolver {
	return &Resolver{free: make(map[string]int)}
}

// WithAliases makes the given names expand to their values anywhere in the
// term, unless a binder or a nearer let shadows them.
func (r *Resolver) WithAliases(aliases map[string]syntax.Node) *Resolver {
	for name, value := range aliases {
		r.aliases = &aliasFrame{name: name, value: value, parent: r.aliases}
	}
	return r
}

// Resolve converts n and returns it with the free variable names in
// first-occurrence order.
func (r *Resolver) Resolve(n syntax.Node) (term.Term, []string) {
	t := r.resolve(n)
	return t, r.deps
}

func (r *Resolver) resolve(n syntax.Node) term.Term {
	switch n := n.(type) {
	case *syntax.Universe:
		return term.NewUniverse()

	case *syntax.Ref:
		return r.resolveRef(n.Name)

	case *syntax.App:
		fun := r.resolve(n.Fun)
		for _, arg := range n.Args {
			fun = term.NewApp(fun, r.resolve(arg))
		}
		return fun

	case *syntax.Lam:
		typ := r.resolve(n.Type)
		return term.NewLam(typ, r.resolveUnder(n.Name, n.Body))

	case *syntax.Pi:
		typ := r.resolve(n.Type)
		return term.NewPi(typ, r.resolveUnder(n.Name, n.Body))

	case *syntax.Fix:
		return term.NewFix(r.resolveUnder(n.Name, n.Body))

	case *syntax.Let:
		saved := r.aliases
		r.aliases = &aliasFrame{name: n.Name, value: n.Value, parent: saved}
		body := r.resolve(n.Body)
		r.aliases = saved
		return body

	default:
		panic(fmt.Sprintf("resolver: unknown node %T", n))
	}
}

func (r *Resolver) resolveUnder(name string, body syntax.Node) term.Term {
	r.binders = append(r.binders, name)
	t := r.resolve(body)
	r.binders = r.binders[:len(r.binders)-1]
	return t
}

// resolveRef looks a name up in the binder stack, then the alias chain,
// then the free-variable registry.
func (r *Resolver) resolveRef(name string) term.Term {
	depth := len(r.binders)
	for pos := depth - 1; pos >= 0; pos-- {
		if r.binders[pos] == name {
			return term.NewVar(depth - pos - 1)
		}
	}

	// The alias value is resolved here, against the binders in scope at
	// the reference. It cannot see itself while it expands.
	if frame := r.aliases.lookup(name); frame != nil {
		frame.expanding = true
		t := r.resolve(frame.value)
		frame.expanding = false
		return t
	}

	index, ok := r.free[name]
	if !ok {
		r.deps = append(r.deps, name)
		index = -len(r.deps)
		r.free[name] = index
	}
	return term.NewVar(index)
}
