package definitions

import "github.com/funvibe/sol/internal/term"

// shapeDepth is how many levels of a term its shape looks at. Bounding it
// keeps a lookup's cost independent of how large the offered term is.
const shapeDepth = 6

// shape hashes the top levels of t. Equal terms have equal shapes; terms
// with equal shapes still have to be compared with term.Equal.
func shape(t term.Term) uint64 {
	return mixShape(14695981039346656037, t, shapeDepth)
}

func mixShape(h uint64, t term.Term, depth int) uint64 {
	mix := func(v uint64) {
		h ^= v
		h *= 1099511628211
	}
	if depth == 0 {
		return h
	}
	switch t := t.(type) {
	case *term.Universe:
		mix(1)
	case *term.Var:
		mix(2)
		mix(uint64(int64(t.Index)))
	case *term.App:
		mix(3)
		h = mixShape(h, t.Fun, depth-1)
		h = mixShape(h, t.Arg, depth-1)
	case *term.Lam:
		mix(4)
		h = mixShape(h, t.Type, depth-1)
		h = mixShape(h, t.Body, depth-1)
	case *term.Pi:
		mix(5)
		h = mixShape(h, t.Type, depth-1)
		h = mixShape(h, t.Body, depth-1)
	case *term.Fix:
		mix(6)
		h = mixShape(h, t.Body, depth-1)
	}
	return h
}
