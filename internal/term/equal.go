package term

import "fmt"

// Equal reports whether a and b have the same structure and indices.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case *Universe:
		_, ok := b.(*Universe)
		return ok
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Index == y.Index
	case *App:
		y, ok := b.(*App)
		return ok && Equal(x.Fun, y.Fun) && Equal(x.Arg, y.Arg)
	case *Lam:
		y, ok := b.(*Lam)
		return ok && Equal(x.Type, y.Type) && Equal(x.Body, y.Body)
	case *Pi:
		y, ok := b.(*Pi)
		return ok && Equal(x.Type, y.Type) && Equal(x.Body, y.Body)
	case *Fix:
		y, ok := b.(*Fix)
		return ok && Equal(x.Body, y.Body)
	case nil:
		return b == nil
	default:
		panic(fmt.Sprintf("term: unknown node %T", a))
	}
}

// Dump renders a term with raw indices, e.g. Lam(*, Var(0)). Used in test
// failure messages and debugging output.
func Dump(t Term) string {
	switch x := t.(type) {
	case *Universe:
		return "*"
	case *Var:
		return fmt.Sprintf("Var(%d)", x.Index)
	case *App:
		return fmt.Sprintf("App(%s, %s)", Dump(x.Fun), Dump(x.Arg))
	case *Lam:
		return fmt.Sprintf("Lam(%s, %s)", Dump(x.Type), Dump(x.Body))
	case *Pi:
		return fmt.Sprintf("Pi(%s, %s)", Dump(x.Type), Dump(x.Body))
	case *Fix:
		return fmt.Sprintf("Fix(%s)", Dump(x.Body))
	case nil:
		return "<nil>"
	default:
		panic(fmt.Sprintf("term: unknown node %T", t))
	}
}
