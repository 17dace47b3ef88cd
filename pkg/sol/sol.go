// Package sol reads and prints terms of a small dependently typed calculus.
//
// Source syntax:
//
//	*            the universe
//	x            a variable
//	(f a b)      application, left-associated
//	x:T B        lambda with parameter x of type T
//	x.T B        dependent function type
//	x@B          fixpoint
//	x=V B        let: x stands for V inside B
//
// Characters outside letters, digits, underscore and the symbols above are
// skipped, so `,` and `;` may be used as separators. Terms use de Bruijn
// indices: a bound variable counts the binders between it and its own;
// free variables are -1, -2, ... in order of first appearance.
package sol

import (
	"io"
	"os"

	"github.com/funvibe/sol/internal/printer"
	"github.com/funvibe/sol/internal/reader"
	"github.com/funvibe/sol/internal/term"
)

type (
	Term     = term.Term
	Universe = term.Universe
	Var      = term.Var
	App      = term.App
	Lam      = term.Lam
	Pi       = term.Pi
	Fix      = term.Fix

	// Result is what Parse returns for one term.
	Result = reader.Result

	// Lookup may name a closed subterm for Render.
	Lookup = printer.CombinatorLookup
)

// Parse reads one term starting at byte offset start. Result.EndOffset is
// where the next term, if any, begins.
func Parse(source string, start int) (*Result, error) {
	return reader.Parse(source, start)
}

// Read reads the first term of source.
func Read(source string) (Term, error) {
	return reader.Read(source)
}

// Render prints t. Every closed binder is offered to lookup first; a name
// it returns is printed in place of the binder.
func Render(t Term, lookup Lookup) string {
	return printer.Render(t, lookup)
}

// Show prints t with fresh names for every binder. Free variables print as
// f1, f2, ...
func Show(t Term) string {
	return printer.Show(t)
}

// ShowWithFree prints t naming free variables after deps, as returned in
// Result.Dependencies.
func ShowWithFree(t Term, deps []string) string {
	return printer.ShowWithFree(t, deps)
}

// Print writes Show(t) and a newline to standard output.
func Print(t Term) error {
	return Fprint(os.Stdout, t)
}

// Fprint writes Show(t) and a newline to w.
func Fprint(w io.Writer, t Term) error {
	return printer.Print(w, t)
}

// Equal reports whether a and b are the same term.
func Equal(a, b Term) bool {
	return term.Equal(a, b)
}

// Term constructors.
var (
	NewUniverse = term.NewUniverse
	NewVar      = term.NewVar
	NewApp      = term.NewApp
	NewLam      = term.NewLam
	NewPi       = term.NewPi
	NewFix      = term.NewFix
	Apply       = term.Apply
)
