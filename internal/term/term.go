package term

// Term is a node of the calculus. The set of implementations is closed:
// Universe, Var, App, Lam, Pi and Fix.
type Term interface {
	termNode()
}

// Binder is a term that introduces one de Bruijn level for its body.
type Binder interface {
	Term
	binderNode()
}

// Universe is the type of types, written `*`.
type Universe struct{}

// Var references a binder by de Bruijn index. Negative indices are free
// variable slots numbered from -1 downward in first-occurrence order.
type Var struct {
	Index int
}

// IsFree reports whether the variable refers to a free-variable slot.
func (v *Var) IsFree() bool { return v.Index < 0 }

// App applies Fun to Arg.
type App struct {
	Fun Term
	Arg Term
}

// Lam is a lambda abstraction; Body sees one extra binder.
type Lam struct {
	Type Term
	Body Term
}

// Pi is a dependent function type; Body sees one extra binder.
type Pi struct {
	Type Term
	Body Term
}

// Fix is a fixpoint; Body refers to the whole Fix at index 0.
type Fix struct {
	Body Term
}

func (*Universe) termNode() {}
func (*Var) termNode()      {}
func (*App) termNode()      {}
func (*Lam) termNode()      {}
func (*Pi) termNode()       {}
func (*Fix) termNode()      {}

func (*Lam) binderNode() {}
func (*Pi) binderNode()  {}
func (*Fix) binderNode() {}

func NewUniverse() *Universe { return &Universe{} }

func NewVar(index int) *Var { return &Var{Index: index} }

func NewApp(fun, arg Term) *App { return &App{Fun: fun, Arg: arg} }

func NewLam(typ, body Term) *Lam { return &Lam{Type: typ, Body: body} }

func NewPi(typ, body Term) *Pi { return &Pi{Type: typ, Body: body} }

func NewFix(body Term) *Fix { return &Fix{Body: body} }

// Apply builds the left-associated application fun a1 a2 ... an.
func Apply(fun Term, args ...Term) Term {
	result := fun
	for _, arg := range args {
		result = NewApp(result, arg)
	}
	return result
}

// Spine splits a chain of applications into its head and arguments in
// written order.
func Spine(t Term) (Term, []Term) {
	var args []Term
	for {
		app, ok := t.(*App)
		if !ok {
			break
		}
		args = append(args, app.Arg)
		t = app.Fun
	}
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	return t, args
}
