// Package syntax holds the surface tree built by the parser: binders still
// carry their written names and references are unresolved.
package syntax

import "github.com/funvibe/sol/internal/token"

// Node is the base interface for all surface nodes.
type Node interface {
	Accept(v Visitor)
	GetToken() token.Token
	syntaxNode()
}

type Visitor interface {
	VisitUniverse(n *Universe)
	VisitRef(n *Ref)
	VisitApp(n *App)
	VisitLam(n *Lam)
	VisitPi(n *Pi)
	VisitFix(n *Fix)
	VisitLet(n *Let)
}

// Universe is the literal `*`.
type Universe struct {
	Token token.Token
}

// Ref is a bare identifier. It resolves to a binder, an alias or a free
// variable.
type Ref struct {
	Token token.Token
	Name  string
}

// App is `( Fun Args... )`.
type App struct {
	Token token.Token // the '(' token
	Fun   Node
	Args  []Node
}

// Lam is `name:Type Body`.
type Lam struct {
	Token token.Token // the binder name
	Name  string
	Type  Node
	Body  Node
}

// Pi is `name.Type Body`.
type Pi struct {
	Token token.Token
	Name  string
	Type  Node
	Body  Node
}

// Fix is `name@Body`.
type Fix struct {
	Token token.Token
	Name  string
	Body  Node
}

// Let is `name=Value Body`. Value is expanded wherever Name is referenced
// inside Body.
type Let struct {
	Token token.Token
	Name  string
	Value Node
	Body  Node
}

func (n *Universe) Accept(v Visitor) { v.VisitUniverse(n) }
func (n *Ref) Accept(v Visitor)      { v.VisitRef(n) }
func (n *App) Accept(v Visitor)      { v.VisitApp(n) }
func (n *Lam) Accept(v Visitor)      { v.VisitLam(n) }
func (n *Pi) Accept(v Visitor)       { v.VisitPi(n) }
func (n *Fix) Accept(v Visitor)      { v.VisitFix(n) }
func (n *Let) Accept(v Visitor)      { v.VisitLet(n) }

func (n *Universe) GetToken() token.Token { return n.Token }
func (n *Ref) GetToken() token.Token      { return n.Token }
func (n *App) GetToken() token.Token      { return n.Token }
func (n *Lam) GetToken() token.Token      { return n.Token }
func (n *Pi) GetToken() token.Token       { return n.Token }
func (n *Fix) GetToken() token.Token      { return n.Token }
func (n *Let) GetToken() token.Token      { return n.Token }

func (*Universe) syntaxNode() {}
func (*Ref) syntaxNode()      {}
func (*App) syntaxNode()      {}
func (*Lam) syntaxNode()      {}
func (*Pi) syntaxNode()       {}
func (*Fix) syntaxNode()      {}
func (*Let) syntaxNode()      {}
