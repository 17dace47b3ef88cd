package prettyprinter

import (
	"bytes"

	"github.com/funvibe/sol/internal/syntax"
)

// --- Code Printer (output looks like source code) ---

// CodePrinter prints a surface tree back as source, keeping the names and
// lets as written. Separators are normalized to single spaces.
type CodePrinter struct {
	buf bytes.Buffer
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) VisitUniverse(n *syntax.Universe) {
	p.write("*")
}

func (p *CodePrinter) VisitRef(n *syntax.Ref) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitApp(n *syntax.App) {
	p.write("(")
	n.Fun.Accept(p)
	for _, arg := range n.Args {
		p.write(" ")
		arg.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitLam(n *syntax.Lam) {
	p.binder(n.Name, ":", n.Type, n.Body)
}

func (p *CodePrinter) VisitPi(n *syntax.Pi) {
	p.binder(n.Name, ".", n.Type, n.Body)
}

func (p *CodePrinter) binder(name, sep string, typ, body syntax.Node) {
	p.write("(")
	p.write(name)
	p.write(sep)
	typ.Accept(p)
	p.write(" ")
	body.Accept(p)
	p.write(")")
}

func (p *CodePrinter) VisitFix(n *syntax.Fix) {
	p.write(n.Name)
	p.write("@")
	n.Body.Accept(p)
}

func (p *CodePrinter) VisitLet(n *syntax.Let) {
	p.write(n.Name)
	p.write("=")
	n.Value.Accept(p)
	p.write(" ")
	n.Body.Accept(p)
}
