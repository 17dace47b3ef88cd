package prettyprinter

import (
	"bytes"
	"fmt"

	"github.com/funvibe/sol/internal/syntax"
)

// --- Tree Printer (AST structure, one node per line) ---

type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) line(format string, args ...any) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *TreePrinter) children(nodes ...syntax.Node) {
	p.indent++
	for _, n := range nodes {
		n.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitUniverse(n *syntax.Universe) {
	p.line("Universe")
}

func (p *TreePrinter) VisitRef(n *syntax.Ref) {
	p.line("Ref %s", n.Name)
}

func (p *TreePrinter) VisitApp(n *syntax.App) {
	p.line("App")
	p.children(append([]syntax.Node{n.Fun}, n.Args...)...)
}

func (p *TreePrinter) VisitLam(n *syntax.Lam) {
	p.line("Lam %s", n.Name)
	p.children(n.Type, n.Body)
}

func (p *TreePrinter) VisitPi(n *syntax.Pi) {
	p.line("Pi %s", n.Name)
	p.children(n.Type, n.Body)
}

func (p *TreePrinter) VisitFix(n *syntax.Fix) {
	p.line("Fix %s", n.Name)
	p.children(n.Body)
}

func (p *TreePrinter) VisitLet(n *syntax.Let) {
	p.line("Let %s", n.Name)
	p.children(n.Value, n.Body)
}
