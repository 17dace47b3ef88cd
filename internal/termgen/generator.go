// Package termgen produces random source text and random terms for fuzz
// and property tests.
package termgen

import (
	"math/rand"
	"strings"

	"github.com/funvibe/sol/internal/term"
)

// RandomSource abstracts the source of randomness.
type RandomSource interface {
	Intn(n int) int
}

// RandSource wraps math/rand.
type RandSource struct {
	*rand.Rand
}

// ByteSource uses a byte slice as a source of randomness, so a fuzzer's
// input steers generation. Once the data runs out every choice is 0.
type ByteSource struct {
	data []byte
	pos  int
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

// Generator generates random terms.
type Generator struct {
	src   RandomSource
	depth int
	scope []string // names bound at the current point, innermost last
	names []string
	free  []string
}

const MaxDepth = 6

func New(seed int64) *Generator {
	return &Generator{
		src:   &RandSource{rand.New(rand.NewSource(seed))},
		names: []string{"x", "y", "A", "B", "loop"},
		free:  []string{"f", "g", "Nat", "zero"},
	}
}

func NewFromData(data []byte) *Generator {
	return &Generator{
		src:   &ByteSource{data: data},
		names: []string{"x", "y", "A", "B", "loop"},
		free:  []string{"f", "g", "Nat", "zero"},
	}
}

// GenerateSource returns the text of one well-formed term. It may mention
// free names and may use lets.
func (g *Generator) GenerateSource() string {
	var sb strings.Builder
	sb.WriteString(g.GenerateNoise())
	g.writeTerm(&sb)
	sb.WriteString(g.GenerateNoise())
	return sb.String()
}

// GenerateNoise returns separator characters, which the reader skips.
func (g *Generator) GenerateNoise() string {
	if g.src.Intn(4) != 0 {
		return ""
	}

	var sb strings.Builder
	count := g.src.Intn(3) + 1
	for i := 0; i < count; i++ {
		switch g.src.Intn(5) {
		case 0:
			sb.WriteString(" ")
		case 1:
			sb.WriteString("\t")
		case 2:
			sb.WriteString("\n")
		case 3:
			sb.WriteString(",")
		case 4:
			sb.WriteString(";")
		}
	}
	return sb.String()
}

// space separates two tokens.
func (g *Generator) space(sb *strings.Builder) {
	sb.WriteString(" ")
	sb.WriteString(g.GenerateNoise())
}

func (g *Generator) writeTerm(sb *strings.Builder) {
	if g.depth >= MaxDepth {
		g.writeLeaf(sb)
		return
	}
	g.depth++
	defer func() { g.depth-- }()

	switch g.src.Intn(8) {
	case 0, 1:
		g.writeLeaf(sb)
	case 2:
		sb.WriteString("(")
		g.writeTerm(sb)
		for n := g.src.Intn(3) + 1; n > 0; n-- {
			g.space(sb)
			g.writeTerm(sb)
		}
		sb.WriteString(")")
	case 3, 4:
		g.writeBinder(sb, ":")
	case 5:
		g.writeBinder(sb, ".")
	case 6:
		name := g.pickName()
		sb.WriteString(name + "@")
		g.under(name, func() { g.writeTerm(sb) })
	case 7:
		// Let values see the enclosing scope only.
		sb.WriteString(g.pickName() + "=")
		g.writeTerm(sb)
		g.space(sb)
		g.writeTerm(sb)
	}
}

func (g *Generator) writeBinder(sb *strings.Builder, marker string) {
	name := g.pickName()
	sb.WriteString("(" + name + marker)
	g.writeTerm(sb)
	g.space(sb)
	g.under(name, func() { g.writeTerm(sb) })
	sb.WriteString(")")
}

func (g *Generator) writeLeaf(sb *strings.Builder) {
	switch {
	case g.src.Intn(4) == 0:
		sb.WriteString("*")
	case len(g.scope) > 0 && g.src.Intn(3) > 0:
		sb.WriteString(g.scope[len(g.scope)-1-g.src.Intn(len(g.scope))])
	default:
		sb.WriteString(g.free[g.src.Intn(len(g.free))])
	}
}

func (g *Generator) pickName() string {
	return g.names[g.src.Intn(len(g.names))]
}

func (g *Generator) under(name string, fn func()) {
	g.scope = append(g.scope, name)
	fn()
	g.scope = g.scope[:len(g.scope)-1]
}

// GenerateClosed returns a term whose indices all point at enclosing
// binders.
func (g *Generator) GenerateClosed() term.Term {
	return g.closed(0, MaxDepth)
}

func (g *Generator) closed(bound, fuel int) term.Term {
	if fuel <= 0 {
		if bound > 0 && g.src.Intn(3) > 0 {
			return term.NewVar(g.src.Intn(bound))
		}
		return term.NewUniverse()
	}
	switch g.src.Intn(6) {
	case 0:
		if bound > 0 {
			return term.NewVar(g.src.Intn(bound))
		}
		return term.NewUniverse()
	case 1:
		return term.NewApp(g.closed(bound, fuel-1), g.closed(bound, fuel-2))
	case 2:
		return term.NewLam(g.closed(bound, fuel-2), g.closed(bound+1, fuel-1))
	case 3:
		return term.NewPi(g.closed(bound, fuel-2), g.closed(bound+1, fuel-1))
	case 4:
		return term.NewFix(g.closed(bound+1, fuel-1))
	default:
		return term.Apply(g.closed(bound, fuel-1), g.closed(bound, fuel-1), g.closed(bound, fuel-1))
	}
}
