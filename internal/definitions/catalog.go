// Package definitions keeps named closed terms. A catalog serves two ends:
// its names expand as aliases when reading, and its Lookup puts the names
// back when printing.
package definitions

import (
	"fmt"
	"strings"

	"github.com/funvibe/sol/internal/config"
	"github.com/funvibe/sol/internal/lexer"
	"github.com/funvibe/sol/internal/printer"
	"github.com/funvibe/sol/internal/reader"
	"github.com/funvibe/sol/internal/syntax"
	"github.com/funvibe/sol/internal/term"
	"github.com/funvibe/sol/internal/token"
)

// Definition is one named term.
type Definition struct {
	Name   string
	Source string
	Term   term.Term
	// Text is the canonical printed form.
	Text string
}

// Catalog is an ordered set of definitions. It is not safe for concurrent
// mutation; once built it may be read from many goroutines.
type Catalog struct {
	defs    []*Definition
	byName  map[string]*Definition
	byShape map[uint64][]*Definition
	aliases map[string]syntax.Node
}

func New() *Catalog {
	return &Catalog{
		byName:  make(map[string]*Definition),
		byShape: make(map[uint64][]*Definition),
		aliases: make(map[string]syntax.Node),
	}
}

// FromConfig adds the definitions of cfg in order.
func FromConfig(cfg *config.Config) (*Catalog, error) {
	c := New()
	for _, d := range cfg.Definitions {
		if err := c.Add(d.Name, d.Source); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add reads source and stores it under name. Earlier definitions may be
// mentioned by name; anything else left free is an error.
func (c *Catalog) Add(name, source string) error {
	if !config.IsIdentifier(name) {
		return fmt.Errorf("definition %q: name is not an identifier", name)
	}
	if _, exists := c.byName[name]; exists {
		return fmt.Errorf("definition %q: already defined", name)
	}

	surface, _, err := reader.ParseSurface(source)
	if err != nil {
		return fmt.Errorf("definition %q: %w", name, err)
	}
	res, err := reader.ParseWithAliases(source, 0, c.aliases)
	if err != nil {
		return fmt.Errorf("definition %q: %w", name, err)
	}
	if len(res.Dependencies) > 0 {
		return fmt.Errorf("definition %q: not closed, free names: %s", name, strings.Join(res.Dependencies, ", "))
	}
	if tok := lexer.NewAt(source, res.EndOffset).NextToken(); tok.Type != token.EOF {
		return fmt.Errorf("definition %q: unexpected %q after the term at %d:%d", name, tok.Lexeme, tok.Line, tok.Column)
	}

	def := &Definition{
		Name:   name,
		Source: source,
		Term:   res.Term,
		Text:   printer.Show(res.Term),
	}
	c.defs = append(c.defs, def)
	c.byName[name] = def
	key := shape(def.Term)
	c.byShape[key] = append(c.byShape[key], def)
	c.aliases[name] = surface
	return nil
}

// Lookup names t if it is structurally equal to a definition. The first
// definition added wins when several are equal. It has the shape of
// printer.CombinatorLookup.
func (c *Catalog) Lookup(t term.Term) (string, bool) {
	if c == nil || len(c.byShape) == 0 {
		return "", false
	}
	for _, def := range c.byShape[shape(t)] {
		if term.Equal(def.Term, t) {
			return def.Name, true
		}
	}
	return "", false
}

// Get returns the definition called name.
func (c *Catalog) Get(name string) (*Definition, bool) {
	if c == nil {
		return nil, false
	}
	def, ok := c.byName[name]
	return def, ok
}

// Names lists definition names in the order they were added.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.defs))
	for i, def := range c.defs {
		names[i] = def.Name
	}
	return names
}

// Aliases returns the surface forms of all definitions, for
// reader.ParseWithAliases.
func (c *Catalog) Aliases() map[string]syntax.Node {
	if c == nil {
		return nil
	}
	out := make(map[string]syntax.Node, len(c.aliases))
	for name, node := range c.aliases {
		out[name] = node
	}
	return out
}

// Len reports the number of definitions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.defs)
}
