// Package reader turns source text into terms: the parser builds a surface
// tree and the resolver converts it to de Bruijn form.
package reader

import (
	"github.com/funvibe/sol/internal/parser"
	"github.com/funvibe/sol/internal/pipeline"
	"github.com/funvibe/sol/internal/resolver"
	"github.com/funvibe/sol/internal/syntax"
	"github.com/funvibe/sol/internal/term"
)

// Result is the outcome of reading one term.
type Result struct {
	Term term.Term
	// Dependencies are the distinct free names in first-occurrence order;
	// name Dependencies[k] is variable -(k+1).
	Dependencies []string
	// EndOffset is the offset just past the consumed text.
	EndOffset int
}

var readPipeline = pipeline.New(
	&parser.ParserProcessor{},
	&resolver.ResolverProcessor{},
)

// Parse reads one term starting at startOffset. The error, if any, is a
// *diagnostics.DiagnosticError.
func Parse(source string, startOffset int) (*Result, error) {
	return ParseWithAliases(source, startOffset, nil)
}

// ParseWithAliases is Parse with names that expand to the given surface
// values wherever no binder or let shadows them.
func ParseWithAliases(source string, startOffset int, aliases map[string]syntax.Node) (*Result, error) {
	ctx := readPipeline.Run(&pipeline.PipelineContext{
		SourceCode:  source,
		StartOffset: startOffset,
		Aliases:     aliases,
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Result{
		Term:         ctx.Term,
		Dependencies: ctx.Dependencies,
		EndOffset:    ctx.EndOffset,
	}, nil
}

// Read parses source from the beginning and drops the dependency list.
func Read(source string) (term.Term, error) {
	res, err := Parse(source, 0)
	if err != nil {
		return nil, err
	}
	return res.Term, nil
}

// ParseSurface runs the parser alone, for callers that keep a term's
// surface form around, such as named definitions.
func ParseSurface(source string) (syntax.Node, int, error) {
	ctx := (&parser.ParserProcessor{}).Process(&pipeline.PipelineContext{SourceCode: source})
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	return ctx.AstRoot, ctx.EndOffset, nil
}
