package pipeline

import (
	"github.com/funvibe/sol/internal/diagnostics"
	"github.com/funvibe/sol/internal/syntax"
	"github.com/funvibe/sol/internal/term"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext carries the state shared between stages.
type PipelineContext struct {
	SourceCode  string
	FilePath    string
	StartOffset int

	// Aliases seeds the resolver's alias table before the term is read.
	Aliases map[string]syntax.Node

	// Parser output
	AstRoot   syntax.Node
	EndOffset int

	// Resolver output
	Term         term.Term
	Dependencies []string

	// Printer input and output
	Annotations term.Annotations
	Lookup      func(term.Term) (string, bool)
	Reserved    []string
	Output      string

	Errors []*diagnostics.DiagnosticError
}

// HasErrors reports whether any stage has failed.
func (ctx *PipelineContext) HasErrors() bool {
	return len(ctx.Errors) > 0
}

// Err returns the first error, or nil.
func (ctx *PipelineContext) Err() error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}
