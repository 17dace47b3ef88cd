package parser

import (
	"errors"

	"github.com/funvibe/sol/internal/diagnostics"
	"github.com/funvibe/sol/internal/lexer"
	"github.com/funvibe/sol/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() {
		return ctx
	}

	p := New(lexer.NewAt(ctx.SourceCode, ctx.StartOffset))
	root, err := p.ParseTerm()
	if err != nil {
		var de *diagnostics.DiagnosticError
		if errors.As(err, &de) {
			de.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, de)
		}
		return ctx
	}

	ctx.AstRoot = root
	ctx.EndOffset = p.EndOffset()
	return ctx
}
