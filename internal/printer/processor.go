package printer

import (
	"github.com/funvibe/sol/internal/pipeline"
	"github.com/funvibe/sol/internal/scope"
)

// RenderProcessor prints ctx.Term into ctx.Output, naming free variables
// after ctx.Dependencies and keeping binders off ctx.Reserved.
type RenderProcessor struct{}

func (rp *RenderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() || ctx.Term == nil {
		return ctx
	}
	if ctx.Annotations == nil {
		ctx.Annotations = scope.Analyze(ctx.Term)
	}
	p := &Printer{Lookup: ctx.Lookup, FreeNames: ctx.Dependencies, Reserved: ctx.Reserved}
	ctx.Output = p.PrintAnnotated(ctx.Term, ctx.Annotations)
	return ctx
}
