package resolver

import "github.com/funvibe/sol/internal/pipeline"

type ResolverProcessor struct{}

func (rp *ResolverProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() || ctx.AstRoot == nil {
		return ctx
	}
	ctx.Term, ctx.Dependencies = New().WithAliases(ctx.Aliases).Resolve(ctx.AstRoot)
	return ctx
}
