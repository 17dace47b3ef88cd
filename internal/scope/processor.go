package scope

import "github.com/funvibe/sol/internal/pipeline"

type AnalyzerProcessor struct{}

func (ap *AnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.HasErrors() || ctx.Term == nil {
		return ctx
	}
	ctx.Annotations = Analyze(ctx.Term)
	return ctx
}
