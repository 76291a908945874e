package compiler

import (
	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/pipeline"
)

// CompilerProcessor compiles every interface definition of a parsed file.
// The compiled IR is kept on the processor: downstream consumers (codegen,
// the CLI) read Defs after the pipeline has run.
type CompilerProcessor struct {
	Defs []*Def
}

func (cp *CompilerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous stages failed, don't compile.
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}
	file, ok := ctx.AstRoot.(*ast.File)
	if !ok {
		return ctx
	}

	for _, def := range file.Definitions {
		if !IsDefinition(def) {
			continue
		}
		compiled, err := CompileDefinition(def)
		if err != nil {
			if err.File == "" {
				err.File = ctx.FilePath
			}
			for _, rel := range err.Related {
				if rel.File == "" {
					rel.File = ctx.FilePath
				}
			}
			ctx.Errors = append(ctx.Errors, err)
			continue
		}
		cp.Defs = append(cp.Defs, compiled)
	}

	return ctx
}
