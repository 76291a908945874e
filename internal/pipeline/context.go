package pipeline

import (
	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/diagnostics"
	"github.com/mustermeiszer/ifc/internal/token"
)

// PipelineContext carries one source file through the stages. Each processor
// reads the fields filled by earlier stages and appends its diagnostics to
// Errors; stage-specific outputs beyond these live on the processors
// themselves.
type PipelineContext struct {
	FilePath   string
	SourceCode string

	TokenStream []token.Token // set by the lexer stage
	AstRoot     ast.Node      // set by the parser stage

	Errors []*diagnostics.DiagnosticError
}
