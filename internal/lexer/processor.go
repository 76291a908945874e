package lexer

import (
	"github.com/mustermeiszer/ifc/internal/diagnostics"
	"github.com/mustermeiszer/ifc/internal/pipeline"
	"github.com/mustermeiszer/ifc/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	toks := New(ctx.SourceCode).Tokens()

	for _, tok := range toks {
		if tok.Type == token.ILLEGAL {
			err := diagnostics.NewError(diagnostics.ErrL001, tok, "illegal character", tok.Lexeme)
			err.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, err)
		}
	}

	ctx.TokenStream = toks
	return ctx
}
