package parser

import (
	"testing"

	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/lexer"
	"github.com/mustermeiszer/ifc/internal/pipeline"
)

// FuzzParseFile feeds arbitrary bytes through the lexer and parser. The
// invariant under fuzzing is simply that neither stage panics and that a
// file node always comes back, possibly empty and with diagnostics.
func FuzzParseFile(f *testing.F) {
	f.Add("#[interface::definition]\ntrait Pip20 { fn transfer(origin: Self::RuntimeOrigin) -> CallResult; }")
	f.Add("trait T { fn m(x: Select<Self::Currency>); }")
	f.Add("#[interface::weight(T::get() + 1)]")
	f.Add("trait { { { fn")
	f.Add("/// doc\n#[a::b(c")

	f.Fuzz(func(t *testing.T, input string) {
		ctx := &pipeline.PipelineContext{FilePath: "fuzz.ifc", SourceCode: input}
		pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(ctx)

		file, ok := ctx.AstRoot.(*ast.File)
		if !ok || file == nil {
			t.Fatalf("expected a file node, got %T", ctx.AstRoot)
		}
		for _, def := range file.Definitions {
			if def.Name == nil {
				t.Fatal("parsed definition without a name")
			}
		}
	})
}
