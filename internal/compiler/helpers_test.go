package compiler

import (
	"strings"
	"testing"

	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/diagnostics"
	"github.com/mustermeiszer/ifc/internal/lexer"
	"github.com/mustermeiszer/ifc/internal/parser"
	"github.com/mustermeiszer/ifc/internal/pipeline"
)

// parseDef lexes and parses input and returns its first definition. The
// input must be syntactically valid; compile-level errors are the tests'
// business, parse errors are a bug in the test itself.
func parseDef(t *testing.T, input string) *ast.Definition {
	t.Helper()
	ctx := &pipeline.PipelineContext{FilePath: "test.ifc", SourceCode: input}
	pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)

	if len(ctx.Errors) > 0 {
		var msgs []string
		for _, e := range ctx.Errors {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("test input does not parse:\n%s\ninput: %s", strings.Join(msgs, "\n"), input)
	}
	file := ctx.AstRoot.(*ast.File)
	if len(file.Definitions) == 0 {
		t.Fatalf("test input contains no definition: %s", input)
	}
	return file.Definitions[0]
}

// compileDef compiles the first definition of input and fails on any error.
func compileDef(t *testing.T, input string) *Def {
	t.Helper()
	def, err := CompileDefinition(parseDef(t, input))
	if err != nil {
		t.Fatalf("expected successful compilation, got: %s\ninput: %s", err.Error(), input)
	}
	return def
}

// expectDefError asserts that compiling the first definition fails with the
// given code.
func expectDefError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	_, err := CompileDefinition(parseDef(t, input))
	if err == nil {
		t.Fatalf("expected error %s, but compilation succeeded\ninput: %s", code, input)
	}
	if err.Code != code {
		t.Fatalf("expected error %s, got: %s\ninput: %s", code, err.Error(), input)
	}
	return err
}

// expectDefErrorContains additionally asserts on the rendered message.
func expectDefErrorContains(t *testing.T, input string, code diagnostics.ErrorCode, substr string) *diagnostics.DiagnosticError {
	t.Helper()
	err := expectDefError(t, input, code)
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, err.Error())
	}
	return err
}

// callTrait wraps method declarations into a minimal definition without
// selector support.
func callTrait(methods string) string {
	return "#[interface::definition]\ntrait Pip20 {\n" + methods + "\n}"
}

// selectorTrait wraps method declarations into a definition with global
// selector support.
func selectorTrait(methods string) string {
	return "#[interface::definition]\n#[interface::with_selector]\ntrait Pip20 {\n" + methods + "\n}"
}

// pip20Source is a complete definition exercising every feature at once:
// selector-based calls (default and named), an opted-out call, views on both
// selector modes and two selector declarations.
const pip20Source = `
#[interface::definition]
#[interface::with_selector]
/// The Pip20 standard for fungibles.
trait Pip20 {
	/// Transfers amount to dest.
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(T::DbWeight::get().reads(2))]
	fn transfer(origin: Self::RuntimeOrigin, currency: Select<Self::Currency>, dest: Self::AccountId, #[interface::compact] amount: Self::Balance) -> CallResult;

	#[interface::call]
	#[interface::call_index(1)]
	#[interface::weight(0)]
	#[interface::use_selector(RestrictedCurrency)]
	fn approve(origin: Self::RuntimeOrigin, currency: Select<Self::Currency>, recipient: Self::AccountId, amount: Self::Balance) -> CallResult;

	#[interface::call]
	#[interface::call_index(3)]
	#[interface::no_selector]
	#[interface::weight(90)]
	fn burn(origin: Self::RuntimeOrigin, from: Self::AccountId, #[interface::compact] amount: Self::Balance) -> CallResult;

	#[interface::view]
	#[interface::view_index(0)]
	fn balance(currency: Select<Self::Currency>, who: Self::AccountId) -> ViewResult;

	#[interface::view]
	#[interface::view_index(1)]
	#[interface::no_selector]
	fn total_supply(currency: Self::Currency) -> ViewResult;

	#[interface::selector(Currency)]
	#[interface::default_selector]
	fn select_currency(selectable: H256) -> Self::Currency;

	#[interface::selector(RestrictedCurrency)]
	fn select_restricted(selectable: H256) -> Self::Currency;
}
`
