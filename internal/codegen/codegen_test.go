package codegen

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/mustermeiszer/ifc/internal/compiler"
	"github.com/mustermeiszer/ifc/internal/lexer"
	"github.com/mustermeiszer/ifc/internal/parser"
	"github.com/mustermeiszer/ifc/internal/pipeline"
)

func compileDefs(t *testing.T, input string) []*compiler.Def {
	t.Helper()
	ctx := &pipeline.PipelineContext{FilePath: "test.ifc", SourceCode: input}
	cp := &compiler.CompilerProcessor{}
	pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}, cp).Run(ctx)
	if len(ctx.Errors) > 0 {
		var msgs []string
		for _, e := range ctx.Errors {
			msgs = append(msgs, e.Error())
		}
		t.Fatalf("test input does not compile:\n%s", strings.Join(msgs, "\n"))
	}
	return cp.Defs
}

// normalize collapses intra-line whitespace so the comparison is independent
// of gofmt alignment decisions.
func normalize(src string) string {
	var lines []string
	for _, line := range strings.Split(src, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, strings.Join(fields, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}

// expectGenerated compares normalized generated output against want, printing
// a unified diff on mismatch.
func expectGenerated(t *testing.T, defs []*compiler.Def, pkg, want string) {
	t.Helper()
	got, err := Generate(defs, pkg)
	if err != nil {
		t.Fatalf("generate: %s", err)
	}
	gotNorm, wantNorm := normalize(string(got)), normalize(want)
	if gotNorm != wantNorm {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(wantNorm),
			B:        difflib.SplitLines(gotNorm),
			FromFile: "want",
			ToFile:   "got",
			Context:  3,
		})
		t.Errorf("generated output differs:\n%s", diff)
	}
}

func TestGenerateMinimalTable(t *testing.T) {
	defs := compileDefs(t, `
#[interface::definition]
trait Wallet {
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn ping(origin: Self::RuntimeOrigin) -> CallResult;
}
`)
	expectGenerated(t, defs, "wallet", `
// Code generated by ifc. DO NOT EDIT.

package wallet

import "github.com/mustermeiszer/ifc/pkg/dispatch"

var Wallet = dispatch.Table{
	Name: "Wallet",
	Calls: []dispatch.CallMeta{
		{
			Index:  0,
			Name:   "ping",
			Weight: "10",
		},
	},
}
`)
}

func TestGenerateFullTable(t *testing.T) {
	defs := compileDefs(t, `
#[interface::definition]
#[interface::with_selector]
/// A fungible standard.
trait Pip20 {
	/// Transfers amount to dest.
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(T::DbWeight::get().reads(2))]
	fn transfer(origin: Self::RuntimeOrigin, currency: Select<Self::Currency>, dest: Self::AccountId, #[interface::compact] amount: Self::Balance) -> CallResult;

	#[interface::call]
	#[interface::call_index(1)]
	#[interface::weight(20)]
	#[interface::use_selector(RestrictedCurrency)]
	fn approve(origin: Self::RuntimeOrigin, currency: Select<Self::Currency>, amount: Self::Balance) -> CallResult;

	#[interface::view]
	#[interface::view_index(0)]
	#[interface::no_selector]
	fn total_supply(currency: Self::Currency) -> ViewResult;

	#[interface::selector(Currency)]
	#[interface::default_selector]
	fn select_currency(selectable: H256) -> Self::Currency;

	#[interface::selector(RestrictedCurrency)]
	fn select_restricted(selectable: H256) -> Self::Currency;
}
`)
	got, err := Generate(defs, "pip20")
	if err != nil {
		t.Fatalf("generate: %s", err)
	}
	src := string(got)

	for _, want := range []string{
		"// A fungible standard.",
		"var Pip20 = dispatch.Table{",
		`Weight: "T::DbWeight::get().reads(2)",`,
		"Selector: &dispatch.SelectorMeta{Kind: dispatch.SelectorDefault, ReturnType: \"Self::Currency\"},",
		"Selector: &dispatch.SelectorMeta{Kind: dispatch.SelectorNamed, Name: \"RestrictedCurrency\", ReturnType: \"Self::Currency\"},",
		`{Name: "dest", Type: "Runtime::AccountId", Compact: false},`,
		`{Name: "amount", Type: "Runtime::Balance", Compact: true},`,
		"Views: []dispatch.ViewMeta{",
		`Name: "total_supply",`,
		`"Transfers amount to dest.",`,
	} {
		if !strings.Contains(normalize(src), normalize(want)) {
			t.Errorf("generated output misses %q:\n%s", want, src)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	defs := compileDefs(t, `
#[interface::definition]
trait Wallet {
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn ping(origin: Self::RuntimeOrigin) -> CallResult;
}
`)
	first, err := Generate(defs, "wallet")
	if err != nil {
		t.Fatalf("generate: %s", err)
	}
	second, err := Generate(defs, "wallet")
	if err != nil {
		t.Fatalf("generate: %s", err)
	}
	if string(first) != string(second) {
		t.Error("generation is not deterministic")
	}
}

func TestGenerateEmptyDefs(t *testing.T) {
	got, err := Generate(nil, "empty")
	if err != nil {
		t.Fatalf("generate: %s", err)
	}
	src := string(got)
	if !strings.Contains(src, "package empty") {
		t.Errorf("expected a package clause, got:\n%s", src)
	}
	// The dispatch import is unused and dropped by the formatter.
	if strings.Contains(src, "dispatch") {
		t.Errorf("expected the unused import to be pruned, got:\n%s", src)
	}
}
