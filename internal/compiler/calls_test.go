package compiler

import (
	"strings"
	"testing"

	"github.com/mustermeiszer/ifc/internal/diagnostics"
)

// ---------------------------------------------------------------------------
// C001 — item and parameter shape
// ---------------------------------------------------------------------------

func TestC001_CallWithoutParams(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer() -> CallResult;
`), diagnostics.ErrC001, "at least the origin argument")
}

func TestC001_CallWithReceiver(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(self: Self) -> CallResult;
`), diagnostics.ErrC001, "must be a typed argument")
}

// ---------------------------------------------------------------------------
// C002/C003 — origin and return types
// ---------------------------------------------------------------------------

func TestC002_WrongOriginType(t *testing.T) {
	for _, origin := range []string{"RuntimeOrigin", "Self", "Runtime::Origin", "Self::Origin"} {
		expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(origin: `+origin+`) -> CallResult;
`), diagnostics.ErrC002, "expected `Self::RuntimeOrigin`")
	}
}

func TestC003_MissingReturn(t *testing.T) {
	expectDefError(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin);
`), diagnostics.ErrC003)
}

func TestC003_WrongReturn(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin) -> DispatchResult;
`), diagnostics.ErrC003, "expected `CallResult`, got DispatchResult")
}

// ---------------------------------------------------------------------------
// C004/C005 — weight and call_index cardinality
// ---------------------------------------------------------------------------

func TestC004_MissingWeight(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`), diagnostics.ErrC004, "requires a weight attribute")
}

func TestC004_TooManyWeights(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	#[interface::weight(20)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`), diagnostics.ErrC004, "too many weight attributes")
}

func TestC005_MissingCallIndex(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`), diagnostics.ErrC005, "requires a call_index attribute")
}

func TestC005_TooManyCallIndices(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::call_index(1)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`), diagnostics.ErrC005, "too many call_index attributes")
}

// ---------------------------------------------------------------------------
// C006 — conflicting call indices
// ---------------------------------------------------------------------------

func TestC006_DuplicateCallIndex(t *testing.T) {
	err := expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(1)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;

	#[interface::call]
	#[interface::call_index(1)]
	#[interface::weight(10)]
	fn approve(origin: Self::RuntimeOrigin) -> CallResult;
`), diagnostics.ErrC006, "both functions transfer and approve are at index 1")

	// The diagnostic points at both declarations.
	if len(err.Related) != 1 {
		t.Fatalf("expected one related location, got %d", len(err.Related))
	}
	if err.Related[0].Code != diagnostics.ErrC006 {
		t.Errorf("expected related C006, got %s", err.Related[0].Code)
	}
	if err.Token.Line == err.Related[0].Token.Line {
		t.Error("expected the two locations to point at different lines")
	}
}

func TestC006_RejectedCallIsNotAppended(t *testing.T) {
	def := parseDef(t, callTrait(`
	#[interface::call]
	#[interface::call_index(1)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;

	#[interface::call]
	#[interface::call_index(1)]
	#[interface::weight(10)]
	fn approve(origin: Self::RuntimeOrigin) -> CallResult;
`))

	calls, err := CompileCall(nil, false, def.GetToken(), def.Methods[0])
	if err != nil {
		t.Fatalf("first fold failed: %s", err.Error())
	}
	if len(calls.Calls) != 1 {
		t.Fatalf("expected 1 call after first fold, got %d", len(calls.Calls))
	}

	after, err := CompileCall(calls, false, def.GetToken(), def.Methods[1])
	if err == nil {
		t.Fatal("expected the second fold to fail")
	}
	if after != calls || len(after.Calls) != 1 {
		t.Errorf("expected the table to be returned unchanged, got %d calls", len(after.Calls))
	}
}

func TestDistinctIndicesAccumulateInSourceOrder(t *testing.T) {
	def := compileDef(t, callTrait(`
	#[interface::call]
	#[interface::call_index(7)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;

	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn approve(origin: Self::RuntimeOrigin) -> CallResult;
`))
	calls := def.Calls.Calls
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	if calls[0].Name != "transfer" || calls[0].CallIndex != 7 {
		t.Errorf("unexpected first entry: %s at %d", calls[0].Name, calls[0].CallIndex)
	}
	if calls[1].Name != "approve" || calls[1].CallIndex != 0 {
		t.Errorf("unexpected second entry: %s at %d", calls[1].Name, calls[1].CallIndex)
	}
}

// ---------------------------------------------------------------------------
// C007 — selector directive misuse
// ---------------------------------------------------------------------------

func TestC007_UseSelectorWithoutGlobalFlag(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	#[interface::use_selector(Currency)]
	fn transfer(origin: Self::RuntimeOrigin, currency: Select<Self::Currency>) -> CallResult;
`), diagnostics.ErrC007, "misses the `#[interface::with_selector]` attribute")
}

func TestC007_NoSelectorWithoutGlobalFlag(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	#[interface::no_selector]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`), diagnostics.ErrC007, "misses the `#[interface::with_selector]` attribute")
}

func TestC007_NoSelectorAndUseSelectorConflict(t *testing.T) {
	// Both orders are rejected with the same diagnostic.
	expectDefErrorContains(t, selectorTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	#[interface::no_selector]
	#[interface::use_selector(Currency)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`), diagnostics.ErrC007, "either one or the other")

	expectDefErrorContains(t, selectorTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	#[interface::use_selector(Currency)]
	#[interface::no_selector]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`), diagnostics.ErrC007, "either one or the other")
}

func TestC007_RepeatedSelectorMode(t *testing.T) {
	expectDefErrorContains(t, selectorTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	#[interface::no_selector]
	#[interface::no_selector]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`), diagnostics.ErrC007, "only one is allowed")

	expectDefErrorContains(t, selectorTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	#[interface::use_selector(Currency)]
	#[interface::use_selector(Currency)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`), diagnostics.ErrC007, "only one is allowed")
}

// ---------------------------------------------------------------------------
// C008 — selection wrapper shape
// ---------------------------------------------------------------------------

func TestC008_MissingSelectArgument(t *testing.T) {
	expectDefErrorContains(t, selectorTrait(`
	#[interface::selector(Currency)]
	#[interface::default_selector]
	fn select_currency(selectable: H256) -> Self::Currency;

	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`), diagnostics.ErrC008, "must have `Select<$ty>` as second argument")
}

func TestC008_WrongSelectWrapper(t *testing.T) {
	expectDefErrorContains(t, selectorTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin, currency: Self::Currency) -> CallResult;
`), diagnostics.ErrC008, "expected `Select<$ty>`")
}

// ---------------------------------------------------------------------------
// C009 — argument attributes and patterns
// ---------------------------------------------------------------------------

func TestC009_TuplePatternArgument(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin, (a, b): (Balance, Balance)) -> CallResult;
`), diagnostics.ErrC009, "argument must be an identifier")
}

func TestC009_TooManyArgumentAttributes(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin, #[interface::compact] #[interface::compact] amount: Self::Balance) -> CallResult;
`), diagnostics.ErrC009, "too many attributes")
}

func TestC009_NonCompactArgumentAttribute(t *testing.T) {
	expectDefErrorContains(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin, #[interface::no_selector] amount: Self::Balance) -> CallResult;
`), diagnostics.ErrC009, "only `#[interface::compact]` is allowed")
}

// ---------------------------------------------------------------------------
// Entry construction
// ---------------------------------------------------------------------------

func TestCallEntryStripsOriginAndRewritesSelf(t *testing.T) {
	def := compileDef(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin, dest: Self::AccountId, #[interface::compact] amount: Self::Balance) -> CallResult;
`))
	call := def.Calls.Calls[0]
	if len(call.Args) != 2 {
		t.Fatalf("expected origin to be stripped, got %d args", len(call.Args))
	}
	if call.Args[0].Name != "dest" || call.Args[0].Type.String() != "Runtime::AccountId" {
		t.Errorf("unexpected first arg: %s %s", call.Args[0].Name, call.Args[0].Type.String())
	}
	if !call.Args[1].Compact {
		t.Error("expected amount to be compact")
	}
	if call.Args[1].Type.String() != "Runtime::Balance" {
		t.Errorf("expected Self rewrite on amount, got %s", call.Args[1].Type.String())
	}
}

func TestCallEntryStripsSelectWrapper(t *testing.T) {
	def := compileDef(t, selectorTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin, currency: Select<Self::Currency>, amount: Self::Balance) -> CallResult;

	#[interface::selector(Currency)]
	#[interface::default_selector]
	fn select_currency(selectable: H256) -> Self::Currency;
`))
	call := def.Calls.Calls[0]
	if len(call.Args) != 1 || call.Args[0].Name != "amount" {
		t.Fatalf("expected only the amount arg, got %v", call.Args)
	}
	req, ok := call.Selector.(DefaultSelectorReq)
	if !ok {
		t.Fatalf("expected a default selector requirement, got %T", call.Selector)
	}
	// The expected return type is taken from the wrapper before any rewrite.
	if req.Return.String() != "Self::Currency" {
		t.Errorf("unexpected required return type: %s", req.Return.String())
	}
}

func TestWeightFormulaForwardedVerbatim(t *testing.T) {
	def := compileDef(t, callTrait(`
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(T::DbWeight::get().reads(2) + 40 * PRECISION)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`))
	want := "T::DbWeight::get().reads(2) + 40 * PRECISION"
	if got := def.Calls.Calls[0].Weight; got != want {
		t.Errorf("expected weight %q, got %q", want, got)
	}
}

func TestCallEntryKeepsDocsAndForeignAttrs(t *testing.T) {
	def := compileDef(t, callTrait(`
	/// Transfers amount to dest.
	#[doc::hidden]
	#[interface::call]
	#[interface::call_index(0)]
	#[interface::weight(10)]
	fn transfer(origin: Self::RuntimeOrigin) -> CallResult;
`))
	call := def.Calls.Calls[0]
	if len(call.Docs) != 1 || call.Docs[0] != "Transfers amount to dest." {
		t.Errorf("unexpected docs: %v", call.Docs)
	}
	// Interface directives are drained, foreign attributes survive.
	if len(call.Attrs) != 1 || call.Attrs[0].Path[0] != "doc" {
		t.Errorf("expected only the foreign attribute to survive, got %v", call.Attrs)
	}
}

// ---------------------------------------------------------------------------
// Selector cross-checking
// ---------------------------------------------------------------------------

func TestCheckSelectorsAgainstMissingTable(t *testing.T) {
	def := compileDef(t, pip20Source)

	// Without any selector table, the first selector-requiring call fails:
	// transfer, which needs the default selector.
	err := def.Calls.CheckSelectors(nil)
	if err == nil {
		t.Fatal("expected a missing-selector diagnostic")
	}
	if err.Code != diagnostics.ErrS003 {
		t.Fatalf("expected S003, got %s", err.Code)
	}
	if !strings.Contains(err.Message, "default selector") {
		t.Errorf("expected the default requirement to fail first, got: %s", err.Message)
	}
}

func TestCheckSelectorsAgainstEmptyTable(t *testing.T) {
	def := compileDef(t, pip20Source)

	// An empty table satisfies default requirements (they are resolved from
	// context), so the first failure is approve's named requirement.
	err := def.Calls.CheckSelectors(&SelectorDef{})
	if err == nil {
		t.Fatal("expected an unresolved-selector diagnostic")
	}
	if err.Code != diagnostics.ErrS003 {
		t.Fatalf("expected S003, got %s", err.Code)
	}
	if !strings.Contains(err.Message, "RestrictedCurrency") {
		t.Errorf("expected approve's named requirement to fail, got: %s", err.Message)
	}
}

func TestCheckSelectorsNilReceiver(t *testing.T) {
	var cd *CallDef
	if err := cd.CheckSelectors(nil); err != nil {
		t.Errorf("expected nil table to pass trivially, got: %s", err.Error())
	}
}
