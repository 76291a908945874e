package compiler

import (
	"fmt"

	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/diagnostics"
	"github.com/mustermeiszer/ifc/internal/directive"
	"github.com/mustermeiszer/ifc/internal/token"
)

// CallArg is one argument of a compiled call: compact marker, binding name
// and the Self-rewritten type.
type CallArg struct {
	Compact bool
	Name    string
	Type    ast.TypeExpr
}

// CallEntry is the validated IR record for one dispatchable call. Immutable
// once constructed; owned exclusively by its CallDef.
type CallEntry struct {
	// Selector signals whether the second argument must be a selector
	// application; nil means no selector indirection.
	Selector SelectorReq
	// Function name.
	Name string
	// Information on args, origin and selection wrapper already stripped.
	Args []CallArg
	// Weight formula, forwarded verbatim.
	Weight string
	// Call index of the interface (unique within the CallDef).
	CallIndex uint8
	// Docs, used for metadata.
	Docs []string
	// Attributes that survived directive draining.
	Attrs []ast.Attribute
	// The token of the method declaration, for diagnostics.
	Token token.Token
}

// CallDef is the ordered call table of one definition. It is built
// incrementally: CompileCall folds one method declaration into the table
// produced by the previous step, re-checking index uniqueness at every fold.
type CallDef struct {
	InterfaceToken token.Token
	Calls          []CallEntry
}

// CompileCall folds one method declaration into calls (which may be nil for
// the first call of a definition) and returns the updated table. On any
// failure the table is returned unchanged alongside the diagnostic; no entry
// is ever appended for a rejected method.
func CompileCall(
	calls *CallDef,
	globalSelector bool,
	interfaceToken token.Token,
	method *ast.MethodDeclaration,
) (*CallDef, *diagnostics.DiagnosticError) {
	if calls == nil {
		calls = &CallDef{InterfaceToken: interfaceToken}
	}

	indices := make(map[uint8]*CallEntry, len(calls.Calls))
	for i := range calls.Calls {
		indices[calls.Calls[i].CallIndex] = &calls.Calls[i]
	}

	if len(method.Params) == 0 {
		return calls, diagnostics.NewError(diagnostics.ErrC001, method.GetToken(),
			"invalid interface::call, must have at least the origin argument")
	}
	first := method.Params[0]
	if first.Name != nil && first.Name.Value == "self" {
		return calls, diagnostics.NewError(diagnostics.ErrC001, first.GetToken(),
			"invalid interface::call, first argument must be a typed argument, e.g. `origin: Self::RuntimeOrigin`")
	}
	if err := checkCallFirstArg(first.Type); err != nil {
		return calls, err
	}

	if method.Return == nil {
		return calls, diagnostics.NewError(diagnostics.ErrC003, method.GetToken(),
			"invalid interface::call, requires return type CallResult")
	}
	if err := checkCallReturn(method.Return); err != nil {
		return calls, err
	}

	directives, err := directive.TakeInterfaceAttrs(&method.Attrs)
	if err != nil {
		return calls, err
	}

	var (
		weights      []directive.Weight
		callIndices  []directive.CallIndex
		selectorMode directive.Directive // UseSelector or NoSelector
	)
	for _, d := range directives {
		switch d := d.(type) {
		case directive.Call:
			// The routing marker; consumed without effect.
		case directive.Weight:
			weights = append(weights, d)
		case directive.CallIndex:
			callIndices = append(callIndices, d)
		case directive.NoSelector:
			if !globalSelector {
				return calls, diagnostics.NewError(diagnostics.ErrC007, d.GetToken(),
					"invalid interface::call, selector attributes given but the definition misses the `#[interface::with_selector]` attribute")
			}
			if _, conflict := selectorMode.(directive.UseSelector); conflict {
				return calls, diagnostics.NewError(diagnostics.ErrC007, d.GetToken(),
					"invalid interface::call, both `#[interface::no_selector]` and `#[interface::use_selector($ident)]` used on the same method; use either one or the other")
			}
			if selectorMode != nil {
				return calls, diagnostics.NewError(diagnostics.ErrC007, d.GetToken(),
					"invalid interface::call, multiple `#[interface::no_selector]` attributes used on the same method; only one is allowed")
			}
			selectorMode = d
		case directive.UseSelector:
			if !globalSelector {
				return calls, diagnostics.NewError(diagnostics.ErrC007, d.GetToken(),
					"invalid interface::call, selector attributes given but the definition misses the `#[interface::with_selector]` attribute")
			}
			if _, conflict := selectorMode.(directive.NoSelector); conflict {
				return calls, diagnostics.NewError(diagnostics.ErrC007, d.GetToken(),
					"invalid interface::call, both `#[interface::no_selector]` and `#[interface::use_selector($ident)]` used on the same method; use either one or the other")
			}
			if selectorMode != nil {
				return calls, diagnostics.NewError(diagnostics.ErrC007, d.GetToken(),
					"invalid interface::call, multiple `#[interface::use_selector($ident)]` attributes used on the same method; only one is allowed")
			}
			selectorMode = d
		default:
			return calls, diagnostics.NewError(diagnostics.ErrC001, d.GetToken(),
				"invalid interface::call, unexpected directive on a call method")
		}
	}

	if len(weights) != 1 {
		msg := "invalid interface::call, requires a weight attribute, i.e. `#[interface::weight($expr)]`"
		if len(weights) > 1 {
			msg = "invalid interface::call, too many weight attributes given"
		}
		return calls, diagnostics.NewError(diagnostics.ErrC004, method.GetToken(), msg)
	}
	weight := weights[0]

	if len(callIndices) != 1 {
		msg := "invalid interface::call, requires a call_index attribute, i.e. `#[interface::call_index($u8)]`"
		if len(callIndices) > 1 {
			msg = "invalid interface::call, too many call_index attributes given"
		}
		return calls, diagnostics.NewError(diagnostics.ErrC005, method.GetToken(), msg)
	}
	callIndex := callIndices[0]

	if used, ok := indices[callIndex.Value]; ok {
		msg := fmt.Sprintf("call indices are conflicting: both functions %s and %s are at index %d",
			used.Name, method.Name.Value, callIndex.Value)
		err := diagnostics.NewError(diagnostics.ErrC006, used.Token, msg)
		return calls, err.Combine(diagnostics.NewError(diagnostics.ErrC006, method.Name.GetToken(), msg))
	}

	withSelector := globalSelector
	switch selectorMode.(type) {
	case directive.UseSelector:
		withSelector = true
	case directive.NoSelector:
		withSelector = false
	}

	var (
		selector SelectorReq
		skip     int
	)
	if withSelector {
		if len(method.Params) < 2 {
			return calls, diagnostics.NewError(diagnostics.ErrC008, method.GetToken(),
				"invalid interface::call, must have `Select<$ty>` as second argument if used with a selector and not annotated with `#[interface::no_selector]`")
		}
		returnTy, err := checkSelectArg(method.Params[1].Type)
		if err != nil {
			return calls, err
		}
		if use, ok := selectorMode.(directive.UseSelector); ok {
			selector = NamedSelectorReq{Name: use.Name, Return: returnTy}
		} else {
			selector = DefaultSelectorReq{Return: returnTy}
		}
		skip = 2
	} else {
		skip = 1
	}

	args, err := compileArgs(method.Params[skip:], "interface::call")
	if err != nil {
		return calls, err
	}

	calls.Calls = append(calls.Calls, CallEntry{
		Selector:  selector,
		Name:      method.Name.Value,
		Args:      args,
		Weight:    weight.Formula,
		CallIndex: callIndex.Value,
		Docs:      method.Docs,
		Attrs:     method.Attrs,
		Token:     method.GetToken(),
	})

	return calls, nil
}

// compileArgs drains per-argument attributes (at most one compact marker),
// requires identifier bindings and rewrites self-referential types.
func compileArgs(params []*ast.Param, kind string) ([]CallArg, *diagnostics.DiagnosticError) {
	var args []CallArg
	for _, param := range params {
		directives, err := directive.TakeInterfaceAttrs(&param.Attrs)
		if err != nil {
			return nil, err
		}
		if len(directives) > 1 {
			return nil, diagnostics.NewError(diagnostics.ErrC009, param.GetToken(),
				"invalid "+kind+", argument has too many attributes")
		}
		compact := false
		for _, d := range directives {
			if _, ok := d.(directive.Compact); !ok {
				return nil, diagnostics.NewError(diagnostics.ErrC009, d.GetToken(),
					"invalid "+kind+", only `#[interface::compact]` is allowed on arguments")
			}
			compact = true
		}

		if param.Name == nil {
			return nil, diagnostics.NewError(diagnostics.ErrC009, param.GetToken(),
				"invalid "+kind+", argument must be an identifier")
		}

		args = append(args, CallArg{
			Compact: compact,
			Name:    param.Name.Value,
			Type:    AdaptSelfType(param.Type),
		})
	}
	return args, nil
}

// CheckSelectors verifies every entry's selector requirement against the
// definition's selector table. It runs once, after all calls of a definition
// have been compiled, and performs no mutation.
func (cd *CallDef) CheckSelectors(selectors *SelectorDef) *diagnostics.DiagnosticError {
	if cd == nil {
		return nil
	}
	for i := range cd.Calls {
		call := &cd.Calls[i]
		if call.Selector == nil {
			continue
		}
		if selectors == nil {
			return diagnostics.NewError(diagnostics.ErrS003, call.Token,
				"invalid interface definition, expected a "+call.Selector.Describe()+
					", found none (try adding a correctly annotated selector method to the trait)")
		}
		if err := selectors.CheckSelector(call.Selector, call.Token); err != nil {
			return err
		}
	}
	return nil
}
