package compiler

import (
	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/diagnostics"
	"github.com/mustermeiszer/ifc/internal/directive"
	"github.com/mustermeiszer/ifc/internal/token"
)

// SelectorEntry is one declared selector: a named extraction function that
// turns the opaque selection key into a value of Return.
type SelectorEntry struct {
	Name    string
	Method  string
	Return  ast.TypeExpr
	Default bool
	Token   token.Token
}

// SelectorDef is the selector table of one definition: the read-only
// collaborator the call and view passes cross-check against.
type SelectorDef struct {
	InterfaceToken token.Token
	Selectors      []SelectorEntry
}

// CompileSelector folds one selector method declaration into selectors
// (which may be nil for the first one). Selector methods have the fixed
// shape `fn name(selectable: H256) -> $ty;`.
func CompileSelector(
	selectors *SelectorDef,
	globalSelector bool,
	interfaceToken token.Token,
	method *ast.MethodDeclaration,
) (*SelectorDef, *diagnostics.DiagnosticError) {
	if selectors == nil {
		selectors = &SelectorDef{InterfaceToken: interfaceToken}
	}

	if !globalSelector {
		return selectors, diagnostics.NewError(diagnostics.ErrS002, method.GetToken(),
			"invalid interface::selector, selector methods given but the definition misses the `#[interface::with_selector]` attribute")
	}

	directives, err := directive.TakeInterfaceAttrs(&method.Attrs)
	if err != nil {
		return selectors, err
	}

	var (
		names      []directive.Selector
		setDefault bool
	)
	for _, d := range directives {
		switch d := d.(type) {
		case directive.Selector:
			names = append(names, d)
		case directive.DefaultSelector:
			if setDefault {
				return selectors, diagnostics.NewError(diagnostics.ErrS002, d.GetToken(),
					"invalid interface::selector, multiple `#[interface::default_selector]` attributes used on the same method; only one is allowed")
			}
			setDefault = true
		default:
			return selectors, diagnostics.NewError(diagnostics.ErrS001, d.GetToken(),
				"invalid interface::selector, unexpected directive on a selector method")
		}
	}

	if len(names) != 1 {
		msg := "invalid interface::selector, requires a name, i.e. `#[interface::selector($ident)]`"
		if len(names) > 1 {
			msg = "invalid interface::selector, too many selector attributes given"
		}
		return selectors, diagnostics.NewError(diagnostics.ErrS001, method.GetToken(), msg)
	}
	name := names[0]

	if len(method.Params) != 1 {
		return selectors, diagnostics.NewError(diagnostics.ErrS001, method.GetToken(),
			"invalid interface::selector, must have exactly one argument, e.g. `selectable: H256`")
	}
	param := method.Params[0]
	if param.Name == nil {
		return selectors, diagnostics.NewError(diagnostics.ErrS001, param.GetToken(),
			"invalid interface::selector, argument must be an identifier")
	}
	if err := checkSelectableArg(param.Type); err != nil {
		return selectors, err
	}

	if method.Return == nil {
		return selectors, diagnostics.NewError(diagnostics.ErrS001, method.GetToken(),
			"invalid interface::selector, requires a return type")
	}

	for i := range selectors.Selectors {
		prev := &selectors.Selectors[i]
		if prev.Name == name.Name {
			err := diagnostics.NewError(diagnostics.ErrS002, prev.Token,
				"selector `"+name.Name+"` declared twice, by "+prev.Method+" and "+method.Name.Value)
			return selectors, err.Combine(diagnostics.NewError(diagnostics.ErrS002, method.GetToken(),
				"selector `"+name.Name+"` declared twice, by "+prev.Method+" and "+method.Name.Value))
		}
		if setDefault && prev.Default {
			err := diagnostics.NewError(diagnostics.ErrS002, prev.Token,
				"multiple default selectors: both "+prev.Method+" and "+method.Name.Value+" are annotated with `#[interface::default_selector]`")
			return selectors, err.Combine(diagnostics.NewError(diagnostics.ErrS002, method.GetToken(),
				"multiple default selectors: both "+prev.Method+" and "+method.Name.Value+" are annotated with `#[interface::default_selector]`"))
		}
	}

	selectors.Selectors = append(selectors.Selectors, SelectorEntry{
		Name:    name.Name,
		Method:  method.Name.Value,
		Return:  method.Return,
		Default: setDefault,
		Token:   method.GetToken(),
	})

	return selectors, nil
}

// CheckSelector verifies one selector requirement against the table: a named
// requirement must resolve by name, a default requirement needs a declared
// default, and in both cases the declared return type must match the type the
// entry's selection wrapper expects. at is the requiring entry's location.
func (sd *SelectorDef) CheckSelector(req SelectorReq, at token.Token) *diagnostics.DiagnosticError {
	var found *SelectorEntry
	switch req := req.(type) {
	case NamedSelectorReq:
		for i := range sd.Selectors {
			if sd.Selectors[i].Name == req.Name {
				found = &sd.Selectors[i]
				break
			}
		}
		if found == nil {
			return diagnostics.NewError(diagnostics.ErrS003, at,
				"invalid interface definition, expected a "+req.Describe()+
					", found none (try adding a correctly annotated selector method to the trait)")
		}
	case DefaultSelectorReq:
		// A default requirement is resolved from context by later passes;
		// here it is only type-checked against the declared default, if any.
		for i := range sd.Selectors {
			if sd.Selectors[i].Default {
				found = &sd.Selectors[i]
				break
			}
		}
		if found == nil {
			return nil
		}
	default:
		return nil
	}

	if !ast.TypeEqual(found.Return, req.ReturnType()) {
		err := diagnostics.NewError(diagnostics.ErrS003, at,
			"selector `"+found.Name+"` returns `"+found.Return.String()+
				"` but the entry expects `"+req.ReturnType().String()+"`")
		return err.Combine(diagnostics.NewError(diagnostics.ErrS003, found.Token,
			"selector `"+found.Name+"` declared here"))
	}
	return nil
}
