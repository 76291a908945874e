package compiler

import (
	"fmt"

	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/diagnostics"
	"github.com/mustermeiszer/ifc/internal/directive"
	"github.com/mustermeiszer/ifc/internal/token"
)

// ViewEntry is the validated IR record for one read-only view. Views mirror
// calls minus the origin argument and the weight formula.
type ViewEntry struct {
	Selector  SelectorReq
	Name      string
	Args      []CallArg
	ViewIndex uint8
	Docs      []string
	Attrs     []ast.Attribute
	Token     token.Token
}

// ViewDef is the ordered view table of one definition.
type ViewDef struct {
	InterfaceToken token.Token
	Views          []ViewEntry
}

// CompileView folds one view method declaration into views (nil for the
// first view of a definition). When a selector is required, the selection
// wrapper is the first parameter; views take no origin.
func CompileView(
	views *ViewDef,
	globalSelector bool,
	interfaceToken token.Token,
	method *ast.MethodDeclaration,
) (*ViewDef, *diagnostics.DiagnosticError) {
	if views == nil {
		views = &ViewDef{InterfaceToken: interfaceToken}
	}

	indices := make(map[uint8]*ViewEntry, len(views.Views))
	for i := range views.Views {
		indices[views.Views[i].ViewIndex] = &views.Views[i]
	}

	if method.Return == nil {
		return views, diagnostics.NewError(diagnostics.ErrV001, method.GetToken(),
			"invalid interface::view, requires return type ViewResult")
	}
	if err := checkViewReturn(method.Return); err != nil {
		return views, err
	}

	directives, err := directive.TakeInterfaceAttrs(&method.Attrs)
	if err != nil {
		return views, err
	}

	var (
		viewIndices  []directive.ViewIndex
		selectorMode directive.Directive // UseSelector or NoSelector
	)
	for _, d := range directives {
		switch d := d.(type) {
		case directive.View:
			// The routing marker; consumed without effect.
		case directive.ViewIndex:
			viewIndices = append(viewIndices, d)
		case directive.NoSelector:
			if !globalSelector {
				return views, diagnostics.NewError(diagnostics.ErrV001, d.GetToken(),
					"invalid interface::view, selector attributes given but the definition misses the `#[interface::with_selector]` attribute")
			}
			if _, conflict := selectorMode.(directive.UseSelector); conflict {
				return views, diagnostics.NewError(diagnostics.ErrV001, d.GetToken(),
					"invalid interface::view, both `#[interface::no_selector]` and `#[interface::use_selector($ident)]` used on the same method; use either one or the other")
			}
			if selectorMode != nil {
				return views, diagnostics.NewError(diagnostics.ErrV001, d.GetToken(),
					"invalid interface::view, multiple `#[interface::no_selector]` attributes used on the same method; only one is allowed")
			}
			selectorMode = d
		case directive.UseSelector:
			if !globalSelector {
				return views, diagnostics.NewError(diagnostics.ErrV001, d.GetToken(),
					"invalid interface::view, selector attributes given but the definition misses the `#[interface::with_selector]` attribute")
			}
			if _, conflict := selectorMode.(directive.NoSelector); conflict {
				return views, diagnostics.NewError(diagnostics.ErrV001, d.GetToken(),
					"invalid interface::view, both `#[interface::no_selector]` and `#[interface::use_selector($ident)]` used on the same method; use either one or the other")
			}
			if selectorMode != nil {
				return views, diagnostics.NewError(diagnostics.ErrV001, d.GetToken(),
					"invalid interface::view, multiple `#[interface::use_selector($ident)]` attributes used on the same method; only one is allowed")
			}
			selectorMode = d
		default:
			return views, diagnostics.NewError(diagnostics.ErrV001, d.GetToken(),
				"invalid interface::view, unexpected directive on a view method")
		}
	}

	if len(viewIndices) != 1 {
		msg := "invalid interface::view, requires a view_index attribute, i.e. `#[interface::view_index($u8)]`"
		if len(viewIndices) > 1 {
			msg = "invalid interface::view, too many view_index attributes given"
		}
		return views, diagnostics.NewError(diagnostics.ErrV002, method.GetToken(), msg)
	}
	viewIndex := viewIndices[0]

	if used, ok := indices[viewIndex.Value]; ok {
		msg := fmt.Sprintf("view indices are conflicting: both functions %s and %s are at index %d",
			used.Name, method.Name.Value, viewIndex.Value)
		err := diagnostics.NewError(diagnostics.ErrV003, used.Token, msg)
		return views, err.Combine(diagnostics.NewError(diagnostics.ErrV003, method.Name.GetToken(), msg))
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
		if len(method.Params) < 1 {
			return views, diagnostics.NewError(diagnostics.ErrV001, method.GetToken(),
				"invalid interface::view, must have `Select<$ty>` as first argument if used with a selector and not annotated with `#[interface::no_selector]`")
		}
		returnTy, err := checkSelectArg(method.Params[0].Type)
		if err != nil {
			return views, err
		}
		if use, ok := selectorMode.(directive.UseSelector); ok {
			selector = NamedSelectorReq{Name: use.Name, Return: returnTy}
		} else {
			selector = DefaultSelectorReq{Return: returnTy}
		}
		skip = 1
	}

	args, err := compileArgs(method.Params[skip:], "interface::view")
	if err != nil {
		return views, err
	}

	views.Views = append(views.Views, ViewEntry{
		Selector:  selector,
		Name:      method.Name.Value,
		Args:      args,
		ViewIndex: viewIndex.Value,
		Docs:      method.Docs,
		Attrs:     method.Attrs,
		Token:     method.GetToken(),
	})

	return views, nil
}

// CheckSelectors mirrors CallDef.CheckSelectors for the view table.
func (vd *ViewDef) CheckSelectors(selectors *SelectorDef) *diagnostics.DiagnosticError {
	if vd == nil {
		return nil
	}
	for i := range vd.Views {
		view := &vd.Views[i]
		if view.Selector == nil {
			continue
		}
		if selectors == nil {
			return diagnostics.NewError(diagnostics.ErrS003, view.Token,
				"invalid interface definition, expected a "+view.Selector.Describe()+
					", found none (try adding a correctly annotated selector method to the trait)")
		}
		if err := selectors.CheckSelector(view.Selector, view.Token); err != nil {
			return err
		}
	}
	return nil
}
