package compiler

import (
	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/config"
	"github.com/mustermeiszer/ifc/internal/diagnostics"
	"github.com/mustermeiszer/ifc/internal/token"
)

// Def is the fully compiled and cross-checked IR of one interface
// definition. Calls, Views and Selectors are nil when the definition
// declares none of the respective kind.
type Def struct {
	Token          token.Token
	Name           string
	Docs           []string
	GlobalSelector bool
	Calls          *CallDef
	Views          *ViewDef
	Selectors      *SelectorDef
}

// IsDefinition reports whether a parsed trait carries the
// `#[interface::definition]` attribute. Traits without it are not interface
// definitions and are skipped by the compiler.
func IsDefinition(def *ast.Definition) bool {
	return def.HasAttr(config.DefinitionAttrName)
}

// CompileDefinition runs the full compilation of one annotated trait: it
// routes every method by its marker directive into the call, view or
// selector pass — folding the respective table in source order — and then
// cross-checks the selector requirements of calls and views against the
// selector table. The first failure aborts the whole definition; no partial
// IR is ever returned.
func CompileDefinition(def *ast.Definition) (*Def, *diagnostics.DiagnosticError) {
	for i := range def.Attrs {
		attr := &def.Attrs[i]
		if !attr.IsInterface() {
			continue
		}
		switch attr.Name() {
		case config.DefinitionAttrName, config.WithSelectorAttrName:
		default:
			return nil, diagnostics.NewError(diagnostics.ErrD001, attr.GetToken(),
				"unrecognized interface directive on a definition", attr.String())
		}
	}

	globalSelector := def.HasAttr(config.WithSelectorAttrName)

	compiled := &Def{
		Token:          def.GetToken(),
		Name:           def.Name.Value,
		Docs:           def.Docs,
		GlobalSelector: globalSelector,
	}

	var err *diagnostics.DiagnosticError
	for _, method := range def.Methods {
		marker, merr := methodMarker(method)
		if merr != nil {
			return nil, merr
		}
		switch marker {
		case "call":
			compiled.Calls, err = CompileCall(compiled.Calls, globalSelector, def.GetToken(), method)
		case "view":
			compiled.Views, err = CompileView(compiled.Views, globalSelector, def.GetToken(), method)
		case "selector":
			compiled.Selectors, err = CompileSelector(compiled.Selectors, globalSelector, def.GetToken(), method)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := compiled.Calls.CheckSelectors(compiled.Selectors); err != nil {
		return nil, err
	}
	if err := compiled.Views.CheckSelectors(compiled.Selectors); err != nil {
		return nil, err
	}

	return compiled, nil
}

// methodMarker finds the routing marker of a method: exactly one of
// interface::call, interface::view or interface::selector. The marker is
// inspected, not drained — the pass it routes to consumes it together with
// the method's other directives.
func methodMarker(method *ast.MethodDeclaration) (string, *diagnostics.DiagnosticError) {
	marker := ""
	for i := range method.Attrs {
		attr := &method.Attrs[i]
		switch attr.Name() {
		case "call", "view", "selector":
			if marker == attr.Name() {
				return "", diagnostics.NewError(diagnostics.ErrC001, attr.GetToken(),
					"invalid interface definition, method "+method.Name.Value+
						" is marked interface::"+marker+" more than once")
			}
			if marker != "" {
				return "", diagnostics.NewError(diagnostics.ErrC001, attr.GetToken(),
					"invalid interface definition, method "+method.Name.Value+
						" is marked as both interface::"+marker+" and interface::"+attr.Name())
			}
			marker = attr.Name()
		}
	}
	if marker == "" {
		return "", diagnostics.NewError(diagnostics.ErrC001, method.GetToken(),
			"invalid interface definition, method "+method.Name.Value+
				" lacks a marker attribute (one of interface::call, interface::view, interface::selector)")
	}
	return marker, nil
}
