// Package directive defines the closed vocabulary of `interface::`
// annotations and the parser that classifies raw attributes into it.
package directive

import (
	"strconv"

	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/diagnostics"
	"github.com/mustermeiszer/ifc/internal/token"
)

// Directive is one recognized `interface::` annotation. The set of variants
// is closed: anything the parser does not match is a hard error, there is no
// pass-through for unknown interface directives.
type Directive interface {
	directive()
	GetToken() token.Token
}

// Call marks a method as a dispatchable call.
type Call struct{ Token token.Token }

// View marks a method as a read-only view.
type View struct{ Token token.Token }

// Selector declares the method as a named selector.
type Selector struct {
	Token token.Token
	Name  string
}

// DefaultSelector marks a selector method as the definition's default.
type DefaultSelector struct{ Token token.Token }

// CallIndex fixes the dispatch index of a call (0-255).
type CallIndex struct {
	Token token.Token
	Value uint8
}

// ViewIndex fixes the dispatch index of a view (0-255).
type ViewIndex struct {
	Token token.Token
	Value uint8
}

// Weight carries a weight formula verbatim; it is opaque to the compiler and
// forwarded unevaluated.
type Weight struct {
	Token   token.Token
	Formula string
}

// UseSelector requests the named selector for this method.
type UseSelector struct {
	Token token.Token
	Name  string
}

// NoSelector opts the method out of the definition's global selector mode.
type NoSelector struct{ Token token.Token }

// Compact marks a single argument for compact encoding.
type Compact struct{ Token token.Token }

func (d Call) directive()            {}
func (d View) directive()            {}
func (d Selector) directive()        {}
func (d DefaultSelector) directive() {}
func (d CallIndex) directive()       {}
func (d ViewIndex) directive()       {}
func (d Weight) directive()          {}
func (d UseSelector) directive()     {}
func (d NoSelector) directive()      {}
func (d Compact) directive()         {}

func (d Call) GetToken() token.Token            { return d.Token }
func (d View) GetToken() token.Token            { return d.Token }
func (d Selector) GetToken() token.Token        { return d.Token }
func (d DefaultSelector) GetToken() token.Token { return d.Token }
func (d CallIndex) GetToken() token.Token       { return d.Token }
func (d ViewIndex) GetToken() token.Token       { return d.Token }
func (d Weight) GetToken() token.Token          { return d.Token }
func (d UseSelector) GetToken() token.Token     { return d.Token }
func (d NoSelector) GetToken() token.Token      { return d.Token }
func (d Compact) GetToken() token.Token         { return d.Token }

// Parse classifies one `interface::` attribute into exactly one directive
// variant. The attribute must satisfy IsInterface.
func Parse(attr *ast.Attribute) (Directive, *diagnostics.DiagnosticError) {
	tok := attr.GetToken()
	switch attr.Name() {
	case "call":
		if err := expectNoContent(attr); err != nil {
			return nil, err
		}
		return Call{Token: tok}, nil
	case "view":
		if err := expectNoContent(attr); err != nil {
			return nil, err
		}
		return View{Token: tok}, nil
	case "default_selector":
		if err := expectNoContent(attr); err != nil {
			return nil, err
		}
		return DefaultSelector{Token: tok}, nil
	case "no_selector":
		if err := expectNoContent(attr); err != nil {
			return nil, err
		}
		return NoSelector{Token: tok}, nil
	case "compact":
		if err := expectNoContent(attr); err != nil {
			return nil, err
		}
		return Compact{Token: tok}, nil
	case "call_index":
		idx, err := parseIndex(attr)
		if err != nil {
			return nil, err
		}
		return CallIndex{Token: tok, Value: idx}, nil
	case "view_index":
		idx, err := parseIndex(attr)
		if err != nil {
			return nil, err
		}
		return ViewIndex{Token: tok, Value: idx}, nil
	case "weight":
		if attr.Raw == "" {
			return nil, diagnostics.NewError(diagnostics.ErrD002, tok,
				"interface::weight requires a formula, i.e. `#[interface::weight($expr)]`")
		}
		return Weight{Token: tok, Formula: attr.Raw}, nil
	case "use_selector":
		name, err := parseIdentContent(attr, "use_selector")
		if err != nil {
			return nil, err
		}
		return UseSelector{Token: tok, Name: name}, nil
	case "selector":
		name, err := parseIdentContent(attr, "selector")
		if err != nil {
			return nil, err
		}
		return Selector{Token: tok, Name: name}, nil
	default:
		return nil, diagnostics.NewError(diagnostics.ErrD001, tok,
			"unrecognized interface directive", attr.String())
	}
}

// TakeInterfaceAttrs drains every `interface::` attribute from attrs,
// returning the parsed directives in source order. Attributes outside the
// `interface::` namespace stay in place for later passes. This is the only
// point where a declaration is mutated.
func TakeInterfaceAttrs(attrs *[]ast.Attribute) ([]Directive, *diagnostics.DiagnosticError) {
	var directives []Directive
	kept := (*attrs)[:0]
	for i := range *attrs {
		attr := (*attrs)[i]
		if !attr.IsInterface() {
			kept = append(kept, attr)
			continue
		}
		d, err := Parse(&attr)
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
	}
	*attrs = kept
	return directives, nil
}

func expectNoContent(attr *ast.Attribute) *diagnostics.DiagnosticError {
	if len(attr.Content) != 0 {
		return diagnostics.NewError(diagnostics.ErrD002, attr.GetToken(),
			"interface::"+attr.Name()+" takes no arguments")
	}
	return nil
}

// parseIndex parses `($int)` content: a plain unsigned decimal in 0-255.
// Suffixed literals (e.g. `3u8`) are rejected naming the offending token.
func parseIndex(attr *ast.Attribute) (uint8, *diagnostics.DiagnosticError) {
	if len(attr.Content) != 1 || attr.Content[0].Type != token.INT {
		return 0, diagnostics.NewError(diagnostics.ErrD002, attr.GetToken(),
			"interface::"+attr.Name()+" requires a single integer literal")
	}
	lit := attr.Content[0]
	if lit.Lexeme != lit.Literal {
		return 0, diagnostics.NewError(diagnostics.ErrD003, lit,
			"number literal must not have a suffix, got", lit.Lexeme)
	}
	v, err := strconv.ParseUint(lit.Literal, 10, 8)
	if err != nil {
		return 0, diagnostics.NewError(diagnostics.ErrD003, lit,
			"index must be an unsigned integer in 0..255, got", lit.Lexeme)
	}
	return uint8(v), nil
}

func parseIdentContent(attr *ast.Attribute, name string) (string, *diagnostics.DiagnosticError) {
	if len(attr.Content) != 1 ||
		(attr.Content[0].Type != token.IDENT_UPPER && attr.Content[0].Type != token.IDENT_LOWER) {
		return "", diagnostics.NewError(diagnostics.ErrD002, attr.GetToken(),
			"interface::"+name+" requires a single identifier, i.e. `#[interface::"+name+"($ident)]`")
	}
	return attr.Content[0].Literal, nil
}
