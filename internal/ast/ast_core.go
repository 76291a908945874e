package ast

import (
	"strings"

	"github.com/mustermeiszer/ifc/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary
// token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Identifier is a plain name with its source token.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// Attribute is one raw `#[...]` annotation as written in source. The compiler
// passes classify attributes later; the parser only records their shape.
//
// Path holds the `::`-separated segments before any parenthesized content
// (e.g. ["interface", "call_index"]). Content holds the tokens between the
// parentheses, if any, and Raw their exact source text (weight formulas are
// forwarded verbatim from Raw).
type Attribute struct {
	Token   token.Token // the '#' token
	Path    []string
	Content []token.Token
	Raw     string
}

func (a *Attribute) TokenLiteral() string { return a.Token.Lexeme }
func (a *Attribute) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// IsInterface reports whether the attribute lives in the `interface::`
// namespace. Attributes outside it are opaque to the compiler and survive
// every pass untouched.
func (a *Attribute) IsInterface() bool {
	return len(a.Path) == 2 && a.Path[0] == "interface"
}

// Name returns the directive name of an `interface::` attribute, or "".
func (a *Attribute) Name() string {
	if !a.IsInterface() {
		return ""
	}
	return a.Path[1]
}

func (a *Attribute) String() string {
	var sb strings.Builder
	sb.WriteString("#[")
	sb.WriteString(strings.Join(a.Path, "::"))
	if a.Raw != "" || len(a.Content) > 0 {
		sb.WriteString("(")
		sb.WriteString(a.Raw)
		sb.WriteString(")")
	}
	sb.WriteString("]")
	return sb.String()
}

// Param is one formal parameter of a method declaration.
type Param struct {
	Token token.Token // the parameter name token (or pattern start)
	Attrs []Attribute // attached `#[...]` attributes, drained by the passes
	Name  *Identifier // nil when the pattern is not a simple identifier
	Type  TypeExpr
}

func (p *Param) TokenLiteral() string { return p.Token.Lexeme }
func (p *Param) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// MethodDeclaration is one `fn` item inside a definition. The compilation
// passes mutate it in place: recognized `interface::` attributes are drained
// as they are consumed, so whatever remains afterwards belongs to later
// passes (or to no one).
type MethodDeclaration struct {
	Token  token.Token // the 'fn' token
	Attrs  []Attribute
	Docs   []string // doc-comment lines, in source order
	Name   *Identifier
	Params []*Param
	Return TypeExpr // nil when the declaration has no `->` clause
}

func (m *MethodDeclaration) TokenLiteral() string { return m.Token.Lexeme }
func (m *MethodDeclaration) GetToken() token.Token {
	if m == nil {
		return token.Token{}
	}
	return m.Token
}

// Definition is one annotated `trait` block: the unit the definition
// compiler consumes.
type Definition struct {
	Token   token.Token // the 'trait' token
	Attrs   []Attribute
	Docs    []string
	Name    *Identifier
	Methods []*MethodDeclaration
}

func (d *Definition) TokenLiteral() string { return d.Token.Lexeme }
func (d *Definition) GetToken() token.Token {
	if d == nil {
		return token.Token{}
	}
	return d.Token
}

// HasAttr reports whether a definition-level `interface::` attribute with the
// given name is present.
func (d *Definition) HasAttr(name string) bool {
	for i := range d.Attrs {
		if d.Attrs[i].Name() == name {
			return true
		}
	}
	return false
}

// File is the root node of every parsed source file.
type File struct {
	Path        string
	Definitions []*Definition
}

func (f *File) TokenLiteral() string {
	if len(f.Definitions) > 0 {
		return f.Definitions[0].TokenLiteral()
	}
	return ""
}
