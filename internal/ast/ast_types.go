package ast

import (
	"strings"

	"github.com/mustermeiszer/ifc/internal/token"
)

// --- Type Expression Nodes ---

// TypeExpr represents a type expression in a signature.
// E.g. H256, Self::RuntimeOrigin, Select<Self::Currency>,
// <Self::Currency as Inspect>::Balance, (A, B).
type TypeExpr interface {
	Node
	typeNode()
	GetToken() token.Token
	String() string
}

// NamedType is a simple named type like 'H256' or 'CallResult'.
type NamedType struct {
	Token token.Token
	Name  string
}

func (nt *NamedType) typeNode()            {}
func (nt *NamedType) TokenLiteral() string { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token {
	if nt == nil {
		return token.Token{}
	}
	return nt.Token
}
func (nt *NamedType) String() string { return nt.Name }

// PathType is a `::`-separated type path, e.g. Self::RuntimeOrigin or
// pallet::Balance. Segments holds every segment including a leading "Self".
type PathType struct {
	Token    token.Token
	Segments []string
}

func (pt *PathType) typeNode()            {}
func (pt *PathType) TokenLiteral() string { return pt.Token.Lexeme }
func (pt *PathType) GetToken() token.Token {
	if pt == nil {
		return token.Token{}
	}
	return pt.Token
}
func (pt *PathType) String() string { return strings.Join(pt.Segments, "::") }

// GenericType is a generic application, e.g. Select<Self::Currency> or
// Map<K, V>. The constructor is a bare name; nested constructors do not
// occur in this surface language.
type GenericType struct {
	Token token.Token
	Name  string
	Args  []TypeExpr
}

func (gt *GenericType) typeNode()            {}
func (gt *GenericType) TokenLiteral() string { return gt.Token.Lexeme }
func (gt *GenericType) GetToken() token.Token {
	if gt == nil {
		return token.Token{}
	}
	return gt.Token
}
func (gt *GenericType) String() string {
	parts := make([]string, len(gt.Args))
	for i, a := range gt.Args {
		parts[i] = a.String()
	}
	return gt.Name + "<" + strings.Join(parts, ", ") + ">"
}

// QualifiedType is a qualified path with an `as` clause, e.g.
// <Self::Currency as Inspect>::Balance. Trait may be nil for the degenerate
// <T>::Assoc form.
type QualifiedType struct {
	Token    token.Token // the '<' token
	Base     TypeExpr
	Trait    TypeExpr
	Segments []string // what follows the closing '>'
}

func (qt *QualifiedType) typeNode()            {}
func (qt *QualifiedType) TokenLiteral() string { return qt.Token.Lexeme }
func (qt *QualifiedType) GetToken() token.Token {
	if qt == nil {
		return token.Token{}
	}
	return qt.Token
}
func (qt *QualifiedType) String() string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(qt.Base.String())
	if qt.Trait != nil {
		sb.WriteString(" as ")
		sb.WriteString(qt.Trait.String())
	}
	sb.WriteString(">")
	for _, seg := range qt.Segments {
		sb.WriteString("::")
		sb.WriteString(seg)
	}
	return sb.String()
}

// TupleType is a tuple, e.g. (Self::Currency, Self::Balance).
type TupleType struct {
	Token token.Token // the '(' token
	Elems []TypeExpr
}

func (tt *TupleType) typeNode()            {}
func (tt *TupleType) TokenLiteral() string { return tt.Token.Lexeme }
func (tt *TupleType) GetToken() token.Token {
	if tt == nil {
		return token.Token{}
	}
	return tt.Token
}
func (tt *TupleType) String() string {
	parts := make([]string, len(tt.Elems))
	for i, e := range tt.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// TypeEqual reports structural equality of two type expressions. Source
// positions are ignored; spacing and grouping differences do not matter.
func TypeEqual(a, b TypeExpr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch at := a.(type) {
	case *NamedType:
		bt, ok := b.(*NamedType)
		return ok && at.Name == bt.Name
	case *PathType:
		bt, ok := b.(*PathType)
		if !ok || len(at.Segments) != len(bt.Segments) {
			return false
		}
		for i := range at.Segments {
			if at.Segments[i] != bt.Segments[i] {
				return false
			}
		}
		return true
	case *GenericType:
		bt, ok := b.(*GenericType)
		if !ok || at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !TypeEqual(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case *QualifiedType:
		bt, ok := b.(*QualifiedType)
		if !ok || !TypeEqual(at.Base, bt.Base) || !TypeEqual(at.Trait, bt.Trait) {
			return false
		}
		if len(at.Segments) != len(bt.Segments) {
			return false
		}
		for i := range at.Segments {
			if at.Segments[i] != bt.Segments[i] {
				return false
			}
		}
		return true
	case *TupleType:
		bt, ok := b.(*TupleType)
		if !ok || len(at.Elems) != len(bt.Elems) {
			return false
		}
		for i := range at.Elems {
			if !TypeEqual(at.Elems[i], bt.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
