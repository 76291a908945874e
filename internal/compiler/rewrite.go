package compiler

import (
	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/config"
)

// AdaptSelfType replaces every `Self` segment in a type expression with the
// concrete `Runtime` placeholder, recursing into generic arguments, tuple
// elements and the base of qualified paths. Types without a self-reference
// are returned unchanged, and the rewrite is idempotent.
func AdaptSelfType(t ast.TypeExpr) ast.TypeExpr {
	if t == nil {
		return nil
	}
	switch typ := t.(type) {
	case *ast.NamedType:
		if typ.Name == config.SelfTypeName {
			return &ast.NamedType{Token: typ.Token, Name: config.RuntimeTypeName}
		}
		return typ
	case *ast.PathType:
		if !hasSelfSegment(typ.Segments) {
			return typ
		}
		segments := make([]string, len(typ.Segments))
		for i, seg := range typ.Segments {
			if seg == config.SelfTypeName {
				seg = config.RuntimeTypeName
			}
			segments[i] = seg
		}
		return &ast.PathType{Token: typ.Token, Segments: segments}
	case *ast.GenericType:
		args := make([]ast.TypeExpr, len(typ.Args))
		for i, arg := range typ.Args {
			args[i] = AdaptSelfType(arg)
		}
		return &ast.GenericType{Token: typ.Token, Name: typ.Name, Args: args}
	case *ast.QualifiedType:
		segments := make([]string, len(typ.Segments))
		for i, seg := range typ.Segments {
			if seg == config.SelfTypeName {
				seg = config.RuntimeTypeName
			}
			segments[i] = seg
		}
		return &ast.QualifiedType{
			Token:    typ.Token,
			Base:     AdaptSelfType(typ.Base),
			Trait:    AdaptSelfType(typ.Trait),
			Segments: segments,
		}
	case *ast.TupleType:
		elems := make([]ast.TypeExpr, len(typ.Elems))
		for i, e := range typ.Elems {
			elems[i] = AdaptSelfType(e)
		}
		return &ast.TupleType{Token: typ.Token, Elems: elems}
	default:
		return t
	}
}

func hasSelfSegment(segments []string) bool {
	for _, seg := range segments {
		if seg == config.SelfTypeName {
			return true
		}
	}
	return false
}
