package compiler

import (
	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/config"
	"github.com/mustermeiszer/ifc/internal/diagnostics"
)

// The signature checks are pure: they consult only the syntax they are given,
// never the accumulated tables.

// checkCallFirstArg requires the type to be exactly `Self::RuntimeOrigin`.
func checkCallFirstArg(ty ast.TypeExpr) *diagnostics.DiagnosticError {
	if pt, ok := ty.(*ast.PathType); ok {
		if len(pt.Segments) == 2 && pt.Segments[0] == config.SelfTypeName && pt.Segments[1] == config.OriginTypeName {
			return nil
		}
	}
	return diagnostics.NewError(diagnostics.ErrC002, ty.GetToken(),
		"invalid type: expected `Self::RuntimeOrigin`, got", ty.String())
}

// checkSelectArg requires the type to be a single-argument `Select<$ty>`
// wrapper and yields the inner type as the selector's expected return type.
func checkSelectArg(ty ast.TypeExpr) (ast.TypeExpr, *diagnostics.DiagnosticError) {
	if gt, ok := ty.(*ast.GenericType); ok {
		if gt.Name == config.SelectWrapperName && len(gt.Args) == 1 {
			return gt.Args[0], nil
		}
	}
	return nil, diagnostics.NewError(diagnostics.ErrC008, ty.GetToken(),
		"invalid type: expected `Select<$ty>`, got", ty.String())
}

// checkCallReturn requires the return type to be exactly `CallResult`.
func checkCallReturn(ty ast.TypeExpr) *diagnostics.DiagnosticError {
	if nt, ok := ty.(*ast.NamedType); ok && nt.Name == config.CallResultName {
		return nil
	}
	return diagnostics.NewError(diagnostics.ErrC003, ty.GetToken(),
		"invalid return type: expected `"+config.CallResultName+"`, got", ty.String())
}

// checkViewReturn requires the return type to be exactly `ViewResult`.
func checkViewReturn(ty ast.TypeExpr) *diagnostics.DiagnosticError {
	if nt, ok := ty.(*ast.NamedType); ok && nt.Name == config.ViewResultName {
		return nil
	}
	return diagnostics.NewError(diagnostics.ErrV001, ty.GetToken(),
		"invalid return type: expected `"+config.ViewResultName+"`, got", ty.String())
}

// checkSelectableArg requires the type to be the opaque selection key `H256`.
func checkSelectableArg(ty ast.TypeExpr) *diagnostics.DiagnosticError {
	if nt, ok := ty.(*ast.NamedType); ok && nt.Name == config.SelectionKeyName {
		return nil
	}
	return diagnostics.NewError(diagnostics.ErrS001, ty.GetToken(),
		"invalid type: expected `"+config.SelectionKeyName+"`, got", ty.String())
}
