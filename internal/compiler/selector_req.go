package compiler

import "github.com/mustermeiszer/ifc/internal/ast"

// SelectorReq describes the selector indirection an entry requires. A nil
// SelectorReq means no indirection at all.
type SelectorReq interface {
	selectorReq()
	// ReturnType is the type the selector must produce, taken from the
	// entry's `Select<$ty>` wrapper before any Self rewrite.
	ReturnType() ast.TypeExpr
	// Describe renders the requirement for diagnostics.
	Describe() string
}

// DefaultSelectorReq requires whichever selector the definition marks as
// default.
type DefaultSelectorReq struct {
	Return ast.TypeExpr
}

func (r DefaultSelectorReq) selectorReq()             {}
func (r DefaultSelectorReq) ReturnType() ast.TypeExpr { return r.Return }
func (r DefaultSelectorReq) Describe() string {
	return "default selector returning `" + r.Return.String() + "`"
}

// NamedSelectorReq requires the selector declared under Name.
type NamedSelectorReq struct {
	Name   string
	Return ast.TypeExpr
}

func (r NamedSelectorReq) selectorReq()             {}
func (r NamedSelectorReq) ReturnType() ast.TypeExpr { return r.Return }
func (r NamedSelectorReq) Describe() string {
	return "selector `" + r.Name + "` returning `" + r.Return.String() + "`"
}
