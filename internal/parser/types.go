package parser

import (
	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/diagnostics"
	"github.com/mustermeiszer/ifc/internal/token"
)

// parseType parses a type expression with the current token at its first
// token. On return the current token is the last token of the type.
//
// Grammar:
//
//	type      := qualified | tuple | path | generic | named
//	qualified := '<' type ('as' type)? '>' ('::' IDENT)+
//	tuple     := '(' (type (',' type)*)? ')'
//	path      := ('Self' | IDENT) ('::' IDENT)+
//	generic   := IDENT '<' type (',' type)* '>'
//	named     := IDENT
func (p *Parser) parseType() ast.TypeExpr {
	switch p.curToken.Type {
	case token.LT:
		return p.parseQualifiedType()
	case token.LPAREN:
		return p.parseTupleType()
	case token.SELF:
		return p.parsePathType()
	case token.IDENT_UPPER, token.IDENT_LOWER:
		if p.peekTokenIs(token.PATH_SEP) {
			return p.parsePathType()
		}
		if p.peekTokenIs(token.LT) {
			return p.parseGenericType()
		}
		return &ast.NamedType{Token: p.curToken, Name: p.curToken.Literal}
	default:
		p.errorf(diagnostics.ErrP003, p.curToken, "expected type, got '%s'", p.curToken.Lexeme)
		return nil
	}
}

// parsePathType parses `Self::RuntimeOrigin`, `pallet::Balance` or a bare
// `Self`.
func (p *Parser) parsePathType() ast.TypeExpr {
	pt := &ast.PathType{Token: p.curToken, Segments: []string{p.curToken.Literal}}
	if p.curTokenIs(token.SELF) {
		pt.Segments[0] = "Self"
	}

	for p.peekTokenIs(token.PATH_SEP) {
		p.nextToken()
		if !p.peekTokenIs(token.IDENT_UPPER) && !p.peekTokenIs(token.IDENT_LOWER) {
			p.errorf(diagnostics.ErrP003, p.peekToken, "expected path segment, got '%s'", p.peekToken.Lexeme)
			return nil
		}
		p.nextToken()
		pt.Segments = append(pt.Segments, p.curToken.Literal)
	}
	return pt
}

// parseGenericType parses `Name<arg, ...>` with the current token at the
// constructor name.
func (p *Parser) parseGenericType() ast.TypeExpr {
	gt := &ast.GenericType{Token: p.curToken, Name: p.curToken.Literal}
	p.nextToken() // now at '<'

	for {
		p.nextToken()
		arg := p.parseType()
		if arg == nil {
			return nil
		}
		gt.Args = append(gt.Args, arg)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.GT) {
			return nil
		}
		return gt
	}
}

// parseQualifiedType parses `<Base as Trait>::Seg::...` with the current
// token at '<'.
func (p *Parser) parseQualifiedType() ast.TypeExpr {
	qt := &ast.QualifiedType{Token: p.curToken}
	p.nextToken()

	qt.Base = p.parseType()
	if qt.Base == nil {
		return nil
	}

	if p.peekTokenIs(token.AS) {
		p.nextToken()
		p.nextToken()
		qt.Trait = p.parseType()
		if qt.Trait == nil {
			return nil
		}
	}

	if !p.expectPeek(token.GT) {
		return nil
	}

	if !p.peekTokenIs(token.PATH_SEP) {
		p.errorf(diagnostics.ErrP003, p.peekToken, "qualified type requires '::' after '>'")
		return nil
	}
	for p.peekTokenIs(token.PATH_SEP) {
		p.nextToken()
		if !p.peekTokenIs(token.IDENT_UPPER) && !p.peekTokenIs(token.IDENT_LOWER) {
			p.errorf(diagnostics.ErrP003, p.peekToken, "expected path segment, got '%s'", p.peekToken.Lexeme)
			return nil
		}
		p.nextToken()
		qt.Segments = append(qt.Segments, p.curToken.Literal)
	}
	return qt
}

// parseTupleType parses `(A, B, ...)` with the current token at '('.
func (p *Parser) parseTupleType() ast.TypeExpr {
	tt := &ast.TupleType{Token: p.curToken}

	for !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		tt.Elems = append(tt.Elems, elem)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else if !p.peekTokenIs(token.RPAREN) {
			p.errorf(diagnostics.ErrP003, p.peekToken, "expected ',' or ')', got '%s'", p.peekToken.Lexeme)
			return nil
		}
	}
	p.nextToken() // consume ')'
	return tt
}
