package parser

import (
	"fmt"
	"strings"

	"github.com/mustermeiszer/ifc/internal/ast"
	"github.com/mustermeiszer/ifc/internal/diagnostics"
	"github.com/mustermeiszer/ifc/internal/pipeline"
	"github.com/mustermeiszer/ifc/internal/token"
)

// Parser is a recursive-descent parser over a pre-lexed token stream.
// Diagnostics are appended to the pipeline context as they are found.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	ctx *pipeline.PipelineContext
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}
	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else if len(p.tokens) > 0 {
		p.peekToken = p.tokens[len(p.tokens)-1] // EOF
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(diagnostics.ErrP001, p.peekToken, "expected '%s', got '%s'", t, p.peekToken.Lexeme)
	return false
}

func (p *Parser) errorf(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	err := diagnostics.NewError(code, tok, fmt.Sprintf(format, args...))
	err.File = p.ctx.FilePath
	p.ctx.Errors = append(p.ctx.Errors, err)
}

// ParseFile parses the whole token stream into a file node. Parsing a
// definition stops at its first error and synchronizes to the next closing
// brace so remaining definitions still get parsed.
func (p *Parser) ParseFile() *ast.File {
	file := &ast.File{Path: p.ctx.FilePath}

	for !p.curTokenIs(token.EOF) {
		def := p.parseDefinition()
		if def == nil {
			p.synchronize()
			continue
		}
		file.Definitions = append(file.Definitions, def)
		p.nextToken()
	}

	return file
}

// synchronize skips ahead to the token after the next '}' (or to EOF) so a
// malformed definition does not cascade into the next one.
func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.RBRACE) {
			p.nextToken()
			return
		}
		p.nextToken()
	}
}

// parseDefinition parses one annotated `trait` block. The current token must
// be the first attribute, doc comment, or the `trait` keyword itself.
func (p *Parser) parseDefinition() *ast.Definition {
	docs, attrs, ok := p.parseDocsAndAttrs()
	if !ok {
		return nil
	}

	if !p.curTokenIs(token.TRAIT) {
		p.errorf(diagnostics.ErrP001, p.curToken, "expected 'trait', got '%s'", p.curToken.Lexeme)
		return nil
	}
	def := &ast.Definition{Token: p.curToken, Docs: docs, Attrs: attrs}

	if !p.expectPeek(token.IDENT_UPPER) {
		return nil
	}
	def.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken() // move past '{'

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		method := p.parseMethod()
		if method == nil {
			return nil
		}
		def.Methods = append(def.Methods, method)
		p.nextToken() // move past ';'
	}

	if !p.curTokenIs(token.RBRACE) {
		p.errorf(diagnostics.ErrP001, p.curToken, "expected '}', got '%s'", p.curToken.Lexeme)
		return nil
	}

	return def
}

// parseDocsAndAttrs collects the interleaved doc comments and attributes that
// precede a definition or method. The current token afterwards is the first
// token of the annotated item.
func (p *Parser) parseDocsAndAttrs() (docs []string, attrs []ast.Attribute, ok bool) {
	for {
		switch p.curToken.Type {
		case token.DOC_COMMENT:
			docs = append(docs, p.curToken.Literal)
			p.nextToken()
		case token.HASH:
			attr := p.parseAttribute()
			if attr == nil {
				return nil, nil, false
			}
			attrs = append(attrs, *attr)
			p.nextToken()
		default:
			return docs, attrs, true
		}
	}
}

// parseAttribute parses `#[path::to::name]` or `#[path::to::name(content)]`.
// The content tokens are collected with paren balancing and also captured
// verbatim from the source, so formula expressions survive exactly as
// written. The current token must be '#'; on return it is the closing ']'.
func (p *Parser) parseAttribute() *ast.Attribute {
	attr := &ast.Attribute{Token: p.curToken}

	if !p.expectPeek(token.LBRACKET) {
		return nil
	}
	if !p.peekTokenIs(token.IDENT_LOWER) && !p.peekTokenIs(token.IDENT_UPPER) {
		p.errorf(diagnostics.ErrP002, p.peekToken, "expected attribute path, got '%s'", p.peekToken.Lexeme)
		return nil
	}
	p.nextToken()
	attr.Path = append(attr.Path, p.curToken.Literal)

	for p.peekTokenIs(token.PATH_SEP) {
		p.nextToken()
		if !p.peekTokenIs(token.IDENT_LOWER) && !p.peekTokenIs(token.IDENT_UPPER) {
			p.errorf(diagnostics.ErrP002, p.peekToken, "expected attribute path segment, got '%s'", p.peekToken.Lexeme)
			return nil
		}
		p.nextToken()
		attr.Path = append(attr.Path, p.curToken.Literal)
	}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken() // now at '('
		start := -1
		depth := 1
		for {
			if p.peekTokenIs(token.EOF) {
				p.errorf(diagnostics.ErrP002, attr.Token, "unterminated attribute content")
				return nil
			}
			p.nextToken()
			if p.curTokenIs(token.LPAREN) {
				depth++
			} else if p.curTokenIs(token.RPAREN) {
				depth--
				if depth == 0 {
					break
				}
			}
			if start < 0 {
				start = p.curToken.Offset
			}
			attr.Content = append(attr.Content, p.curToken)
		}
		if start >= 0 {
			attr.Raw = strings.TrimSpace(p.ctx.SourceCode[start:p.curToken.Offset])
		}
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return attr
}

// parseMethod parses one `fn` declaration ending in ';'. The current token
// must be its first doc comment, attribute, or the `fn` keyword.
func (p *Parser) parseMethod() *ast.MethodDeclaration {
	docs, attrs, ok := p.parseDocsAndAttrs()
	if !ok {
		return nil
	}

	if !p.curTokenIs(token.FN) {
		p.errorf(diagnostics.ErrP001, p.curToken, "expected 'fn', got '%s'", p.curToken.Lexeme)
		return nil
	}
	method := &ast.MethodDeclaration{Token: p.curToken, Docs: docs, Attrs: attrs}

	if !p.peekTokenIs(token.IDENT_LOWER) {
		p.errorf(diagnostics.ErrP004, p.peekToken, "method name must be a lowercase identifier, got '%s'", p.peekToken.Lexeme)
		return nil
	}
	p.nextToken()
	method.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	for !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		param := p.parseParam()
		if param == nil {
			return nil
		}
		method.Params = append(method.Params, param)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else if !p.peekTokenIs(token.RPAREN) {
			p.errorf(diagnostics.ErrP004, p.peekToken, "expected ',' or ')', got '%s'", p.peekToken.Lexeme)
			return nil
		}
	}
	p.nextToken() // consume ')'

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		method.Return = p.parseType()
		if method.Return == nil {
			return nil
		}
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return method
}

// parseParam parses one formal parameter: optional attributes, a binding
// pattern, ':' and a type. The binding is normally a plain identifier; a
// tuple pattern like `(a, b)` is accepted syntactically (Name stays nil) and
// rejected later by the passes that require identifier bindings.
func (p *Parser) parseParam() *ast.Param {
	param := &ast.Param{Token: p.curToken}

	for p.curTokenIs(token.HASH) {
		attr := p.parseAttribute()
		if attr == nil {
			return nil
		}
		param.Attrs = append(param.Attrs, *attr)
		p.nextToken()
	}
	param.Token = p.curToken

	switch p.curToken.Type {
	case token.IDENT_LOWER:
		param.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	case token.LPAREN:
		// Tuple pattern: consume balanced parens, leave Name nil.
		depth := 1
		for depth > 0 {
			if p.peekTokenIs(token.EOF) {
				p.errorf(diagnostics.ErrP004, param.Token, "unterminated parameter pattern")
				return nil
			}
			p.nextToken()
			if p.curTokenIs(token.LPAREN) {
				depth++
			} else if p.curTokenIs(token.RPAREN) {
				depth--
			}
		}
	default:
		p.errorf(diagnostics.ErrP004, p.curToken, "expected parameter name, got '%s'", p.curToken.Lexeme)
		return nil
	}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()

	param.Type = p.parseType()
	if param.Type == nil {
		return nil
	}
	return param
}
