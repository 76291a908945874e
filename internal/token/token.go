package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT_UPPER TokenType = "IDENT_UPPER" // Pip20, Select, CallResult
	IDENT_LOWER TokenType = "IDENT_LOWER" // transfer, origin, amount
	SELF        TokenType = "SELF"        // Self
	INT         TokenType = "INT"         // 0, 255, 10u8 (suffix kept in Lexeme)
	DOC_COMMENT TokenType = "DOC_COMMENT" // /// ...

	// Keywords
	TRAIT TokenType = "TRAIT"
	FN    TokenType = "FN"
	AS    TokenType = "AS"

	// Punctuation
	HASH      TokenType = "#"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LT        TokenType = "<"
	GT        TokenType = ">"
	COMMA     TokenType = ","
	COLON     TokenType = ":"
	PATH_SEP  TokenType = "::"
	ARROW     TokenType = "->"
	SEMICOLON TokenType = ";"

	// Operators (only meaningful inside attribute content, e.g. weight formulas)
	PLUS    TokenType = "+"
	MINUS   TokenType = "-"
	STAR    TokenType = "*"
	SLASH   TokenType = "/"
	PERCENT TokenType = "%"
	DOT     TokenType = "."
)

// Token is a single lexeme with its source position.
// Lexeme preserves the exact source text; Literal holds the cooked value
// (e.g. the identifier name, or the digits of an integer without suffix).
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Column  int
	Offset  int // byte offset of the first rune, for verbatim source slicing
}

// Pos renders the token position as "line:column" for diagnostics.
func (t Token) Pos() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

var keywords = map[string]TokenType{
	"trait": TRAIT,
	"fn":    FN,
	"as":    AS,
	"Self":  SELF,
}

// LookupIdent maps reserved words to their keyword type; everything else is
// classified by the case of its first rune.
func LookupIdent(ident string, upper bool) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if upper {
		return IDENT_UPPER
	}
	return IDENT_LOWER
}
