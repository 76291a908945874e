package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mustermeiszer/ifc/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
		l.ch = r
		l.position = l.readPosition
		l.readPosition += w
		l.column++
		return
	}

	l.position = l.readPosition
	l.readPosition++
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()
	off := l.position

	switch l.ch {
	case '#':
		tok = newToken(token.HASH, l.ch, l.line, l.column)
	case '[':
		tok = newToken(token.LBRACKET, l.ch, l.line, l.column)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, l.line, l.column)
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case '{':
		tok = newToken(token.LBRACE, l.ch, l.line, l.column)
	case '}':
		tok = newToken(token.RBRACE, l.ch, l.line, l.column)
	case '<':
		tok = newToken(token.LT, l.ch, l.line, l.column)
	case '>':
		tok = newToken(token.GT, l.ch, l.line, l.column)
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case ';':
		tok = newToken(token.SEMICOLON, l.ch, l.line, l.column)
	case '+':
		tok = newToken(token.PLUS, l.ch, l.line, l.column)
	case '*':
		tok = newToken(token.STAR, l.ch, l.line, l.column)
	case '%':
		tok = newToken(token.PERCENT, l.ch, l.line, l.column)
	case '.':
		tok = newToken(token.DOT, l.ch, l.line, l.column)
	case ':':
		if l.peekChar() == ':' {
			col := l.column
			l.readChar()
			tok = token.Token{Type: token.PATH_SEP, Lexeme: "::", Literal: "::", Line: l.line, Column: col}
		} else {
			tok = newToken(token.COLON, l.ch, l.line, l.column)
		}
	case '-':
		if l.peekChar() == '>' {
			col := l.column
			l.readChar()
			tok = token.Token{Type: token.ARROW, Lexeme: "->", Literal: "->", Line: l.line, Column: col}
		} else {
			tok = newToken(token.MINUS, l.ch, l.line, l.column)
		}
	case '/':
		if l.peekChar() == '/' {
			return l.readComment(off)
		}
		tok = newToken(token.SLASH, l.ch, l.line, l.column)
	case 0:
		tok.Type = token.EOF
		tok.Line = l.line
		tok.Column = l.column
	default:
		if isIdentStart(l.ch) {
			line, col := l.line, l.column
			ident := l.readIdentifier()
			upper := unicode.IsUpper([]rune(ident)[0])
			return token.Token{
				Type:    token.LookupIdent(ident, upper),
				Lexeme:  ident,
				Literal: ident,
				Line:    line,
				Column:  col,
				Offset:  off,
			}
		}
		if unicode.IsDigit(l.ch) {
			return l.readNumber(off)
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	tok.Offset = off
	l.readChar()
	return tok
}

// readComment consumes `//` and `///` comments. A `///` doc comment becomes a
// DOC_COMMENT token carrying the trimmed text; a plain `//` comment is skipped
// and the token after it is returned.
func (l *Lexer) readComment(off int) token.Token {
	line, col := l.line, l.column
	l.readChar() // first '/'
	l.readChar() // second '/'

	isDoc := l.ch == '/'
	if isDoc {
		l.readChar()
	}

	start := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	text := l.input[start:l.position]

	if isDoc {
		return token.Token{
			Type:    token.DOC_COMMENT,
			Lexeme:  "///" + text,
			Literal: strings.TrimSpace(text),
			Line:    line,
			Column:  col,
			Offset:  off,
		}
	}
	return l.NextToken()
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentStart(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads an integer literal. A trailing identifier run (e.g. the
// `u8` of `10u8`) is kept in the Lexeme but excluded from the Literal, so the
// directive parser can reject suffixed literals while naming the full token.
func (l *Lexer) readNumber(off int) token.Token {
	line, col := l.line, l.column
	start := l.position
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	digitsEnd := l.position
	for isIdentStart(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return token.Token{
		Type:    token.INT,
		Lexeme:  l.input[start:l.position],
		Literal: l.input[start:digitsEnd],
		Line:    line,
		Column:  col,
		Offset:  off,
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	return token.Token{Type: tokenType, Lexeme: string(ch), Literal: string(ch), Line: line, Column: col}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

// Tokens lexes the whole input, always ending with an EOF token.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}
