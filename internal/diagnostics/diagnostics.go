// Package diagnostics defines the coded, position-carrying errors produced by
// every stage of the compiler. A DiagnosticError is the error type end to end:
// stages never wrap it into anything else, and the CLI renders it directly.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/mustermeiszer/ifc/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // malformed attribute
	ErrP003 ErrorCode = "P003" // malformed type expression
	ErrP004 ErrorCode = "P004" // malformed method signature

	// Directive vocabulary
	ErrD001 ErrorCode = "D001" // unrecognized interface directive
	ErrD002 ErrorCode = "D002" // malformed directive content
	ErrD003 ErrorCode = "D003" // index literal out of range or suffixed

	// Call pass
	ErrC001 ErrorCode = "C001" // wrong item or parameter shape
	ErrC002 ErrorCode = "C002" // wrong first argument type
	ErrC003 ErrorCode = "C003" // wrong return type
	ErrC004 ErrorCode = "C004" // weight cardinality
	ErrC005 ErrorCode = "C005" // call index cardinality
	ErrC006 ErrorCode = "C006" // conflicting call indices
	ErrC007 ErrorCode = "C007" // selector directive misuse
	ErrC008 ErrorCode = "C008" // wrong selection wrapper shape
	ErrC009 ErrorCode = "C009" // argument attribute or pattern misuse

	// Selector pass
	ErrS001 ErrorCode = "S001" // malformed selector method
	ErrS002 ErrorCode = "S002" // duplicate or conflicting selector declarations
	ErrS003 ErrorCode = "S003" // unresolved selector requirement

	// View pass
	ErrV001 ErrorCode = "V001" // wrong view shape
	ErrV002 ErrorCode = "V002" // view index cardinality
	ErrV003 ErrorCode = "V003" // conflicting view indices
)

// DiagnosticError is a compile-time diagnostic tied to a source position.
// Related carries secondary locations for diagnostics that reference more
// than one site (e.g. both methods of a call-index collision).
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
	Related []*DiagnosticError
}

// NewError builds a diagnostic. Extra args are appended to the message,
// space-separated, mirroring how stages tack on offending lexemes.
func NewError(code ErrorCode, tok token.Token, msg string, args ...interface{}) *DiagnosticError {
	if len(args) > 0 {
		parts := []string{msg}
		for _, a := range args {
			parts = append(parts, fmt.Sprintf("%v", a))
		}
		msg = strings.Join(parts, " ")
	}
	return &DiagnosticError{Code: code, Token: tok, Message: msg}
}

// Combine attaches another diagnostic as a secondary location of e.
// Returns e to allow chaining at the return site.
func (e *DiagnosticError) Combine(other *DiagnosticError) *DiagnosticError {
	e.Related = append(e.Related, other)
	return e
}

func (e *DiagnosticError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s: %s", e.Code, e.position(), e.Message)
	for _, rel := range e.Related {
		fmt.Fprintf(&sb, "\n  related: %s: %s", rel.position(), rel.Message)
	}
	return sb.String()
}

func (e *DiagnosticError) position() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%s", e.File, e.Token.Pos())
	}
	return e.Token.Pos()
}
