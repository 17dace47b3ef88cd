package diagnostics

import (
	"errors"
	"fmt"

	"github.com/funvibe/sol/internal/token"
)

type ErrorCode string

const (
	// Parser errors
	ErrP001 ErrorCode = "P001" // unexpected end of input
	ErrP002 ErrorCode = "P002" // unterminated application
	ErrP003 ErrorCode = "P003" // invalid identifier / token cannot start a term
	ErrP004 ErrorCode = "P004" // nesting too deep
)

var codeTitles = map[ErrorCode]string{
	ErrP001: "unexpected end of input",
	ErrP002: "unterminated application",
	ErrP003: "invalid identifier",
	ErrP004: "nesting too deep",
}

// Title returns a short human description of the code.
func (c ErrorCode) Title() string {
	if title, ok := codeTitles[c]; ok {
		return title
	}
	return "error"
}

// DiagnosticError is a positioned error produced by one of the pipeline
// stages.
type DiagnosticError struct {
	Code    ErrorCode
	File    string
	Token   token.Token
	Offset  int
	Line    int
	Column  int
	Message string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Offset:  tok.Offset,
		Line:    tok.Line,
		Column:  tok.Column,
		Message: message,
	}
}

func (e *DiagnosticError) Error() string {
	loc := fmt.Sprintf("%d:%d", e.Line, e.Column)
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	return fmt.Sprintf("%s: [%s] %s", loc, e.Code, e.Message)
}

// IsIncomplete reports whether err means the input stopped too early, so
// that more text could still make it valid. The REPL uses it to keep
// reading lines.
func IsIncomplete(err error) bool {
	var de *DiagnosticError
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == ErrP001 || de.Code == ErrP002
}
