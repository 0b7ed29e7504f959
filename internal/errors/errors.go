// Package errors provides error formatting for the P front end. It
// renders semantic diagnostics with the offending source line and a
// caret pointing at the error column.
package errors

import (
	"fmt"
	"strings"

	"github.com/plang-dev/go-plang/pkg/token"
)

// CompilerError represents a single diagnostic with position and the raw
// text of the offending source line.
type CompilerError struct {
	Message    string
	SourceLine string
	Pos        token.Position
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(pos token.Position, message, sourceLine string) *CompilerError {
	return &CompilerError{
		Pos:        pos,
		Message:    message,
		SourceLine: sourceLine,
	}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the diagnostic:
//
//	<Error> Found in line L, column C: <message>
//	    <source line L>
//	    <column-1 spaces>^
//
// If color is true, ANSI color codes highlight the header and caret for
// terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if color {
		sb.WriteString("\033[1;31m") // red bold
	}
	sb.WriteString(fmt.Sprintf("<Error> Found in line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message))
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	sb.WriteString("    ")
	sb.WriteString(e.SourceLine)
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", 3+e.Pos.Column))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	return sb.String()
}
