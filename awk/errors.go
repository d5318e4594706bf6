package awk

import (
	"errors"
	"fmt"

	"github.com/kolkov/vshell/internal/interp"
	"github.com/kolkov/vshell/internal/parser"
)

// SyntaxError represents an error in program source: a lexical or
// grammar error, a call to an undefined function or a bad regex literal.
type SyntaxError struct {
	Line    int    // 1-based line number
	Column  int    // 1-based column number
	Message string // Error description
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// InputError reports an input source that is missing or unreadable.
type InputError struct {
	Name string // File name, empty for standard input
	Err  error
}

func (e *InputError) Error() string {
	name := e.Name
	if name == "" {
		name = "standard input"
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// EvalError represents an error during execution, such as division by
// zero. The action that failed is abandoned and processing continues
// with the next record; the first EvalError is returned once the run
// completes.
type EvalError struct {
	Line    int
	Column  int
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("runtime error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// ExitError represents a normal exit with a status code.
// This is not an error condition; it indicates the program
// called exit with the given nonzero status.
type ExitError struct {
	Code int // Exit status code
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// IsExitError reports whether err is an ExitError and returns the exit code.
// Returns (code, true) if err is an ExitError, or (0, false) otherwise.
func IsExitError(err error) (int, bool) {
	var e *ExitError
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// publicError converts errors from the internal stages to the public types.
func publicError(err error) error {
	var (
		pe *parser.ParseError
		re *interp.RegexError
		ee *interp.EvalError
		xe *interp.ExitError
		ie *interp.InputError
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &pe):
		return &SyntaxError{Line: pe.Pos.Line, Column: pe.Pos.Column, Message: pe.Message}
	case errors.As(err, &re):
		return &SyntaxError{
			Line:    re.Pos.Line,
			Column:  re.Pos.Column,
			Message: fmt.Sprintf("invalid regex /%s/: %v", re.Pattern, re.Err),
		}
	case errors.As(err, &ee):
		return &EvalError{Line: ee.Pos.Line, Column: ee.Pos.Column, Message: ee.Message}
	case errors.As(err, &xe):
		return &ExitError{Code: xe.Code}
	case errors.As(err, &ie):
		return &InputError{Name: ie.Name, Err: ie.Err}
	}
	return err
}
