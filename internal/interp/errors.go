package interp

import (
	"errors"
	"fmt"

	"github.com/kolkov/vshell/internal/token"
	"github.com/kolkov/vshell/internal/types"
)

// Control flow travels up the Go call stack as errors.
var (
	errBreak    = errors.New("break")
	errContinue = errors.New("continue")
	errNext     = errors.New("next")
)

// returnValue carries a function's result up to the call.
type returnValue struct {
	value types.Value
}

func (r *returnValue) Error() string { return "return" }

// ExitError is returned when the program runs exit.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// EvalError is a runtime error in one action, such as division by zero.
// The driver abandons the action and moves on to the next record.
type EvalError struct {
	Pos     token.Position
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("runtime error at %s: %s", e.Pos, e.Message)
}

// InputError reports an input source that could not be read.
type InputError struct {
	Name string
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

// RegexError reports a regex literal that does not compile.
type RegexError struct {
	Pos     token.Position
	Pattern string
	Err     error
}

func (e *RegexError) Error() string {
	return fmt.Sprintf("%s: invalid regex /%s/: %v", e.Pos, e.Pattern, e.Err)
}

func (e *RegexError) Unwrap() error { return e.Err }

func evalErrorf(pos token.Position, format string, args ...any) *EvalError {
	return &EvalError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
