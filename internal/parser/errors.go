// Package parser builds syntax trees from record-language source.
package parser

import (
	"fmt"

	"github.com/kolkov/vshell/internal/token"
)

// ParseError is a syntax error with the position where it was detected.
type ParseError struct {
	Pos     token.Position
	Message string
}

// Error returns "line:col: message".
func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

func errorf(pos token.Position, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
