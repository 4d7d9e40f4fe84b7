package parser

import (
	"fmt"

	"github.com/eka-lang/eka/internal/lexer"
)

// ParseError is a single syntax error at a source position. Unlike lex
// errors, the parser has only one category: a position plus a
// human-readable message.
type ParseError struct {
	Pos lexer.Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}
