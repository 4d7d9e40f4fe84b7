// Package errors renders lex and parse errors with source context and a
// caret pointing at the offending column, for the CLI to print.
package errors

import (
	"fmt"
	"strings"

	"github.com/eka-lang/eka/internal/lexer"
	"github.com/eka-lang/eka/internal/parser"
)

// CompilerError is a single lex or parse failure with enough context to
// be pretty-printed: where it happened, what the source looked like
// there, and which file (if any) it came from.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// NewCompilerError builds a CompilerError.
func NewCompilerError(pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface with uncolored output.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error: a header naming the file and position, the
// offending source line, a caret under the exact column, then the
// message. If color is true, the caret and message are wrapped in ANSI
// escapes for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)))
		sb.WriteString(caretGutter(line, e.Pos.Column))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// caretGutter builds the whitespace run that lines a caret up under
// column col (1-indexed, counting runes the same way the lexer does).
// Leading tabs in line are preserved as tabs rather than flattened to
// spaces, so the caret still lands under the right character in a
// terminal that expands tabs to more than one cell; every other rune is
// replaced with a single space regardless of its own display width.
func caretGutter(line string, col int) string {
	var gutter strings.Builder
	for i, r := range []rune(line) {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			gutter.WriteRune('\t')
		} else {
			gutter.WriteRune(' ')
		}
	}
	return gutter.String()
}

// sourceLine extracts line lineNum (1-indexed) from Source.
func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FromLexError adapts a lexer.LexError into a CompilerError carrying
// source and file context.
func FromLexError(err *lexer.LexError, source, file string) *CompilerError {
	return NewCompilerError(err.Pos, err.Kind.String(), source, file)
}

// FromParseError adapts a parser.ParseError into a CompilerError carrying
// source and file context.
func FromParseError(err *parser.ParseError, source, file string) *CompilerError {
	return NewCompilerError(err.Pos, err.Msg, source, file)
}
