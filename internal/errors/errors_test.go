package errors

import (
	"strings"
	"testing"

	"github.com/eka-lang/eka/internal/lexer"
	"github.com/eka-lang/eka/internal/parser"
)

func TestCompilerErrorFormatShowsSourceLineAndCaret(t *testing.T) {
	src := "(def x (+ 1 y))"
	err := NewCompilerError(lexer.Position{Line: 1, Column: 12}, "undefined variable y", src, "example.eka")

	out := err.Format(false)
	if !strings.Contains(out, "example.eka:1:12") {
		t.Fatalf("missing position header: %q", out)
	}
	if !strings.Contains(out, src) {
		t.Fatalf("missing source line: %q", out)
	}
	if !strings.Contains(out, "undefined variable y") {
		t.Fatalf("missing message: %q", out)
	}
}

func TestCompilerErrorFormatWithColor(t *testing.T) {
	err := NewCompilerError(lexer.Position{Line: 1, Column: 1}, "oops", "x", "")
	out := err.Format(true)
	if !strings.Contains(out, "\033[1;31m") || !strings.Contains(out, "\033[1m") {
		t.Fatalf("expected ANSI escapes in colored output, got %q", out)
	}
}

func TestCompilerErrorFormatWithoutSource(t *testing.T) {
	err := NewCompilerError(lexer.Position{Line: 5, Column: 3}, "parse failure", "", "")
	out := err.Format(false)
	if strings.Contains(out, "|") {
		t.Fatalf("did not expect a source line gutter with no source: %q", out)
	}
	if !strings.Contains(out, "parse failure") {
		t.Fatalf("missing message: %q", out)
	}
}

func TestCompilerErrorFormatPreservesTabsInCaretGutter(t *testing.T) {
	src := "\t(foo bad)"
	err := NewCompilerError(lexer.Position{Line: 1, Column: 7}, "undefined symbol bad", src, "")

	out := err.Format(false)
	lines := strings.Split(out, "\n")
	var caretLine string
	for _, l := range lines {
		if strings.Contains(l, "^") {
			caretLine = l
		}
	}
	if caretLine == "" {
		t.Fatalf("no caret line found in %q", out)
	}
	if !strings.HasPrefix(strings.TrimLeft(caretLine, " "), "\t") {
		t.Fatalf("expected leading tab preserved in caret gutter, got %q", caretLine)
	}
}

func TestFromLexErrorUsesKindStringWithoutDuplicatingPosition(t *testing.T) {
	lexErr := &lexer.LexError{Kind: lexer.EmptyPathSegment, Pos: lexer.Position{Line: 2, Column: 4}}

	ce := FromLexError(lexErr, "a//b", "a.eka")
	if ce.Message != "empty segment in path" {
		t.Fatalf("got message %q", ce.Message)
	}
	if strings.Contains(ce.Message, " at ") || strings.Contains(ce.Message, lexErr.Pos.String()) {
		t.Fatalf("message should not duplicate position info: %q", ce.Message)
	}
}

func TestFromParseErrorCarriesMessageAndPosition(t *testing.T) {
	parseErr := &parser.ParseError{Pos: lexer.Position{Line: 3, Column: 7}, Msg: "expected closing paren"}

	ce := FromParseError(parseErr, "(foo", "a.eka")
	if ce.Message != "expected closing paren" {
		t.Fatalf("got message %q", ce.Message)
	}
	if ce.Pos.Line != 3 || ce.Pos.Column != 7 {
		t.Fatalf("got pos %+v", ce.Pos)
	}
}
