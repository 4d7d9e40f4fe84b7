// Package lexer tokenizes eka source text per the grammar fixed in the
// language specification: identifiers, paths, integers, floats, hash
// literals (#t/#f/#N), character literals, bracket/paren delimiters,
// strings, and line comments.
package lexer

import "fmt"

// Position is a 1-indexed line/column location in the source, measured in
// runes (not bytes or display width) so multi-byte UTF-8 characters each
// count as one column.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TokenType classifies a Token.
type TokenType int

const (
	EOF TokenType = iota
	IDENT
	PATH
	NUMBER
	FLOAT
	HASH    // #t, #f, #N
	CHAR
	LPAREN
	RPAREN
	LSQUARE
	RSQUARE
	LCURLY
	RCURLY
	QUOTE
	STRING
	COMMENT
	KEYWORD
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	IDENT:   "IDENT",
	PATH:    "PATH",
	NUMBER:  "NUMBER",
	FLOAT:   "FLOAT",
	HASH:    "HASH",
	CHAR:    "CHAR",
	LPAREN:  "LPAREN",
	RPAREN:  "RPAREN",
	LSQUARE: "LSQUARE",
	RSQUARE: "RSQUARE",
	LCURLY:  "LCURLY",
	RCURLY:  "RCURLY",
	QUOTE:   "QUOTE",
	STRING:  "STRING",
	COMMENT: "COMMENT",
	KEYWORD: "KEYWORD",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is one lexical unit along with its source position. Literal is
// the raw or decoded text depending on Type: for IDENT/COMMENT it's the
// source text; for STRING it's the decoded contents (quotes stripped);
// for PATH it's the path segments joined by "/" for display, with
// Segments holding the parsed pieces.
type Token struct {
	Type     TokenType
	Literal  string
	Segments []string // only meaningful when Type == PATH
	Number   int64    // only meaningful when Type == NUMBER
	Float    float64  // only meaningful when Type == FLOAT
	Char     rune     // only meaningful when Type == CHAR
	Pos      Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Pos)
}
