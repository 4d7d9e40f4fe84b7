// Package parser turns a token stream from internal/lexer into the
// expression graph and function table defined by internal/ast, by
// recursive descent with 2-token lookahead.
package parser

import (
	"fmt"

	"github.com/eka-lang/eka/internal/ast"
	"github.com/eka-lang/eka/internal/lexer"
)

// Result holds the parser's output: the interner every Ident in Exprs and
// Funcs was produced from, plus the two stores it populated.
type Result struct {
	Interner *ast.Interner
	Exprs    *ast.ExprStore
	Funcs    *ast.FunctionStore
}

// Parser consumes a fully-tokenized source and builds an expression graph.
// Tokenizing up front (rather than lazily alongside parsing) keeps the
// 2-token lookahead a matter of plain slice indexing.
type Parser struct {
	toks []lexer.Token
	pos  int

	interner *ast.Interner
	exprs    *ast.ExprStore
	funcs    *ast.FunctionStore
}

// New lexes source in full and returns a Parser ready to parse it, or the
// lex error that stopped tokenization.
func New(source string) (*Parser, error) {
	toks, err := lexer.New(source).All()
	if err != nil {
		return nil, err
	}
	return &Parser{
		toks:     toks,
		interner: ast.NewInterner(),
		exprs:    ast.NewExprStore(),
		funcs:    ast.NewFunctionStore(),
	}, nil
}

// Parse parses source end to end and returns the resulting Result.
func Parse(source string) (*Result, error) {
	p, err := New(source)
	if err != nil {
		return nil, err
	}
	if err := p.ParseProgram(); err != nil {
		return nil, err
	}
	return &Result{Interner: p.interner, Exprs: p.exprs, Funcs: p.funcs}, nil
}

// ParseProgram parses every top-level expression, adding each as a root of
// the expression store in source order.
func (p *Parser) ParseProgram() error {
	for p.peek().Type != lexer.EOF {
		id, err := p.parseExpr()
		if err != nil {
			return err
		}
		p.exprs.AddRoot(id)
	}
	return nil
}

func (p *Parser) peek() lexer.Token {
	return p.peekAt(0)
}

func (p *Parser) peek1() lexer.Token {
	return p.peekAt(1)
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF is always last
	}
	return p.toks[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) error {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expr(e ast.Expr) ast.ExprId {
	return p.exprs.Insert(e)
}

func (p *Parser) parenStart() error {
	tok := p.advance()
	if tok.Type != lexer.LPAREN {
		return p.errorf(tok.Pos, "expected `(`, got %s", tok.Type)
	}
	return nil
}

func (p *Parser) parenEnd() error {
	tok := p.advance()
	if tok.Type != lexer.RPAREN {
		return p.errorf(tok.Pos, "expected `)`, got %s", tok.Type)
	}
	return nil
}

func (p *Parser) tryParenEnd() bool {
	if p.peek().Type == lexer.RPAREN {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchIdent(want string) error {
	tok := p.advance()
	if tok.Type != lexer.IDENT {
		return p.errorf(tok.Pos, "expected identifier `%s`", want)
	}
	if tok.Literal != want {
		return p.errorf(tok.Pos, "expected identifier `%s`, got `%s`", want, tok.Literal)
	}
	return nil
}

func (p *Parser) ident() (ast.Ident, error) {
	tok := p.advance()
	if tok.Type != lexer.IDENT {
		return 0, p.errorf(tok.Pos, "expected identifier, got %s", tok.Type)
	}
	return p.interner.Intern(tok.Literal), nil
}

func (p *Parser) path() ([]ast.Ident, error) {
	tok := p.advance()
	if tok.Type != lexer.PATH {
		return nil, p.errorf(tok.Pos, "expected path, got %s", tok.Type)
	}
	segs := make([]ast.Ident, len(tok.Segments))
	for i, s := range tok.Segments {
		segs[i] = p.interner.Intern(s)
	}
	return segs, nil
}

// parseExpr dispatches on the next one or two tokens: a parenthesized form
// whose head is a recognized keyword identifier goes to its dedicated
// parser, anything else parenthesized is a call, and anything else again
// is a primitive.
func (p *Parser) parseExpr() (ast.ExprId, error) {
	tok := p.peek()
	if tok.Type == lexer.LPAREN {
		head := p.peek1()
		if head.Type == lexer.IDENT {
			switch head.Literal {
			case "def":
				return p.parseDef()
			case "set":
				return p.parseSet()
			case "defn":
				return p.parseFunc()
			case "begin":
				return p.parseBegin()
			case "cond":
				return p.parseCond()
			}
		}
		return p.parseCall()
	}
	return p.parsePrimitive()
}

func (p *Parser) parseCond() (ast.ExprId, error) {
	if err := p.parenStart(); err != nil {
		return 0, err
	}
	if err := p.matchIdent("cond"); err != nil {
		return 0, err
	}

	var branches []ast.CondBranch
	var def *ast.ExprId

	for !p.tryParenEnd() {
		if err := p.parenStart(); err != nil {
			return 0, err
		}
		tok := p.peek()
		if tok.Type == lexer.IDENT && tok.Literal == "default" {
			p.advance()
			if def != nil {
				return 0, p.errorf(tok.Pos, "cannot have multiple default branches in a cond expression")
			}
			d, err := p.parseExpr()
			if err != nil {
				return 0, err
			}
			if err := p.parenEnd(); err != nil {
				return 0, err
			}
			def = &d
			continue
		}
		branch, err := p.parseCondBranch()
		if err != nil {
			return 0, err
		}
		branches = append(branches, branch)
	}

	return p.expr(&ast.Cond{Branches: branches, Default: def}), nil
}

func (p *Parser) parseCondBranch() (ast.CondBranch, error) {
	condition, err := p.parseExpr()
	if err != nil {
		return ast.CondBranch{}, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return ast.CondBranch{}, err
	}
	if err := p.parenEnd(); err != nil {
		return ast.CondBranch{}, err
	}
	return ast.CondBranch{Condition: condition, Body: body}, nil
}

func (p *Parser) parseBegin() (ast.ExprId, error) {
	if err := p.parenStart(); err != nil {
		return 0, err
	}
	if err := p.matchIdent("begin"); err != nil {
		return 0, err
	}

	var body []ast.ExprId
	for !p.tryParenEnd() {
		id, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		body = append(body, id)
	}
	return p.expr(&ast.Begin{Body: body}), nil
}

func (p *Parser) parseDef() (ast.ExprId, error) {
	if err := p.parenStart(); err != nil {
		return 0, err
	}
	if err := p.matchIdent("def"); err != nil {
		return 0, err
	}

	name, err := p.ident()
	if err != nil {
		return 0, err
	}

	valueExpr, err := p.parseExpr()
	if err != nil {
		return 0, err
	}

	if err := p.parenEnd(); err != nil {
		return 0, err
	}

	return p.expr(&ast.DefVar{Name: name, Expr: valueExpr}), nil
}

func (p *Parser) parseSet() (ast.ExprId, error) {
	if err := p.parenStart(); err != nil {
		return 0, err
	}
	if err := p.matchIdent("set"); err != nil {
		return 0, err
	}

	if p.peek().Type == lexer.PATH {
		return p.parseSetPathBranch()
	}

	name, err := p.ident()
	if err != nil {
		return 0, err
	}

	data, err := p.parseExpr()
	if err != nil {
		return 0, err
	}

	if err := p.parenEnd(); err != nil {
		return 0, err
	}

	return p.expr(&ast.SetVar{Name: name, Expr: data}), nil
}

func (p *Parser) parseSetPathBranch() (ast.ExprId, error) {
	path, err := p.path()
	if err != nil {
		return 0, err
	}

	data, err := p.parseExpr()
	if err != nil {
		return 0, err
	}

	if err := p.parenEnd(); err != nil {
		return 0, err
	}

	return p.expr(&ast.SetPath{Path: path, Data: data}), nil
}

func (p *Parser) parseFunc() (ast.ExprId, error) {
	if err := p.parenStart(); err != nil {
		return 0, err
	}
	if err := p.matchIdent("defn"); err != nil {
		return 0, err
	}

	name, err := p.ident()
	if err != nil {
		return 0, err
	}
	caps, err := p.parseFuncCaps()
	if err != nil {
		return 0, err
	}
	params, err := p.parseFuncParams()
	if err != nil {
		return 0, err
	}

	var body []ast.ExprId
	for !p.tryParenEnd() {
		id, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		body = append(body, id)
	}

	var block ast.ExprId
	if len(body) == 1 {
		block = body[0]
	} else {
		block = p.expr(&ast.Begin{Body: body})
	}

	fnId := p.funcs.Insert(ast.Function{
		Name:     name,
		Captures: caps,
		Params:   params,
		Body:     block,
	})

	var fnExpr ast.Expr
	if len(caps) > 0 {
		fnExpr = &ast.ClosureExpr{Fn: fnId}
	} else {
		fnExpr = &ast.FunctionExpr{Fn: fnId}
	}
	fnExprId := p.expr(fnExpr)

	return p.expr(&ast.DefVar{Name: name, Expr: fnExprId}), nil
}

func (p *Parser) parseFuncCaps() ([]ast.Ident, error) {
	if p.peek().Type != lexer.LCURLY {
		return nil, nil
	}
	p.advance()

	var caps []ast.Ident
	for p.peek().Type != lexer.RCURLY {
		if p.peek().Type == lexer.EOF {
			return nil, p.errorf(p.peek().Pos, "unterminated capture list")
		}
		id, err := p.ident()
		if err != nil {
			return nil, err
		}
		caps = append(caps, id)
	}
	p.advance() // '}'
	return caps, nil
}

func (p *Parser) parseFuncParams() ([]ast.Ident, error) {
	tok := p.advance()
	if tok.Type != lexer.LSQUARE {
		return nil, p.errorf(tok.Pos, "expected function params")
	}

	var params []ast.Ident
	for p.peek().Type != lexer.RSQUARE {
		if p.peek().Type == lexer.EOF {
			return nil, p.errorf(p.peek().Pos, "unterminated parameter list")
		}
		id, err := p.ident()
		if err != nil {
			return nil, err
		}
		params = append(params, id)
	}
	p.advance() // ']'
	return params, nil
}

func (p *Parser) parseCall() (ast.ExprId, error) {
	if err := p.parenStart(); err != nil {
		return 0, err
	}

	callee, err := p.parseExpr()
	if err != nil {
		return 0, err
	}

	var args []ast.ExprId
	for !p.tryParenEnd() {
		id, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		args = append(args, id)
	}

	return p.expr(&ast.Call{Callee: callee, Args: args}), nil
}

func (p *Parser) parsePrimitive() (ast.ExprId, error) {
	tok := p.advance()
	switch tok.Type {
	case lexer.IDENT:
		return p.expr(&ast.GetVar{Name: p.interner.Intern(tok.Literal)}), nil
	case lexer.KEYWORD:
		return p.expr(&ast.Keyword{Name: p.interner.Intern(tok.Literal)}), nil
	case lexer.PATH:
		segs := make([]ast.Ident, len(tok.Segments))
		for i, s := range tok.Segments {
			segs[i] = p.interner.Intern(s)
		}
		return p.expr(&ast.GetPath{Path: segs}), nil
	case lexer.NUMBER:
		return p.expr(&ast.Number{Value: tok.Number}), nil
	case lexer.FLOAT:
		return p.expr(&ast.Float{Value: tok.Float}), nil
	case lexer.STRING:
		return p.expr(&ast.String{Value: tok.Literal}), nil
	case lexer.CHAR:
		return p.expr(&ast.Char{Value: tok.Char}), nil
	case lexer.HASH:
		switch tok.Literal {
		case "#t":
			return p.expr(&ast.Bool{Value: true}), nil
		case "#f":
			return p.expr(&ast.Bool{Value: false}), nil
		case "#N":
			return p.expr(&ast.None{}), nil
		default:
			return 0, p.errorf(tok.Pos, "unrecognized hash literal `%s`", tok.Literal)
		}
	default:
		return 0, p.errorf(tok.Pos, "expected primitive expression, got %s", tok.Type)
	}
}
