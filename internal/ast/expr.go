package ast

// Expr is any node in the expression graph. It has no methods beyond the
// marker because — unlike a traditional AST meant for printing and
// analysis — every node here is evaluated by a single type switch in the
// evaluator's RunExpr; nodes don't need to know how to stringify or
// position-report themselves for the core to function.
type Expr interface {
	exprNode()
}

// Begin evaluates each sub-expression in order inside a fresh lexical
// scope, yielding the value of the last one (or None if empty).
type Begin struct {
	Body []ExprId
}

// DefVar introduces name in the innermost active scope (or globals, at
// top level), shadowing any prior binding of the same name in that scope.
type DefVar struct {
	Name Ident
	Expr ExprId
}

// SetVar assigns an existing binding. It is an error if name is not
// already bound in the scope SetVar consults (see Evaluator.SetVar for
// which scope that is).
type SetVar struct {
	Name Ident
	Expr ExprId
}

// GetVar reads a binding, searching lexical scopes innermost-first and
// falling back to globals.
type GetVar struct {
	Name Ident
}

// CondBranch is one (condition, body) pair of a Cond.
type CondBranch struct {
	Condition ExprId
	Body      ExprId
}

// Cond evaluates each branch's condition in order; the first truthy one
// has its body evaluated and returned. If none match, Default runs if
// present, else the result is None.
type Cond struct {
	Branches []CondBranch
	Default  *ExprId
}

// FunctionExpr yields an unbound callable reference to a statically
// defined function (no captures).
type FunctionExpr struct {
	Fn FnId
}

// ClosureExpr yields a callable that additionally captures, by value
// snapshot at creation time, each identifier named in the function's
// Captures list.
type ClosureExpr struct {
	Fn FnId
}

// Call invokes Callee with Args, evaluated left to right. If Callee is
// itself a GetPath expression, the evaluator special-cases this into a
// method dispatch (see spec §4.F) rather than evaluating the path as a
// plain field read.
type Call struct {
	Callee ExprId
	Args   []ExprId
}

// Method invokes a named method on Receiver. The parser lowers most
// method-call syntax into Call(GetPath(...)); this node exists for
// completeness and for any caller that constructs the graph directly.
type Method struct {
	Receiver ExprId
	Name     Ident
	Args     []ExprId
}

// GetPath follows Path[0] as a variable lookup, then Path[1:] as a chain
// of field gets. len(Path) is always >= 2 by construction — the lexer
// never emits a single-segment path.
type GetPath struct {
	Path []Ident
}

// SetPath resolves Path except the last segment, evaluates Data, and sets
// the last segment's field to that value.
type SetPath struct {
	Path []Ident
	Data ExprId
}

// String is a literal string expression.
type String struct {
	Value string
}

// Number is a literal 64-bit integer expression.
type Number struct {
	Value int64
}

// Float is a literal 64-bit float expression.
type Float struct {
	Value float64
}

// Char is a literal character expression.
type Char struct {
	Value rune
}

// Bool is a literal boolean expression.
type Bool struct {
	Value bool
}

// Keyword is a literal keyword expression (an interned identifier used as
// a self-evaluating value, not a variable reference).
type Keyword struct {
	Name Ident
}

// None is the literal unit value expression.
type None struct{}

func (*Begin) exprNode()        {}
func (*DefVar) exprNode()       {}
func (*SetVar) exprNode()       {}
func (*GetVar) exprNode()       {}
func (*Cond) exprNode()         {}
func (*FunctionExpr) exprNode() {}
func (*ClosureExpr) exprNode()  {}
func (*Call) exprNode()         {}
func (*Method) exprNode()       {}
func (*GetPath) exprNode()      {}
func (*SetPath) exprNode()      {}
func (*String) exprNode()       {}
func (*Number) exprNode()       {}
func (*Float) exprNode()        {}
func (*Char) exprNode()         {}
func (*Bool) exprNode()         {}
func (*Keyword) exprNode()      {}
func (*None) exprNode()         {}

// Function is a statically-parsed function or closure template.
// Captures empty means a plain Function; non-empty means a Closure
// template whose named captures are snapshotted by value at the
// ClosureExpr evaluation site.
type Function struct {
	Name     Ident
	Captures []Ident
	Params   []Ident
	Body     ExprId
}
