// Package eval walks a parsed program and produces its final Primitive,
// dispatching calls, field access, and method invocation through the
// runtime.Bundle contract.
package eval

import (
	"fmt"

	"github.com/eka-lang/eka/internal/ast"
	"github.com/eka-lang/eka/internal/runtime"
)

// Evaluator holds everything a running program needs: the interner shared
// with the parser, the Gc backing every Data primitive, a global scope,
// and a stack of lexical scopes for the call currently in flight.
//
// A Data primitive surviving a GC cycle unrooted is undefined behavior at
// the language level (handles survive recycling, so a stale one can end
// up pointing at a cell holding an unrelated object). The reference
// interpreter leaves this as a documented discipline rather than
// enforcing it; here it's closed explicitly by rooting every Data value
// the moment it's bound to a variable and unrooting it when the binding
// is overwritten or its scope ends. rootCount lets the same handle be
// bound in more than one place at once without double-rooting (which
// Gc.Root refuses) or unrooting out from under a second owner.
type Evaluator struct {
	Interner *ast.Interner
	Gc       *runtime.Gc

	globals map[ast.Ident]runtime.Primitive
	vars    []map[ast.Ident]runtime.Primitive

	rootTokens map[runtime.DataRef]runtime.RootDataRef
	rootCount  map[runtime.DataRef]int
}

// New creates an Evaluator over interner, registering the built-in
// arithmetic and formatting functions as globals.
func New(interner *ast.Interner) *Evaluator {
	e := &Evaluator{
		Interner:   interner,
		Gc:         runtime.NewGc(),
		globals:    make(map[ast.Ident]runtime.Primitive),
		rootTokens: make(map[runtime.DataRef]runtime.RootDataRef),
		rootCount:  make(map[runtime.DataRef]int),
	}

	e.defGlobalStr("+", runtime.NativeFnValue(Add))
	e.defGlobalStr("-", runtime.NativeFnValue(Sub))
	e.defGlobalStr("*", runtime.NativeFnValue(Mul))
	e.defGlobalStr("/", runtime.NativeFnValue(Div))
	e.defGlobalStr("format", runtime.NativeFnValue(Format))

	return e
}

// Run evaluates every root expression in store in order, returning the
// value of the last one (or None if store has no roots).
func (e *Evaluator) Run(store *ast.ExprStore, funcs *ast.FunctionStore) (runtime.Primitive, error) {
	last := runtime.None
	for _, root := range store.IterRoots() {
		var err error
		last, err = e.RunExpr(root, store, funcs)
		if err != nil {
			return runtime.Primitive{}, err
		}
	}
	return last, nil
}

// RunExpr evaluates a single expression node, recursing into its
// children as needed. This is the one dispatch point every expression
// kind passes through.
func (e *Evaluator) RunExpr(id ast.ExprId, store *ast.ExprStore, funcs *ast.FunctionStore) (runtime.Primitive, error) {
	switch node := store.Get(id).(type) {
	case *ast.Begin:
		last := runtime.None
		e.pushScope()
		for _, child := range node.Body {
			var err error
			last, err = e.RunExpr(child, store, funcs)
			if err != nil {
				e.popScope()
				return runtime.Primitive{}, err
			}
		}
		e.popScope()
		return last, nil

	case *ast.DefVar:
		val, err := e.RunExpr(node.Expr, store, funcs)
		if err != nil {
			return runtime.Primitive{}, err
		}
		e.DefVar(node.Name, val)
		return runtime.None, nil

	case *ast.SetVar:
		val, err := e.RunExpr(node.Expr, store, funcs)
		if err != nil {
			return runtime.Primitive{}, err
		}
		if err := e.SetVar(node.Name, val); err != nil {
			return runtime.Primitive{}, err
		}
		return runtime.None, nil

	case *ast.GetVar:
		return e.GetVar(node.Name)

	case *ast.Cond:
		for _, branch := range node.Branches {
			cond, err := e.RunExpr(branch.Condition, store, funcs)
			if err != nil {
				return runtime.Primitive{}, err
			}
			if truthy(cond) {
				return e.RunExpr(branch.Body, store, funcs)
			}
		}
		if node.Default != nil {
			return e.RunExpr(*node.Default, store, funcs)
		}
		return runtime.None, nil

	case *ast.FunctionExpr:
		return runtime.FnValue(node.Fn), nil

	case *ast.ClosureExpr:
		fn := funcs.Get(node.Fn)
		captured := make(map[ast.Ident]runtime.Primitive, len(fn.Captures))
		for _, name := range fn.Captures {
			val, err := e.GetVar(name)
			if err != nil {
				return runtime.Primitive{}, err
			}
			captured[name] = val
		}
		closure := newClosure(node.Fn, captured, store, funcs, e)
		ref := e.Gc.Alloc(closure)
		return runtime.DataValue(ref), nil

	case *ast.Call:
		if path, ok := store.Get(node.Callee).(*ast.GetPath); ok {
			return e.callPath(path.Path, node.Args, store, funcs)
		}

		lhs, err := e.RunExpr(node.Callee, store, funcs)
		if err != nil {
			return runtime.Primitive{}, err
		}
		args, err := e.evalArgs(node.Args, store, funcs)
		if err != nil {
			return runtime.Primitive{}, err
		}

		switch lhs.Kind {
		case runtime.KindFn:
			return e.callFunction(lhs.Fn(), args, store, funcs)
		case runtime.KindData:
			ret, err := lhs.Data().Bundle().Call(args, e.Interner, e.Gc)
			if err != nil {
				return runtime.Primitive{}, err
			}
			return e.resolveCallReturn(ret, store, funcs)
		case runtime.KindNativeFn:
			ret, err := lhs.Native()(args, e.Interner, e.Gc)
			if err != nil {
				return runtime.Primitive{}, err
			}
			return e.resolveCallReturn(ret, store, funcs)
		default:
			return runtime.Primitive{}, fmt.Errorf("cannot call primitive of kind %s", lhs.Kind)
		}

	case *ast.Method:
		recv, err := e.RunExpr(node.Receiver, store, funcs)
		if err != nil {
			return runtime.Primitive{}, err
		}
		if recv.Kind != runtime.KindData {
			return runtime.Primitive{}, fmt.Errorf("cannot call a method on primitive of kind %s", recv.Kind)
		}
		args, err := e.evalArgs(node.Args, store, funcs)
		if err != nil {
			return runtime.Primitive{}, err
		}
		ret, err := recv.Data().Bundle().Method(node.Name, args, e.Interner, e.Gc)
		if err != nil {
			return runtime.Primitive{}, err
		}
		return e.resolveCallReturn(ret, store, funcs)

	case *ast.GetPath:
		lhs, name, err := e.resolvePath(node.Path)
		if err != nil {
			return runtime.Primitive{}, err
		}
		if lhs.Kind != runtime.KindData {
			return runtime.Primitive{}, fmt.Errorf("cannot get a field on primitive of kind %s", lhs.Kind)
		}
		return lhs.Data().Bundle().Get(name, e.Interner)

	case *ast.SetPath:
		lhs, name, err := e.resolvePath(node.Path)
		if err != nil {
			return runtime.Primitive{}, err
		}
		val, err := e.RunExpr(node.Data, store, funcs)
		if err != nil {
			return runtime.Primitive{}, err
		}
		if lhs.Kind != runtime.KindData {
			return runtime.Primitive{}, fmt.Errorf("cannot set a field on primitive of kind %s", lhs.Kind)
		}
		if err := lhs.Data().Bundle().Set(name, val, e.Interner); err != nil {
			return runtime.Primitive{}, err
		}
		return runtime.None, nil

	case *ast.String:
		return runtime.StringValue(node.Value), nil
	case *ast.Number:
		return runtime.NumberValue(node.Value), nil
	case *ast.Float:
		return runtime.FloatValue(node.Value), nil
	case *ast.Char:
		return runtime.CharValue(node.Value), nil
	case *ast.Bool:
		return runtime.BoolValue(node.Value), nil
	case *ast.Keyword:
		return runtime.KeywordValue(node.Name), nil
	case *ast.None:
		return runtime.None, nil

	default:
		return runtime.Primitive{}, fmt.Errorf("eval: unhandled expression type %T", node)
	}
}

// truthy implements the Cond branch test: everything is truthy except
// Bool(false) and None.
func truthy(p runtime.Primitive) bool {
	switch p.Kind {
	case runtime.KindNone:
		return false
	case runtime.KindBool:
		return p.Bool()
	default:
		return true
	}
}

func (e *Evaluator) evalArgs(raw []ast.ExprId, store *ast.ExprStore, funcs *ast.FunctionStore) ([]runtime.Primitive, error) {
	args := make([]runtime.Primitive, 0, len(raw))
	for _, a := range raw {
		v, err := e.RunExpr(a, store, funcs)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// callPath evaluates path as a method dispatch: every segment but the
// last resolves to a receiver, the last segment names the method.
func (e *Evaluator) callPath(path []ast.Ident, rawArgs []ast.ExprId, store *ast.ExprStore, funcs *ast.FunctionStore) (runtime.Primitive, error) {
	lhs, name, err := e.resolvePath(path)
	if err != nil {
		return runtime.Primitive{}, err
	}
	args, err := e.evalArgs(rawArgs, store, funcs)
	if err != nil {
		return runtime.Primitive{}, err
	}
	if lhs.Kind != runtime.KindData {
		return runtime.Primitive{}, fmt.Errorf("cannot call a method on primitive of kind %s", lhs.Kind)
	}
	ret, err := lhs.Data().Bundle().Method(name, args, e.Interner, e.Gc)
	if err != nil {
		return runtime.Primitive{}, err
	}
	return e.resolveCallReturn(ret, store, funcs)
}

// resolveCallReturn turns a host Bundle's CallReturn into a final
// Primitive, following into the evaluator if the host asked for a
// script function to be invoked with the arguments it built.
func (e *Evaluator) resolveCallReturn(ret runtime.CallReturn, store *ast.ExprStore, funcs *ast.FunctionStore) (runtime.Primitive, error) {
	switch ret.Kind {
	case runtime.CallReturnCallFn:
		return e.callFunction(ret.Fn, ret.Args, store, funcs)
	default:
		return ret.Data, nil
	}
}

// callFunction invokes the function named by id with args and no
// captures, under a fresh scope stack: user functions run with dynamic
// extent only, never seeing the caller's local scopes. Closures carry
// their captures and call callFunctionWithCaptures directly.
func (e *Evaluator) callFunction(id ast.FnId, args []runtime.Primitive, store *ast.ExprStore, funcs *ast.FunctionStore) (runtime.Primitive, error) {
	return e.callFunctionWithCaptures(id, nil, args, store, funcs)
}

func (e *Evaluator) callFunctionWithCaptures(id ast.FnId, captures map[ast.Ident]runtime.Primitive, args []runtime.Primitive, store *ast.ExprStore, funcs *ast.FunctionStore) (runtime.Primitive, error) {
	fn := funcs.Get(id)
	if len(fn.Params) != len(args) {
		return runtime.Primitive{}, fmt.Errorf("%q expects %d args, but got %d", e.Interner.Resolve(fn.Name), len(fn.Params), len(args))
	}

	savedVars := e.vars
	e.vars = nil

	if len(captures) > 0 {
		e.pushScope()
		for name, val := range captures {
			e.DefVar(name, val)
		}
	}

	e.pushScope()
	for i, param := range fn.Params {
		e.DefVar(param, args[i])
	}

	ret, err := e.RunExpr(fn.Body, store, funcs)

	e.popScope()
	if len(captures) > 0 {
		e.popScope()
	}
	e.vars = savedVars
	return ret, err
}

func (e *Evaluator) pushScope() {
	e.vars = append(e.vars, make(map[ast.Ident]runtime.Primitive))
}

func (e *Evaluator) popScope() {
	top := e.vars[len(e.vars)-1]
	for _, v := range top {
		e.unrootValue(v)
	}
	e.vars = e.vars[:len(e.vars)-1]
}

// rootValue roots p's handle if it holds one, tracking a reference count
// so the same handle bound under two names doesn't get unrooted while
// either binding is still live.
func (e *Evaluator) rootValue(p runtime.Primitive) {
	if p.Kind != runtime.KindData {
		return
	}
	dr := p.Data()
	e.rootCount[dr]++
	if e.rootCount[dr] == 1 {
		if tok, ok := e.Gc.Root(dr); ok {
			e.rootTokens[dr] = tok
		}
	}
}

// unrootValue releases one reference to p's handle, unrooting it from
// the Gc once no binding references it anymore.
func (e *Evaluator) unrootValue(p runtime.Primitive) {
	if p.Kind != runtime.KindData {
		return
	}
	dr := p.Data()
	count, ok := e.rootCount[dr]
	if !ok {
		return
	}
	count--
	if count > 0 {
		e.rootCount[dr] = count
		return
	}
	delete(e.rootCount, dr)
	if tok, ok := e.rootTokens[dr]; ok {
		e.Gc.Unroot(tok)
		delete(e.rootTokens, dr)
	}
}

// resolvePath walks path[:len-1] as a chain of variable lookup then
// field gets, returning the final container and the last segment's
// name. The lexer never emits a path shorter than two segments, so
// path always has at least one intermediate lookup to perform.
func (e *Evaluator) resolvePath(path []ast.Ident) (runtime.Primitive, ast.Ident, error) {
	data, err := e.GetVar(path[0])
	if err != nil {
		return runtime.Primitive{}, 0, err
	}

	next := path[1]
	for _, seg := range path[2:] {
		if data.Kind != runtime.KindData {
			return runtime.Primitive{}, 0, fmt.Errorf("cannot get field on primitive of kind %s", data.Kind)
		}
		data, err = data.Data().Bundle().Get(next, e.Interner)
		if err != nil {
			return runtime.Primitive{}, 0, err
		}
		next = seg
	}

	return data, next, nil
}

// GetVar reads name, searching lexical scopes innermost-first before
// falling back to globals.
func (e *Evaluator) GetVar(name ast.Ident) (runtime.Primitive, error) {
	for i := len(e.vars) - 1; i >= 0; i-- {
		if v, ok := e.vars[i][name]; ok {
			return v, nil
		}
	}
	if v, ok := e.globals[name]; ok {
		return v, nil
	}
	return runtime.Primitive{}, fmt.Errorf("var %q is undefined", e.Interner.Resolve(name))
}

// DefVar introduces name in the innermost active scope, or globals if
// no scope is active (top level).
func (e *Evaluator) DefVar(name ast.Ident, data runtime.Primitive) {
	e.rootValue(data)
	if len(e.vars) == 0 {
		if old, ok := e.globals[name]; ok {
			e.unrootValue(old)
		}
		e.globals[name] = data
		return
	}
	scope := e.vars[len(e.vars)-1]
	if old, ok := scope[name]; ok {
		e.unrootValue(old)
	}
	scope[name] = data
}

// SetVar assigns an existing binding. Unlike GetVar, it consults only
// the innermost scope (or globals at top level) and never walks the
// lexical chain, so shadowed outer bindings cannot be reassigned from
// an inner scope.
func (e *Evaluator) SetVar(name ast.Ident, data runtime.Primitive) error {
	if len(e.vars) == 0 {
		old, ok := e.globals[name]
		if !ok {
			return fmt.Errorf("cannot set undefined var %q", e.Interner.Resolve(name))
		}
		e.rootValue(data)
		e.unrootValue(old)
		e.globals[name] = data
		return nil
	}

	scope := e.vars[len(e.vars)-1]
	old, ok := scope[name]
	if !ok {
		return fmt.Errorf("cannot set undefined var %q", e.Interner.Resolve(name))
	}
	e.rootValue(data)
	e.unrootValue(old)
	scope[name] = data
	return nil
}

func (e *Evaluator) defGlobalStr(name string, data runtime.Primitive) {
	e.rootValue(data)
	e.globals[e.Interner.Intern(name)] = data
}

// DefGlobal installs data as a top-level binding, for hosts wiring in
// native functions and factories.
func (e *Evaluator) DefGlobal(name ast.Ident, data runtime.Primitive) {
	e.rootValue(data)
	if old, ok := e.globals[name]; ok {
		e.unrootValue(old)
	}
	e.globals[name] = data
}
