package eval

import (
	"fmt"

	"github.com/eka-lang/eka/internal/ast"
	"github.com/eka-lang/eka/internal/runtime"
)

// closure is the runtime.Bundle backing a ClosureExpr: a callable value
// that snapshotted its captures by value at creation time. It carries
// the store and function table it was built from so Call can resume
// the evaluator without needing them threaded through the Bundle
// interface, which knows nothing about ast stores.
type closure struct {
	fn       ast.FnId
	captures map[ast.Ident]runtime.Primitive
	store    *ast.ExprStore
	funcs    *ast.FunctionStore
	eval     *Evaluator
}

func newClosure(fn ast.FnId, captures map[ast.Ident]runtime.Primitive, store *ast.ExprStore, funcs *ast.FunctionStore, eval *Evaluator) *closure {
	return &closure{fn: fn, captures: captures, store: store, funcs: funcs, eval: eval}
}

func (c *closure) Get(ast.Ident, *ast.Interner) (runtime.Primitive, error) {
	return runtime.Primitive{}, fmt.Errorf("closures do not have fields")
}

func (c *closure) Set(ast.Ident, runtime.Primitive, *ast.Interner) error {
	return fmt.Errorf("closures do not have fields")
}

func (c *closure) Call(args []runtime.Primitive, _ *ast.Interner, _ *runtime.Gc) (runtime.CallReturn, error) {
	ret, err := c.eval.callFunctionWithCaptures(c.fn, c.captures, args, c.store, c.funcs)
	if err != nil {
		return runtime.CallReturn{}, err
	}
	return runtime.ReturnData(ret), nil
}

func (c *closure) Method(ast.Ident, []runtime.Primitive, *ast.Interner, *runtime.Gc) (runtime.CallReturn, error) {
	return runtime.CallReturn{}, fmt.Errorf("closures do not have methods")
}

// Trace marks every captured Data value reachable, since a closure keeps
// its captures alive for as long as the closure itself is reachable.
func (c *closure) Trace(gc *runtime.Gc) {
	for _, v := range c.captures {
		if v.Kind == runtime.KindData {
			gc.Trace(v.Data())
		}
	}
}
