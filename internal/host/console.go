// Package host provides the reference host objects a running program is
// given access to: a Console bridging stdin/stdout/stderr, a GcWorkload
// bridge exposing the collector's tuning knobs as a script-visible
// object, and Instant/Duration timer objects. None of this is part of
// the core language; it exists so a script has something to actually do
// besides compute.
package host

import (
	"bufio"
	"fmt"
	"io"

	"github.com/eka-lang/eka/internal/ast"
	"github.com/eka-lang/eka/internal/runtime"
)

// Console wraps three streams and dispatches print/eprint/readLine by
// method name. It has no fields; every operation is a method call.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	err io.Writer

	readLineIdent ast.Ident
	printIdent    ast.Ident
	eprintIdent   ast.Ident
}

// NewConsole builds a Console over the given streams, interning its
// three method names against interner.
func NewConsole(in io.Reader, out, errOut io.Writer, interner *ast.Interner) *Console {
	return &Console{
		in:            bufio.NewReader(in),
		out:           out,
		err:           errOut,
		readLineIdent: interner.Intern("readLine"),
		printIdent:    interner.Intern("print"),
		eprintIdent:   interner.Intern("eprint"),
	}
}

func (c *Console) Get(ast.Ident, *ast.Interner) (runtime.Primitive, error) {
	return runtime.Primitive{}, fmt.Errorf("there are no fields on Console")
}

func (c *Console) Set(ast.Ident, runtime.Primitive, *ast.Interner) error {
	return fmt.Errorf("there are no fields on Console")
}

func (c *Console) Call([]runtime.Primitive, *ast.Interner, *runtime.Gc) (runtime.CallReturn, error) {
	return runtime.CallReturn{}, fmt.Errorf("cannot call Console")
}

func (c *Console) Method(name ast.Ident, args []runtime.Primitive, _ *ast.Interner, _ *runtime.Gc) (runtime.CallReturn, error) {
	switch name {
	case c.readLineIdent:
		if len(args) != 0 {
			return runtime.CallReturn{}, fmt.Errorf("expected zero arguments to Console.readLine")
		}
		line, err := c.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return runtime.CallReturn{}, err
		}
		return runtime.ReturnData(runtime.StringValue(line)), nil

	case c.printIdent:
		if len(args) != 1 || args[0].Kind != runtime.KindString {
			return runtime.CallReturn{}, fmt.Errorf("can only write strings via Console.print")
		}
		n, err := io.WriteString(c.out, args[0].Str())
		if err != nil {
			return runtime.CallReturn{}, err
		}
		return runtime.ReturnData(runtime.NumberValue(int64(n))), nil

	case c.eprintIdent:
		if len(args) != 1 || args[0].Kind != runtime.KindString {
			return runtime.CallReturn{}, fmt.Errorf("can only write strings via Console.eprint")
		}
		n, err := io.WriteString(c.err, args[0].Str())
		if err != nil {
			return runtime.CallReturn{}, err
		}
		return runtime.ReturnData(runtime.NumberValue(int64(n))), nil

	default:
		return runtime.CallReturn{}, fmt.Errorf("no method with the given name")
	}
}

func (c *Console) Trace(*runtime.Gc) {}
