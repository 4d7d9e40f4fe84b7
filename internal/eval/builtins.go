package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eka-lang/eka/internal/ast"
	"github.com/eka-lang/eka/internal/runtime"
	"golang.org/x/text/unicode/norm"
)

// Add is the `+` builtin: a variadic left-fold starting at the first
// argument. Zero args yields None; mixing integer and float operands is
// an error.
func Add(args []runtime.Primitive, interner *ast.Interner, gc *runtime.Gc) (runtime.CallReturn, error) {
	return foldNumeric(args, "added", func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
}

// Sub is the `-` builtin.
func Sub(args []runtime.Primitive, interner *ast.Interner, gc *runtime.Gc) (runtime.CallReturn, error) {
	return foldNumeric(args, "subtracted", func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
}

// Mul is the `*` builtin.
func Mul(args []runtime.Primitive, interner *ast.Interner, gc *runtime.Gc) (runtime.CallReturn, error) {
	return foldNumeric(args, "multiplied", func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
}

// Div is the `/` builtin. Integer division by zero is a runtime error;
// float division by zero follows IEEE-754 and produces ±Inf or NaN.
func Div(args []runtime.Primitive, interner *ast.Interner, gc *runtime.Gc) (runtime.CallReturn, error) {
	if len(args) == 0 {
		return runtime.ReturnData(runtime.None), nil
	}
	first := args[0]
	for _, arg := range args[1:] {
		switch {
		case first.Kind == runtime.KindNumber && arg.Kind == runtime.KindNumber:
			if arg.Number() == 0 {
				return runtime.CallReturn{}, fmt.Errorf("division by zero")
			}
			first = runtime.NumberValue(first.Number() / arg.Number())
		case first.Kind == runtime.KindFloat && arg.Kind == runtime.KindFloat:
			first = runtime.FloatValue(first.Float() / arg.Float())
		default:
			return runtime.CallReturn{}, fmt.Errorf("only numbers and floats can be divided")
		}
	}
	return runtime.ReturnData(first), nil
}

func foldNumeric(args []runtime.Primitive, verb string, foldInt func(a, b int64) int64, foldFloat func(a, b float64) float64) (runtime.CallReturn, error) {
	if len(args) == 0 {
		return runtime.ReturnData(runtime.None), nil
	}
	first := args[0]
	for _, arg := range args[1:] {
		switch {
		case first.Kind == runtime.KindNumber && arg.Kind == runtime.KindNumber:
			first = runtime.NumberValue(foldInt(first.Number(), arg.Number()))
		case first.Kind == runtime.KindFloat && arg.Kind == runtime.KindFloat:
			first = runtime.FloatValue(foldFloat(first.Float(), arg.Float()))
		default:
			return runtime.CallReturn{}, fmt.Errorf("only numbers and floats can be %s", verb)
		}
	}
	return runtime.ReturnData(first), nil
}

// Format is the `format` builtin: concatenates every argument's display
// form into one string. Strings and chars pass through verbatim;
// everything else is rendered with its natural textual form. The
// result is NFC-normalized, matching the lexer's own normalization of
// string literals so script-produced and literal strings compare
// equal.
func Format(args []runtime.Primitive, interner *ast.Interner, gc *runtime.Gc) (runtime.CallReturn, error) {
	var out strings.Builder
	for _, arg := range args {
		switch arg.Kind {
		case runtime.KindData:
			fmt.Fprintf(&out, "%v", arg.Data().Bundle())
		case runtime.KindString:
			out.WriteString(arg.Str())
		case runtime.KindChar:
			out.WriteRune(arg.Char())
		case runtime.KindNumber:
			out.WriteString(strconv.FormatInt(arg.Number(), 10))
		case runtime.KindFloat:
			out.WriteString(strconv.FormatFloat(arg.Float(), 'g', -1, 64))
		case runtime.KindBool:
			out.WriteString(strconv.FormatBool(arg.Bool()))
		case runtime.KindKeyword:
			out.WriteString(interner.Resolve(arg.Keyword()))
		case runtime.KindNativeFn:
			out.WriteString("<NativeFn>")
		case runtime.KindFn:
			out.WriteString(fmt.Sprintf("<Fn#%d>", arg.Fn()))
		case runtime.KindNone:
			out.WriteString("None")
		}
	}
	return runtime.ReturnData(runtime.StringValue(norm.NFC.String(out.String()))), nil
}
