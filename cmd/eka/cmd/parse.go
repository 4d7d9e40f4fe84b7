package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/eka-lang/eka/internal/ast"
	"github.com/eka-lang/eka/internal/errors"
	"github.com/eka-lang/eka/internal/lexer"
	"github.com/eka-lang/eka/internal/parser"
	"github.com/spf13/cobra"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an eka file or expression and dump its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	res, err := parser.Parse(input)
	if err != nil {
		var ce *errors.CompilerError
		switch e := err.(type) {
		case *lexer.LexError:
			ce = errors.FromLexError(e, input, filename)
		case *parser.ParseError:
			ce = errors.FromParseError(e, input, filename)
		default:
			return err
		}
		fmt.Fprintln(os.Stderr, ce.Format(true))
		return fmt.Errorf("parsing failed")
	}

	for _, root := range res.Exprs.IterRoots() {
		fmt.Println(dumpExpr(root, res.Exprs, res.Interner, 0))
	}
	return nil
}

func dumpExpr(id ast.ExprId, store *ast.ExprStore, interner *ast.Interner, depth int) string {
	indent := strings.Repeat("  ", depth)
	switch n := store.Get(id).(type) {
	case *ast.Begin:
		out := indent + "Begin"
		for _, c := range n.Body {
			out += "\n" + dumpExpr(c, store, interner, depth+1)
		}
		return out
	case *ast.DefVar:
		return fmt.Sprintf("%sDefVar %s\n%s", indent, interner.Resolve(n.Name), dumpExpr(n.Expr, store, interner, depth+1))
	case *ast.SetVar:
		return fmt.Sprintf("%sSetVar %s\n%s", indent, interner.Resolve(n.Name), dumpExpr(n.Expr, store, interner, depth+1))
	case *ast.GetVar:
		return fmt.Sprintf("%sGetVar %s", indent, interner.Resolve(n.Name))
	case *ast.Cond:
		out := indent + "Cond"
		for _, b := range n.Branches {
			out += fmt.Sprintf("\n%s  branch\n%s\n%s", indent, dumpExpr(b.Condition, store, interner, depth+2), dumpExpr(b.Body, store, interner, depth+2))
		}
		if n.Default != nil {
			out += fmt.Sprintf("\n%s  default\n%s", indent, dumpExpr(*n.Default, store, interner, depth+2))
		}
		return out
	case *ast.FunctionExpr:
		return fmt.Sprintf("%sFunctionExpr fn#%d", indent, n.Fn)
	case *ast.ClosureExpr:
		return fmt.Sprintf("%sClosureExpr fn#%d", indent, n.Fn)
	case *ast.Call:
		out := indent + "Call\n" + dumpExpr(n.Callee, store, interner, depth+1)
		for _, a := range n.Args {
			out += "\n" + dumpExpr(a, store, interner, depth+1)
		}
		return out
	case *ast.Method:
		out := fmt.Sprintf("%sMethod %s\n%s", indent, interner.Resolve(n.Name), dumpExpr(n.Receiver, store, interner, depth+1))
		for _, a := range n.Args {
			out += "\n" + dumpExpr(a, store, interner, depth+1)
		}
		return out
	case *ast.GetPath:
		return fmt.Sprintf("%sGetPath %s", indent, joinPath(n.Path, interner))
	case *ast.SetPath:
		return fmt.Sprintf("%sSetPath %s\n%s", indent, joinPath(n.Path, interner), dumpExpr(n.Data, store, interner, depth+1))
	case *ast.String:
		return fmt.Sprintf("%sString %q", indent, n.Value)
	case *ast.Number:
		return fmt.Sprintf("%sNumber %d", indent, n.Value)
	case *ast.Float:
		return fmt.Sprintf("%sFloat %g", indent, n.Value)
	case *ast.Char:
		return fmt.Sprintf("%sChar %q", indent, n.Value)
	case *ast.Bool:
		return fmt.Sprintf("%sBool %t", indent, n.Value)
	case *ast.Keyword:
		return fmt.Sprintf("%sKeyword :%s", indent, interner.Resolve(n.Name))
	case *ast.None:
		return indent + "None"
	default:
		return fmt.Sprintf("%s<unknown %T>", indent, n)
	}
}

func joinPath(path []ast.Ident, interner *ast.Interner) string {
	segs := make([]string, len(path))
	for i, id := range path {
		segs[i] = interner.Resolve(id)
	}
	return strings.Join(segs, "/")
}
