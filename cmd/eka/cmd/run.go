package cmd

import (
	"fmt"
	"os"

	"github.com/eka-lang/eka/internal/errors"
	"github.com/eka-lang/eka/internal/eval"
	"github.com/eka-lang/eka/internal/host"
	"github.com/eka-lang/eka/internal/lexer"
	"github.com/eka-lang/eka/internal/parser"
	"github.com/eka-lang/eka/internal/runtime"
	"github.com/spf13/cobra"
)

var (
	runEval string
	dumpAST bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an eka file or expression",
	Long: `Execute an eka program from a file or inline expression.

Examples:
  eka run script.eka
  eka run -e "(console/print (format 1 2 3))"
  eka run --dump-ast script.eka`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(runEval, args)
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

	if dumpAST {
		for _, root := range res.Exprs.IterRoots() {
			fmt.Println(dumpExpr(root, res.Exprs, res.Interner, 0))
		}
		fmt.Println("---")
	}

	e := eval.New(res.Interner)
	wireHostGlobals(e)

	v, err := e.Run(res.Exprs, res.Funcs)
	if err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}

	if v.Kind != runtime.KindNone {
		ret, err := eval.Format([]runtime.Primitive{v}, e.Interner, e.Gc)
		if err == nil {
			fmt.Println(ret.Data.Str())
		}
	}
	return nil
}

// wireHostGlobals installs the host bridge objects every eka program can
// reach: console I/O, the gc workload knobs, wall-clock timing, and the
// fieldless object factory.
func wireHostGlobals(e *eval.Evaluator) {
	console := host.NewConsole(os.Stdin, os.Stdout, os.Stderr, e.Interner)
	e.DefGlobal(e.Interner.Intern("console"), runtime.DataValue(e.Gc.Alloc(console)))

	gcWorkload := host.NewGcWorkloadBridge(e.Gc, e.Interner)
	e.DefGlobal(e.Interner.Intern("gcWorkload"), runtime.DataValue(e.Gc.Alloc(gcWorkload)))

	e.DefGlobal(e.Interner.Intern("instantNow"), runtime.NativeFnValue(host.InstantNow))
	e.DefGlobal(e.Interner.Intern("makeBase"), runtime.NativeFnValue(host.MakeBase))
}
