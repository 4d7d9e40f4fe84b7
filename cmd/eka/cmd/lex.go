package cmd

import (
	"fmt"
	"os"

	"github.com/eka-lang/eka/internal/errors"
	"github.com/eka-lang/eka/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEval    string
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an eka file or expression",
	Long: `Tokenize (lex) an eka program and print the resulting tokens.

Examples:
  eka lex script.eka
  eka lex -e "(+ 1 2)"
  eka lex --show-type --show-pos script.eka`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "print only lex errors, not tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	tokenCount := 0

	for {
		tok, err := l.Next()
		if err != nil {
			if lexErr, ok := err.(*lexer.LexError); ok {
				ce := errors.FromLexError(lexErr, input, filename)
				fmt.Fprintln(os.Stderr, ce.Format(true))
				return fmt.Errorf("lexing failed")
			}
			return err
		}

		if onlyErrors {
			if tok.Type == lexer.EOF {
				break
			}
			continue
		}

		tokenCount++
		printToken(tok)
		if tok.Type == lexer.EOF {
			break
		}
	}

	if verbose {
		fmt.Printf("---\ntotal tokens: %d\n", tokenCount)
	}
	return nil
}

func printToken(tok lexer.Token) {
	var out string
	if showType {
		out = fmt.Sprintf("[%-8s]", tok.Type)
	}
	if tok.Type == lexer.EOF {
		out += " EOF"
	} else {
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		out += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(out)
}

func readSource(evalExpr string, args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}
