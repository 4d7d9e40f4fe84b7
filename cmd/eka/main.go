// Command eka is the command-line driver for the language: it lexes,
// parses, and evaluates .eka programs, with lex/parse subcommands for
// inspecting the earlier pipeline stages.
package main

import (
	"fmt"
	"os"

	"github.com/eka-lang/eka/cmd/eka/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
