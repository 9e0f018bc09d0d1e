// Command lox is the CLI entry point: run a script, or drop into an
// interactive REPL when no file is given.
package main

import (
	"fmt"
	"os"

	"github.com/lox-lang/lox-go/cmd/lox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
