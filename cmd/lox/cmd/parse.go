package cmd

import (
	"fmt"
	"os"

	"github.com/lox-lang/lox-go/pkg/lox"
	"github.com/lox-lang/lox-go/pkg/printer"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lox file and print its AST as canonical S-expressions",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	src := string(content)

	stmts, diags := lox.ParseAST(src)
	if len(diags) > 0 {
		reportDiagnostics(src, diags)
		return fmt.Errorf("parsing failed with %d error(s)", len(diags))
	}

	fmt.Println(printer.Program(stmts))
	return nil
}
