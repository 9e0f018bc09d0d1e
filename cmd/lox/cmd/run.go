package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/lox-lang/lox-go/internal/errors"
	"github.com/lox-lang/lox-go/internal/lexer"
	"github.com/lox-lang/lox-go/pkg/lox"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox script, or start a REPL if no file is given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScript(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		runREPL()
		return nil
	}

	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	src := string(content)

	result := lox.Run(src)
	if len(result.Diagnostics) > 0 {
		reportDiagnostics(src, result.Diagnostics)
	}
	os.Exit(int(result.ExitCode))
	return nil
}

func reportDiagnostics(src string, diags []*errors.Diagnostic) {
	lx := lexer.New(src)
	reporter := errors.NewReporter(src, lx.Index())
	fmt.Fprintln(os.Stderr, reporter.ReportAll(diags))
}

func runREPL() {
	repl := lox.NewREPL()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := scanner.Text()
		if diags := repl.EvalLine(line); len(diags) > 0 {
			reportDiagnostics(line, diags)
		}
		fmt.Print("> ")
	}
	fmt.Println()
}
