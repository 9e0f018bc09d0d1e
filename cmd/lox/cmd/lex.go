package cmd

import (
	"fmt"
	"os"

	"github.com/lox-lang/lox-go/internal/lexer"
	"github.com/spf13/cobra"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lox file and print the resulting tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token line:column positions")
}

func lexScript(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	src := string(content)

	lx := lexer.New(src)
	tokens := lx.ScanTokens()

	for _, tok := range tokens {
		if showPos {
			fmt.Printf("%-14s %-20q @%d:%d\n", tok.Kind, tok.Lexeme, tok.Start.Line+1, tok.Start.Column+1)
		} else {
			fmt.Printf("%-14s %q\n", tok.Kind, tok.Lexeme)
		}
	}

	if errs := lx.Errors(); len(errs) > 0 {
		reportDiagnostics(src, errs)
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}
