package cmd

import (
	"fmt"
	"os"

	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/lexer"
	"github.com/mosaic-lang/mosaic/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Mosaic file and print its AST",
	Long: `Parse a Mosaic source file and print the resulting AST, along with any
lex or parse diagnostics.

Examples:
  mosaic parse script.mos
  mosaic parse -e "let x = 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	diag := diagnostics.NewSink()

	l := lexer.New(input)
	tokens := l.Tokenize()
	for _, lerr := range l.Errors() {
		diag.Error(filename, lerr.Pos.Line, "%s", lerr.Message)
	}

	p := parser.New(tokens, filename, diag)
	program := p.ParseProgram()

	fmt.Println(program.String())

	if diag.HasError() {
		diagnostics.FlushWithSource(os.Stderr, diag, map[string]string{filename: input})
		return fmt.Errorf("parsing failed")
	}
	return nil
}
