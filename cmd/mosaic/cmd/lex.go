package cmd

import (
	"fmt"
	"os"

	"github.com/mosaic-lang/mosaic/internal/lexer"
	"github.com/mosaic-lang/mosaic/pkg/token"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	showPos    bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Mosaic file or expression",
	Long: `Tokenize a Mosaic source file and print the resulting token stream.

Examples:
  mosaic lex script.mos
  mosaic lex -e "let x = 1 + 2;"
  mosaic lex --show-pos script.mos
  mosaic lex --only-errors script.mos`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func readInput(args []string) (input, filename string, err error) {
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
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, _, err := readInput(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	tokens := l.Tokenize()

	errorCount := 0
	for _, tok := range tokens {
		isIllegal := tok.Kind == token.UNKNOWN
		if isIllegal {
			errorCount++
		}
		if onlyErrors && !isIllegal {
			continue
		}
		printToken(tok)
	}

	if onlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok token.Token) {
	output := fmt.Sprintf("[%-12s] %q", tok.Kind, tok.Lexeme)
	if showPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(output)
}
