// Package cmd implements the mosaic command-line tool: lex, parse, and run
// subcommands over a cobra root command, with a root.go carrying persistent
// flags and a version template, and one file per subcommand.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "mosaic",
	Short: "Mosaic scripting language tools",
	Long: `mosaic is the command-line host for the Mosaic scripting language:
a small, dynamically-typed, multi-file language with a tree-walking
evaluator. Use "mosaic lex" and "mosaic parse" to inspect the front end,
and "mosaic run" to execute a project.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
