package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mosaic-lang/mosaic/internal/config"
	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/interp"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [dir]",
	Short: "Run a Mosaic project",
	Long: `Run every source file in a project directory through the Mosaic
interpreter, then evaluate the entry file.

Looks for an optional mosaic.yaml in the project directory for the source
extension, entry file name, and trace flag; falls back to ".mos",
"main.mos", and trace disabled when absent.

Examples:
  mosaic run ./myproject
  mosaic run .`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProject,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runProject(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	trace := cfg.Trace || verbose

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read project directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), cfg.Extension) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %s", cfg.Extension, dir)
	}

	in := interp.New(os.Stdout)
	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", name, err)
		}
		if trace {
			fmt.Fprintf(os.Stderr, "registering %s\n", name)
		}
		in.RegisterFile(name, string(content))
	}

	found := false
	for _, name := range in.ListFiles() {
		if name == cfg.Entry {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("entry file %q not found among %v", cfg.Entry, in.ListFiles())
	}

	if trace {
		fmt.Fprintf(os.Stderr, "running entry %s\n", cfg.Entry)
	}

	_, runErr := in.RunProject(cfg.Entry)

	diag := in.Diagnostics()
	diagnostics.FlushWithSource(os.Stderr, diag, in.Sources())

	if runErr != nil {
		return runErr
	}
	if diag.HasError() {
		return fmt.Errorf("run failed with diagnostics")
	}
	return nil
}
