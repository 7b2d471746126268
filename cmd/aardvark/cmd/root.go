// Package cmd implements the aardvark CLI: file/REPL front end for the
// tokenizer, parser, and evaluator in internal/{lexer,parser,interp}.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showTokens bool
	showTree   bool
)

var rootCmd = &cobra.Command{
	Use:   "aardvark [file]",
	Short: "Tree-walking interpreter for the aardvark language",
	Long: "aardvark runs a small statically-scoped imperative language.\n" +
		"With a file argument it interprets that file; with none it starts a REPL.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		flags := uint32(0)
		if showTokens {
			flags |= flagShowTokens
		}
		if showTree {
			flags |= flagShowTree
		}
		if len(args) == 1 {
			return runFile(args[0], flags)
		}
		return repl(flags)
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&showTokens, "tokens", "t", false, "Show token list")
	rootCmd.Flags().BoolVarP(&showTree, "tree", "s", false, "Show syntax tree")
}

// Execute runs the root command, printing errors to stderr and exiting
// nonzero on failure. Fail-fast behavior lives at the CLI boundary
// instead of inside internal/interp.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
