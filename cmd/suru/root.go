package main

import (
	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "suru",
	Short: "Lex, parse, format, and run Suru source files",
	Long: `suru provides four features:
- run    lexes, parses, builds an AST, and interprets a Suru source file.
- lex    dumps the raw token stream of a Suru source file.
- parse  dumps the concrete parse tree of a Suru source file.
- format pretty-prints a Suru source file, optionally rewriting it in place.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug diagnostics on stderr")
}

// Execute runs the root command and returns any error it produced.
func Execute() error {
	return rootCmd.Execute()
}
