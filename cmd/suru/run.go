package main

import (
	"fmt"
	"os"

	"github.com/paul-ciorogar/suru-lang/internal/arena"
	"github.com/paul-ciorogar/suru-lang/internal/ast"
	"github.com/paul-ciorogar/suru-lang/internal/diagnostics"
	"github.com/paul-ciorogar/suru-lang/internal/interpreter"
	"github.com/paul-ciorogar/suru-lang/internal/lexer"
	"github.com/paul-ciorogar/suru-lang/internal/parser"
	"github.com/paul-ciorogar/suru-lang/internal/sourceio"
	"github.com/paul-ciorogar/suru-lang/internal/strstore"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Lex, parse, build an AST, and interpret a Suru source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
	rootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	log := diagnostics.NewLogger(os.Stderr, debug)

	src, err := sourceio.ReadSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	store := strstore.New(arena.New(4096))
	l := lexer.New(string(src), store)
	log.Debugf("lexing %s", args[0])
	pt, errs := parser.Parse(l)
	if debug {
		store.DebugDump(os.Stderr)
	}
	if len(errs) > 0 {
		// §7: the run pipeline stops before AST building if any syntax
		// error was collected.
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(1)
	}

	log.Debugf("building AST")
	tree := ast.Build(pt)

	interp := interpreter.New(tree, os.Stdout, os.Stderr)
	os.Exit(interp.Run())
	return nil
}
