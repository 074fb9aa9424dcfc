package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/paul-ciorogar/suru-lang/internal/arena"
	"github.com/paul-ciorogar/suru-lang/internal/format"
	"github.com/paul-ciorogar/suru-lang/internal/lexer"
	"github.com/paul-ciorogar/suru-lang/internal/parser"
	"github.com/paul-ciorogar/suru-lang/internal/sourceio"
	"github.com/paul-ciorogar/suru-lang/internal/strstore"
	"github.com/spf13/cobra"
)

var formatWrite bool

func init() {
	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Pretty-print a Suru source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runFormat,
	}
	cmd.Flags().BoolVar(&formatWrite, "write", false, "overwrite the file with the formatted output instead of printing to stdout")
	rootCmd.AddCommand(cmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	src, err := sourceio.ReadSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	store := strstore.New(arena.New(4096))
	l := lexer.New(string(src), store)
	tree, errs := parser.Parse(l)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(1)
	}

	var buf bytes.Buffer
	if err := format.ToWriter(tree, &buf); err != nil {
		return fmt.Errorf("formatting %s: %w", args[0], err)
	}

	if formatWrite {
		if err := sourceio.WriteSource(args[0], buf.Bytes()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		return nil
	}

	_, err = os.Stdout.Write(buf.Bytes())
	return err
}
