package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/paul-ciorogar/suru-lang/internal/arena"
	"github.com/paul-ciorogar/suru-lang/internal/lexer"
	"github.com/paul-ciorogar/suru-lang/internal/sourceio"
	"github.com/paul-ciorogar/suru-lang/internal/strstore"
	"github.com/paul-ciorogar/suru-lang/internal/token"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "lex <file>",
		Short: "Dump the token stream of a Suru source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runLex,
	}
	rootCmd.AddCommand(cmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	src, err := sourceio.ReadSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	store := strstore.New(arena.New(4096))
	l := lexer.New(string(src), store)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		fmt.Fprintf(w, "Token: TOKEN_%s", tok.Kind)
		if tok.HasText() {
			fmt.Fprintf(w, " Text: %s", tok.Text.String())
		}
		fmt.Fprintln(w)
	}
	return nil
}
