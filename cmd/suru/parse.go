package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/paul-ciorogar/suru-lang/internal/arena"
	"github.com/paul-ciorogar/suru-lang/internal/lexer"
	"github.com/paul-ciorogar/suru-lang/internal/parser"
	"github.com/paul-ciorogar/suru-lang/internal/parsetree"
	"github.com/paul-ciorogar/suru-lang/internal/sourceio"
	"github.com/paul-ciorogar/suru-lang/internal/strstore"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Dump the concrete parse tree of a Suru source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := sourceio.ReadSource(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	store := strstore.New(arena.New(4096))
	l := lexer.New(string(src), store)
	tree, errs := parser.Parse(l)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if tree.Root == parsetree.None {
		fmt.Fprintln(w, "(empty tree)")
	} else {
		printParseNode(w, tree, tree.Root, 0)
	}

	if len(errs) > 0 {
		w.Flush() // os.Exit below skips the deferred Flush
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(1)
	}
	return nil
}

func printParseNode(w *bufio.Writer, tree *parsetree.Tree, idx, depth int) {
	node := tree.Get(idx)
	if node == nil {
		return
	}
	for i := 0; i < depth; i++ {
		w.WriteString("  ")
	}
	w.WriteString(node.Kind.String())
	if node.Token.HasText() {
		w.WriteString(": ")
		w.WriteString(escapeParseText(node.Token.Text.String()))
	}
	w.WriteByte('\n')

	for _, child := range tree.Children(idx) {
		printParseNode(w, tree, child, depth+1)
	}
}

// escapeParseText escapes \n \t \r \" \\ in terminal token text, matching
// original_source/src/parse_tree_printer.c's print_node byte-by-byte.
func escapeParseText(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
