package format

import (
	"bytes"
	"testing"

	"github.com/paul-ciorogar/suru-lang/internal/arena"
	"github.com/paul-ciorogar/suru-lang/internal/lexer"
	"github.com/paul-ciorogar/suru-lang/internal/parser"
	"github.com/paul-ciorogar/suru-lang/internal/strstore"
)

func formatSource(t *testing.T, src string) string {
	t.Helper()
	store := strstore.New(arena.New(4096))
	l := lexer.New(src, store)
	tree, errs := parser.Parse(l)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	var buf bytes.Buffer
	if err := ToWriter(tree, &buf); err != nil {
		t.Fatalf("ToWriter: %v", err)
	}
	return buf.String()
}

func TestFormatHelloWorldProducesFunctionShape(t *testing.T) {
	src := "main : () {\n    print(\"Hello\")\n}\n"
	out := formatSource(t, src)
	if !bytes.Contains([]byte(out), []byte("main: (")) {
		t.Fatalf("output missing function header, got: %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("print(")) {
		t.Fatalf("output missing call, got: %q", out)
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	// S6: running format twice on any parse-tree-accepted input produces
	// identical output on the second run.
	src := "main : () {\n    x: true and false\n    print(x)\n}\n"
	first := formatSource(t, src)

	store := strstore.New(arena.New(4096))
	l := lexer.New(first, store)
	tree, errs := parser.Parse(l)
	if len(errs) != 0 {
		t.Fatalf("re-parse errors: %v", errs)
	}
	var buf bytes.Buffer
	if err := ToWriter(tree, &buf); err != nil {
		t.Fatalf("ToWriter: %v", err)
	}
	second := buf.String()

	if first != second {
		t.Fatalf("format not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestFormatEmptyTreeProducesEmptyOutput(t *testing.T) {
	out := formatSource(t, "")
	if out != "" {
		t.Fatalf("out = %q, want empty", out)
	}
}
