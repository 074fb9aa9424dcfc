package ast

import (
	"testing"

	"github.com/paul-ciorogar/suru-lang/internal/arena"
	"github.com/paul-ciorogar/suru-lang/internal/lexer"
	"github.com/paul-ciorogar/suru-lang/internal/parser"
	"github.com/paul-ciorogar/suru-lang/internal/strstore"
)

func buildFrom(t *testing.T, src string) *Tree {
	t.Helper()
	store := strstore.New(arena.New(4096))
	l := lexer.New(src, store)
	pt, errs := parser.Parse(l)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return Build(pt)
}

func kindsOf(tree *Tree, node int) []Kind {
	var out []Kind
	for _, c := range tree.Children(node) {
		out = append(out, tree.Get(c).Kind)
	}
	return out
}

func firstOfKind(tree *Tree, node int, kind Kind) int {
	for _, c := range tree.Children(node) {
		if tree.Get(c).Kind == kind {
			return c
		}
	}
	return None
}

func TestBuildDropsTriviaAndPreservesStructure(t *testing.T) {
	src := "main : () {\n    // a comment\n    print(\"hi\")\n}\n"
	tree := buildFrom(t, src)
	decl := firstOfKind(tree, tree.Root, FUNCTION_DECL)
	if decl == None {
		t.Fatalf("no FUNCTION_DECL, children: %v", kindsOf(tree, tree.Root))
	}
	block := firstOfKind(tree, decl, BLOCK)
	if block == None {
		t.Fatalf("no BLOCK under FUNCTION_DECL")
	}
	for _, k := range kindsOf(tree, block) {
		if k != CALL_EXPR {
			t.Fatalf("BLOCK children = %v, trivia leaked into AST", kindsOf(tree, block))
		}
	}
}

func TestBuildPreservesTokenOnTerminals(t *testing.T) {
	src := "main : () {\n    x: \"hi\"\n}\n"
	tree := buildFrom(t, src)
	decl := firstOfKind(tree, tree.Root, FUNCTION_DECL)
	block := firstOfKind(tree, decl, BLOCK)
	varDecl := firstOfKind(tree, block, VAR_DECL)
	children := tree.Children(varDecl)
	if len(children) != 2 {
		t.Fatalf("VAR_DECL children = %v, want 2", kindsOf(tree, varDecl))
	}
	strNode := tree.Get(children[1])
	if strNode.Kind != STRING_LITERAL {
		t.Fatalf("second child kind = %v, want STRING_LITERAL", strNode.Kind)
	}
	if !strNode.Token.HasText() || strNode.Token.Text.String() != `"hi"` {
		t.Fatalf("token not preserved on STRING_LITERAL terminal")
	}
}

func TestBuildIncludesMatchNodes(t *testing.T) {
	// Regression for the ast_builder.c omission documented in DESIGN.md:
	// MATCH_STMT/MATCH_ARM/MATCH_WILDCARD must map through, not vanish.
	src := "main : () {\n    match x {\n        _: print(\"default\")\n    }\n}\n"
	tree := buildFrom(t, src)
	decl := firstOfKind(tree, tree.Root, FUNCTION_DECL)
	block := firstOfKind(tree, decl, BLOCK)
	matchStmt := firstOfKind(tree, block, MATCH_STMT)
	if matchStmt == None {
		t.Fatalf("MATCH_STMT missing from AST, children: %v", kindsOf(tree, block))
	}
	arm := firstOfKind(tree, matchStmt, MATCH_ARM)
	if arm == None {
		t.Fatalf("MATCH_ARM missing from AST, children: %v", kindsOf(tree, matchStmt))
	}
	wildcard := firstOfKind(tree, arm, MATCH_WILDCARD)
	if wildcard == None {
		t.Fatalf("MATCH_WILDCARD missing from AST, children: %v", kindsOf(tree, arm))
	}
}

func TestBuildNumbersNodeCount(t *testing.T) {
	src := "main : () {\n    print(\"a\")\n    print(\"b\")\n}\n"
	tree := buildFrom(t, src)
	decl := firstOfKind(tree, tree.Root, FUNCTION_DECL)
	block := firstOfKind(tree, decl, BLOCK)
	if len(tree.Children(block)) != 2 {
		t.Fatalf("BLOCK children = %v, want 2 CALL_EXPR", kindsOf(tree, block))
	}
}
