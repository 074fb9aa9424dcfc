package parsetree

import (
	"testing"

	"github.com/paul-ciorogar/suru-lang/internal/token"
)

func TestAddChildLinksFirstChildAndSiblings(t *testing.T) {
	tree := New()
	parent := tree.CreateNonterminalNode(BLOCK)
	a := tree.CreateTerminalNode(IDENTIFIER, token.Token{Kind: token.IDENTIFIER})
	b := tree.CreateTerminalNode(IDENTIFIER, token.Token{Kind: token.IDENTIFIER})

	tree.AddChild(parent, a)
	tree.AddChild(parent, b)

	children := tree.Children(parent)
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Fatalf("Children(parent) = %v, want [%d %d]", children, a, b)
	}
	if tree.Get(a).Parent != parent {
		t.Fatalf("a.Parent = %d, want %d", tree.Get(a).Parent, parent)
	}
}

func TestNoneSentinelOnEmptyTree(t *testing.T) {
	tree := New()
	if tree.Root != None {
		t.Fatalf("Root = %d, want None", tree.Root)
	}
	if tree.Get(None) != nil {
		t.Fatalf("Get(None) should be nil")
	}
}

func TestChildCount(t *testing.T) {
	tree := New()
	parent := tree.CreateNonterminalNode(ARG_LIST)
	if tree.ChildCount(parent) != 0 {
		t.Fatalf("ChildCount on empty parent = %d, want 0", tree.ChildCount(parent))
	}
	tree.AddChild(parent, tree.CreateTerminalNode(STRING_LITERAL, token.Token{Kind: token.STRING}))
	tree.AddChild(parent, tree.CreateTerminalNode(STRING_LITERAL, token.Token{Kind: token.STRING}))
	if tree.ChildCount(parent) != 2 {
		t.Fatalf("ChildCount = %d, want 2", tree.ChildCount(parent))
	}
}

func TestKindString(t *testing.T) {
	if MATCH_EXPR.String() != "MATCH_EXPR" {
		t.Fatalf("MATCH_EXPR.String() = %q", MATCH_EXPR.String())
	}
}
